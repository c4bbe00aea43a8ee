// Package config holds the YAML configuration for the navigation core
// and the mapcheck tool.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	LogLevel    string      `yaml:"log_level"`
	Navigation  Navigation  `yaml:"navigation"`
	Pathfinding Pathfinding `yaml:"pathfinding"`
	Database    Database    `yaml:"database"`
}

// Navigation configures the overlay derivation.
type Navigation struct {
	// ObstacleBuffer is the soft clearance margin in cells: walkable
	// cells within this distance of a blocking cell cost double.
	ObstacleBuffer int `yaml:"obstacle_buffer"`
}

// Pathfinding configures query defaults for the engine.
type Pathfinding struct {
	MaxIterations         int     `yaml:"max_iterations"`
	AllowDiagonal         bool    `yaml:"allow_diagonal"`
	SmoothPath            bool    `yaml:"smooth_path"`
	DefaultMovement       string  `yaml:"default_movement"`
	MinObstacleDistance   float64 `yaml:"min_obstacle_distance"`
	TerrainCostMultiplier float64 `yaml:"terrain_cost_multiplier"`
}

// Database holds PostgreSQL connection parameters for the map store.
type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Navigation: Navigation{
			ObstacleBuffer: 1,
		},
		Pathfinding: Pathfinding{
			MaxIterations:         1000,
			AllowDiagonal:         true,
			SmoothPath:            true,
			DefaultMovement:       "walking",
			TerrainCostMultiplier: 1,
		},
		Database: Database{
			Host:    "127.0.0.1",
			Port:    5432,
			User:    "gridnav",
			DBName:  "gridnav",
			SSLMode: "disable",
		},
	}
}

// Load reads configuration from a YAML file, layered over defaults.
// A missing file returns defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
