package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1000, cfg.Pathfinding.MaxIterations)
	assert.True(t, cfg.Pathfinding.AllowDiagonal)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
log_level: debug
navigation:
  obstacle_buffer: 3
pathfinding:
  max_iterations: 250
  allow_diagonal: false
  smooth_path: true
  default_movement: flying
database:
  host: db.internal
  port: 5433
`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Navigation.ObstacleBuffer)
	assert.Equal(t, 250, cfg.Pathfinding.MaxIterations)
	assert.False(t, cfg.Pathfinding.AllowDiagonal)
	assert.Equal(t, "flying", cfg.Pathfinding.DefaultMovement)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "disable", cfg.Database.SSLMode, "unset fields keep their defaults")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pathfinding: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{Host: "h", Port: 5432, User: "u", Password: "p", DBName: "db", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/db?sslmode=disable", d.DSN())
}
