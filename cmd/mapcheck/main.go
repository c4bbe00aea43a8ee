// mapcheck validates spawn connectivity for one or more map documents.
//
// Usage:
//
//	mapcheck [-config config/mapcheck.yaml] [-dsn postgres://...] map1.yaml map2.yaml ...
//
// Each map is analyzed independently. With a DSN (from config or flag)
// the map and its connectivity report are persisted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/duskfield/gridnav/internal/config"
	"github.com/duskfield/gridnav/internal/data"
	"github.com/duskfield/gridnav/internal/db"
	"github.com/duskfield/gridnav/internal/game/grid"
	"github.com/duskfield/gridnav/internal/game/movement"
	"github.com/duskfield/gridnav/internal/game/nav"
	"github.com/duskfield/gridnav/internal/game/path"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := flag.String("config", "config/mapcheck.yaml", "path to configuration file")
	dsn := flag.String("dsn", "", "PostgreSQL DSN override (empty disables persistence unless configured)")
	flag.Parse()

	if flag.NArg() == 0 {
		return fmt.Errorf("no map files given")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("mapcheck starting", "maps", flag.NArg())

	store, err := openStore(ctx, cfg, *dsn)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, mapPath := range flag.Args() {
		mapPath := mapPath
		g.Go(func() error {
			return checkMap(gctx, cfg, store, mapPath)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("mapcheck finished")
	return nil
}

// openStore connects to PostgreSQL when a DSN is configured; a missing
// DSN disables persistence rather than failing the run.
func openStore(ctx context.Context, cfg config.Config, dsnOverride string) (*db.DB, error) {
	dsn := dsnOverride
	if dsn == "" && cfg.Database.Host != "" && cfg.Database.User != "" && cfg.Database.Password != "" {
		dsn = cfg.Database.DSN()
	}
	if dsn == "" {
		slog.Info("no database configured, reports will not be persisted")
		return nil, nil
	}

	store, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.RunMigrations(ctx, dsn); err != nil {
		store.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database connected")
	return store, nil
}

func checkMap(ctx context.Context, cfg config.Config, store *db.DB, mapPath string) error {
	doc, err := data.LoadMap(mapPath)
	if err != nil {
		return err
	}

	terrain, err := doc.BuildGrid()
	if err != nil {
		return fmt.Errorf("building grid for %s: %w", mapPath, err)
	}

	rules := movement.NewSystem()
	overlay := nav.New(terrain, rules, cfg.Navigation.ObstacleBuffer)
	engine := path.NewEngine(terrain, rules, overlay)

	capability := doc.Capability()
	if doc.Movement == "" {
		capability = movement.ParseCapability(cfg.Pathfinding.DefaultMovement)
	}

	report := engine.ValidateAllSpawnPoints(doc.Spawns(), doc.TargetPos(), capability)

	logReport(doc.Name, report)
	if store != nil {
		if err := persistReport(ctx, store, doc, terrain, report); err != nil {
			return err
		}
	}
	return nil
}

func logReport(name string, report path.MapConnectivity) {
	slog.Info("connectivity report",
		"map", name,
		"valid", len(report.ValidSpawns),
		"invalid", len(report.InvalidSpawns),
		"ok", report.Valid())
	for _, w := range report.Warnings {
		slog.Warn("connectivity warning", "map", name, "warning", w)
	}
	for _, e := range report.Errors {
		slog.Error("connectivity error", "map", name, "error", e)
	}
}

func persistReport(ctx context.Context, store *db.DB, doc *data.MapDocument, terrain *grid.Grid, report path.MapConnectivity) error {
	fp := db.Fingerprint(terrain)
	repo := db.NewMapRepository(store.Pool())

	if err := repo.SaveMap(ctx, db.MapRow{
		Fingerprint: fp,
		Name:        doc.Name,
		Width:       terrain.Width(),
		Height:      terrain.Height(),
		CellSize:    terrain.CellSize(),
	}); err != nil {
		return err
	}

	id, err := repo.SaveReport(ctx, db.ReportRow{
		MapFingerprint: fp,
		ValidSpawns:    len(report.ValidSpawns),
		InvalidSpawns:  len(report.InvalidSpawns),
		Warnings:       report.Warnings,
		Errors:         report.Errors,
	})
	if err != nil {
		return err
	}
	slog.Info("report persisted", "map", doc.Name, "fingerprint", fp[:12], "report_id", id)
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info for unknown values.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
