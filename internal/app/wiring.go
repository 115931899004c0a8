package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"time"
	"tour-route-service/internal/adapters/cache"
	"tour-route-service/internal/adapters/export"
	"tour-route-service/internal/adapters/repositories"
	"tour-route-service/internal/adapters/solver"
	"tour-route-service/internal/adapters/source"
	"tour-route-service/internal/config"
	"tour-route-service/internal/platform/db"
	"tour-route-service/internal/ports"
)

// Adapters is the set of concrete ports selected by configuration.
type Adapters struct {
	DB       *sql.DB
	Dialect  repositories.Dialect
	Source   ports.PointSource
	Cache    ports.MatrixCache
	Solver   ports.TourSolver
	Exporter ports.RouteExporter

	closers []func() error
}

// Close releases the database and cache connections.
func (a *Adapters) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("close adapter failed: err=%v", err)
		}
	}
}

// Build opens the database, initializes its schema and selects the point
// source, matrix cache and solver named by cfg.
func Build(ctx context.Context, cfg config.Config) (*Adapters, error) {
	a := &Adapters{}

	dialect, err := repositories.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("build adapters: %w", err)
	}
	dsn := cfg.DBPath
	if dialect == repositories.Postgres {
		dsn = cfg.DatabaseURL
	}

	conn, err := db.Open(ctx, string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("build adapters: %w", err)
	}
	a.DB, a.Dialect = conn, dialect
	a.closers = append(a.closers, conn.Close)

	if err := repositories.InitSchema(conn, dialect); err != nil {
		a.Close()
		return nil, fmt.Errorf("build adapters: %w", err)
	}

	a.Source, err = NewSource(cfg, conn, dialect)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build adapters: %w", err)
	}

	a.Cache, err = a.newCache(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build adapters: %w", err)
	}

	a.Solver, err = NewSolver(cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build adapters: %w", err)
	}

	a.Exporter = export.NewGeoJSON(cfg.ResultsDir)
	return a, nil
}

// NewSource picks CSV, then HTTP, then the SQL point table. File and feed
// sources are restricted to the contiguous US like the seeded data.
func NewSource(cfg config.Config, conn *sql.DB, dialect repositories.Dialect) (ports.PointSource, error) {
	switch {
	case cfg.PointsCSV != "":
		return source.NewBoundsFilter(source.NewCSVSource(cfg.PointsCSV), source.ContiguousUS, source.IslandParks...), nil
	case cfg.PointsURL != "":
		src, err := source.NewHTTPSource(cfg.PointsURL, config.Get("POINTS_TOKEN", ""), nil)
		if err != nil {
			return nil, err
		}
		return source.NewBoundsFilter(src, source.ContiguousUS, source.IslandParks...), nil
	case conn != nil:
		return repositories.NewSQLPointRepository(conn, dialect), nil
	}
	return nil, fmt.Errorf("no point source configured")
}

// newCache prefers Redis when REDIS_URL is set, otherwise the SQL table.
func (a *Adapters) newCache(ctx context.Context, cfg config.Config) (ports.MatrixCache, error) {
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisMatrixCacheFromURL(ctx, cfg.RedisURL, 7*24*time.Hour)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rc.Close)
		return rc, nil
	}
	if a.Dialect == repositories.Postgres {
		return cache.NewSQLMatrixCache(a.DB), nil
	}
	return cache.NewSqliteMatrixCache(a.DB), nil
}

func NewSolver(cfg config.Config) (ports.TourSolver, error) {
	switch cfg.Solver {
	case "concorde":
		c := solver.NewConcorde(cfg.SolverBin, cfg.SolverWorkDir)
		c.Args = cfg.SolverArgs
		c.KeepFiles = cfg.SolverKeepFiles
		return c, nil
	case "file":
		return solver.NewFileHandoff(
			filepath.Join(cfg.SolverWorkDir, "in"),
			filepath.Join(cfg.SolverWorkDir, "out"),
		), nil
	case "nearest":
		return solver.NewNearestNeighbor(), nil
	}
	return nil, fmt.Errorf("unsupported solver %q", cfg.Solver)
}
