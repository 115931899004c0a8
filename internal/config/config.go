package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DBDriver selects the SQL backend: "sqlite" or "pgx".
	DBDriver    string
	DBPath      string
	DatabaseURL string
	RedisURL    string

	PointsCSV string
	PointsURL string
	SeedPath  string

	// Solver selects the tour solver: "concorde", "file" or "nearest".
	Solver    string
	SolverBin string
	// SolverArgs are extra solver arguments; "{instance}" marks the instance
	// file, which is appended when no argument names it.
	SolverArgs      []string
	SolverKeepFiles bool
	SolverWorkDir   string
	SolverTimeout   time.Duration
	InstanceName    string

	ResultsDir string
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads .env when present and returns the typed configuration.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	timeout, err := time.ParseDuration(Get("SOLVER_TIMEOUT", "10m"))
	if err != nil {
		// Accept a bare number of seconds as well.
		secs, convErr := strconv.Atoi(Get("SOLVER_TIMEOUT", ""))
		if convErr != nil {
			return Config{}, fmt.Errorf("load config: parse SOLVER_TIMEOUT: %w", err)
		}
		timeout = time.Duration(secs) * time.Second
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("load config: SOLVER_TIMEOUT must be positive, got %s", timeout)
	}

	keepFiles, err := strconv.ParseBool(Get("SOLVER_KEEP_FILES", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: parse SOLVER_KEEP_FILES: %w", err)
	}

	cfg := Config{
		Port:            Get("PORT", "8080"),
		DBDriver:        strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:          Get("DB_PATH", "data/app.db"),
		DatabaseURL:     Get("DATABASE_URL", ""),
		RedisURL:        Get("REDIS_URL", ""),
		PointsCSV:       Get("POINTS_CSV", ""),
		PointsURL:       Get("POINTS_URL", ""),
		SeedPath:        Get("SEED_PATH", "data/seeds/points.yaml"),
		Solver:          strings.ToLower(Get("SOLVER", "nearest")),
		SolverBin:       Get("SOLVER_BIN", "concorde"),
		SolverArgs:      strings.Fields(Get("SOLVER_ARGS", "")),
		SolverKeepFiles: keepFiles,
		SolverWorkDir:   Get("SOLVER_WORKDIR", os.TempDir()),
		SolverTimeout:   timeout,
		InstanceName:    Get("INSTANCE_NAME", "tour"),
		ResultsDir:      Get("RESULTS_DIR", "results"),
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "pgx":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required when DB_DRIVER=pgx")
		}
	default:
		return Config{}, fmt.Errorf("load config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.Solver {
	case "concorde", "file", "nearest":
	default:
		return Config{}, fmt.Errorf("load config: unsupported SOLVER %q", cfg.Solver)
	}

	return cfg, nil
}
