package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dialect names the SQL flavour behind a *sql.DB. Values match the driver names.
type Dialect string

const (
	Sqlite   Dialect = "sqlite"
	Postgres Dialect = "pgx"
)

func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(driver))) {
	case Sqlite:
		return Sqlite, nil
	case Postgres, "postgres":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported sql driver %q", driver)
}

// Rebind rewrites ? placeholders to $n for Postgres.
func (d Dialect) Rebind(q string) string {
	if d != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) blobType() string {
	if d == Postgres {
		return "BYTEA"
	}
	return "BLOB"
}

// Initialize the database schema for the given dialect.
func InitSchema(db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPointsQuery := `
	CREATE TABLE IF NOT EXISTS points (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createMatrixCacheQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS distance_matrix_cache (
		fingerprint TEXT PRIMARY KEY,
		n INTEGER NOT NULL,
		payload %s NOT NULL
	);
	`, d.blobType())

	statements := []string{
		createPointsQuery,
		createMatrixCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
