package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite backed cache for computed distance matrices.
// Keys are point set fingerprints supplied by the caller.
type SqliteMatrixCache struct {
	DB *sql.DB
}

func NewSqliteMatrixCache(db *sql.DB) *SqliteMatrixCache {
	return &SqliteMatrixCache{DB: db}
}

// Fetch the cached upper triangle for a point set fingerprint.
func (s *SqliteMatrixCache) Get(ctx context.Context, key string) ([]float64, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("matrix cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get matrix cache: key must not be empty")
	}

	q := `
	SELECT
		n,
		payload
	FROM distance_matrix_cache
	WHERE fingerprint = ?;
	`

	var n int
	var payload []byte
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&n, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get matrix cache: query distance_matrix_cache table: %w", err)
	}

	values, err := decodeTriangle(n, payload)
	if err != nil {
		return nil, false, fmt.Errorf("get matrix cache key=%q: %w", key, err)
	}

	return values, true, nil
}

// Store the upper triangle for a point set fingerprint.
func (s *SqliteMatrixCache) Put(ctx context.Context, key string, n int, values []float64) error {
	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}
	if err := checkEntry(key, n, values); err != nil {
		return fmt.Errorf("insert matrix cache: %w", err)
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO distance_matrix_cache (
		fingerprint,
		n,
		payload
	)
	VALUES (?, ?, ?)
	`, key, n, encodeTriangle(values))
	if err != nil {
		return fmt.Errorf("insert matrix cache key=%q: %w", key, err)
	}

	return nil
}
