package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-route-service/internal/platform/obs"
)

// SQLMatrixCache is a Postgres-backed cache for computed distance matrices.
type SQLMatrixCache struct {
	DB *sql.DB
}

func NewSQLMatrixCache(db *sql.DB) *SQLMatrixCache {
	return &SQLMatrixCache{DB: db}
}

// Fetch the cached upper triangle for a point set fingerprint.
func (s *SQLMatrixCache) Get(ctx context.Context, key string) (_ []float64, _ bool, err error) {
	defer obs.Time(ctx, "matrix.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("matrix cache: db is nil")
	}
	if key == "" {
		return nil, false, errors.New("get matrix cache: key must not be empty")
	}

	q := `
	SELECT n, payload
	FROM distance_matrix_cache
	WHERE fingerprint = $1;
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

// Store the upper triangle for a point set fingerprint, replacing any previous entry.
func (s *SQLMatrixCache) Put(ctx context.Context, key string, n int, values []float64) (err error) {
	defer obs.Time(ctx, "matrix.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("matrix cache: db is nil")
	}
	if err := checkEntry(key, n, values); err != nil {
		return fmt.Errorf("insert matrix cache: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO distance_matrix_cache (fingerprint, n, payload)
	VALUES ($1, $2, $3)
	ON CONFLICT (fingerprint) DO UPDATE
	SET n = EXCLUDED.n,
		payload = EXCLUDED.payload;
	`, key, n, encodeTriangle(values))
	if err != nil {
		return fmt.Errorf("insert matrix cache key=%q: %w", key, err)
	}

	return nil
}
