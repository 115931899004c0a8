package ports

import "context"

// Contract for persisting computed distance matrices between runs.
//
// Values are the row-major strict upper triangle of an n×n matrix, keyed by
// the point set fingerprint.
type MatrixCache interface {
	// Return cached values for key. ok is false on a miss.
	Get(ctx context.Context, key string) (values []float64, ok bool, err error)
	// Store values for key, replacing any previous entry.
	Put(ctx context.Context, key string, n int, values []float64) error
}
