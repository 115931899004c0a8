package ports

import (
	"context"
	"tour-route-service/internal/domain"
)

// Port: a boundary for retrieving named points from upstream data.
type PointSource interface {
	// Return points in a fixed, reproducible order. Index assignment follows this order.
	ListPoints(ctx context.Context) ([]domain.Point, error)
}

// PointLookup is implemented by sources that can find one point without
// listing them all. The index matches the position in ListPoints.
type PointLookup interface {
	GetPoint(ctx context.Context, name string) (int, domain.Point, error)
}
