package ports

import (
	"context"
	"tour-route-service/internal/domain"
)

// Contract for rendering a validated route into mapping artifacts.
type RouteExporter interface {
	Export(ctx context.Context, route *domain.Route, points *domain.PointSet) error
}
