package source

import (
	"context"
	"fmt"
	"log"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/ports"
)

// Bounds is an inclusive lat/lon box.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// ContiguousUS keeps the lower 48 states, dropping Alaska, Hawaii and overseas territories.
var ContiguousUS = Bounds{MinLat: -90, MaxLat: 90, MinLon: -130, MaxLon: -65}

// IslandParks fall inside ContiguousUS but are unreachable overland.
var IslandParks = []string{"Channel Islands", "Dry Tortugas"}

func (b Bounds) Contains(p domain.Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// BoundsFilter wraps a PointSource and drops points outside Bounds or listed in Exclude.
// Surviving points keep their upstream order.
type BoundsFilter struct {
	Source  ports.PointSource
	Bounds  Bounds
	Exclude map[string]struct{}
}

func NewBoundsFilter(src ports.PointSource, b Bounds, exclude ...string) *BoundsFilter {
	ex := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		ex[name] = struct{}{}
	}
	return &BoundsFilter{Source: src, Bounds: b, Exclude: ex}
}

func (f *BoundsFilter) ListPoints(ctx context.Context) ([]domain.Point, error) {
	if f.Source == nil {
		return nil, fmt.Errorf("bounds filter: source is nil")
	}

	points, err := f.Source.ListPoints(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]domain.Point, 0, len(points))
	for _, p := range points {
		if _, skip := f.Exclude[p.Name]; skip {
			continue
		}
		if !f.Bounds.Contains(p) {
			continue
		}
		kept = append(kept, p)
	}

	if dropped := len(points) - len(kept); dropped > 0 {
		log.Printf("bounds filter: kept=%d dropped=%d", len(kept), dropped)
	}

	return kept, nil
}
