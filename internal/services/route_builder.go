package services

import (
	"errors"
	"fmt"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/matrix"
)

// ValidateTour checks that indices is a permutation of [0, n).
// Out-of-range, repeated and missing indices all fail with domain.ErrInvalidTour.
func ValidateTour(indices []int, n int) error {
	if n == 0 {
		return fmt.Errorf("validate tour: point set is empty: %w", domain.ErrInvalidTour)
	}
	if len(indices) != n {
		return fmt.Errorf("validate tour: got %d indices for %d points: %w", len(indices), n, domain.ErrInvalidTour)
	}

	seen := make([]bool, n)
	for pos, v := range indices {
		if v < 0 || v >= n {
			return fmt.Errorf("validate tour: index %d at position %d out of range [0,%d): %w", v, pos, n, domain.ErrInvalidTour)
		}
		if seen[v] {
			return fmt.Errorf("validate tour: index %d repeated at position %d: %w", v, pos, domain.ErrInvalidTour)
		}
		seen[v] = true
	}

	return nil
}

// BuildRoute turns a decoded solver tour into a closed route with its total length.
//
// The tour is validated before any lookup; a tour that fails validation is
// rejected, never repaired. The first index is appended to close the loop and
// consecutive matrix distances are summed across every leg.
func BuildRoute(indices []int, ps *domain.PointSet, dm *matrix.DistanceMatrix) (*domain.Route, error) {
	if ps == nil || dm == nil {
		return nil, errors.New("build route: point set and distance matrix must be non-nil")
	}
	if dm.Len() != ps.Len() {
		return nil, fmt.Errorf("build route: matrix size %d does not match point set size %d", dm.Len(), ps.Len())
	}

	if err := ValidateTour(indices, ps.Len()); err != nil {
		return nil, fmt.Errorf("build route: %w", err)
	}

	closed := make([]int, 0, len(indices)+1)
	closed = append(closed, indices...)
	closed = append(closed, indices[0])

	stops := make([]string, 0, len(closed))
	for _, idx := range closed {
		name, err := ps.NameAt(idx)
		if err != nil {
			return nil, fmt.Errorf("build route: %w", err)
		}
		stops = append(stops, name)
	}

	total := 0.0
	for i := 0; i < len(closed)-1; i++ {
		d, err := dm.At(closed[i], closed[i+1])
		if err != nil {
			return nil, fmt.Errorf("build route: leg %d: %w", i, err)
		}
		total += d
	}

	return &domain.Route{
		Stops:              stops,
		Indices:            closed,
		TotalDistanceMiles: total,
	}, nil
}
