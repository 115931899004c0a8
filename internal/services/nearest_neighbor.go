package services

import (
	"errors"
	"fmt"
	"math"
	"tour-route-service/internal/matrix"
)

// NearestNeighborOrder plans a visiting order with a greedy nearest-neighbor
// pass starting at start. Each step takes the closest unvisited point.
func NearestNeighborOrder(dm *matrix.DistanceMatrix, start int) ([]int, error) {
	if dm == nil {
		return nil, errors.New("nearest neighbor: distance matrix must be non-nil")
	}
	n := dm.Len()
	if n == 0 {
		return []int{}, nil
	}
	if start < 0 || start >= n {
		return nil, fmt.Errorf("nearest neighbor: start %d out of range [0,%d)", start, n)
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)
	current := start
	visited[current] = true
	order = append(order, current)

	for len(order) < n {
		best := -1
		minDistance := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d, err := dm.At(current, j)
			if err != nil {
				return nil, fmt.Errorf("nearest neighbor: %w", err)
			}
			// Ascending scan keeps the lowest index on ties, so ordering is deterministic.
			if d < minDistance {
				minDistance = d
				best = j
			}
		}

		if best < 0 {
			return nil, errors.New("nearest neighbor: failed to select next point")
		}

		visited[best] = true
		order = append(order, best)
		current = best
	}

	return order, nil
}
