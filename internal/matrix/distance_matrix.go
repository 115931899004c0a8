// Package matrix holds the dense pairwise distance table over a frozen PointSet.
//
// Cells are addressed by PointSet index. Each unordered pair is computed once
// and mirrored; the diagonal is zero. A DistanceMatrix is immutable after
// construction and safe for concurrent readers.
package matrix

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tour-route-service/internal/domain"
	"tour-route-service/internal/geo"
)

// DistanceFunc returns the distance between two points in the matrix unit.
type DistanceFunc func(a, b domain.Point) float64

// MilesFunc is the default DistanceFunc: great-circle miles on the default sphere.
func MilesFunc(a, b domain.Point) float64 {
	return geo.Distance(a.Lat, a.Lon, b.Lat, b.Lon, geo.DefaultRadiusKm, true)
}

type DistanceMatrix struct {
	n     int
	cells []float64 // row-major n*n
}

// Build computes the great-circle miles matrix over ps. The point set is frozen first.
func Build(ctx context.Context, ps *domain.PointSet) (*DistanceMatrix, error) {
	return BuildWith(ctx, ps, MilesFunc)
}

// BuildWith computes the matrix with fn, calling it exactly once per unordered pair.
//
// Rows are fanned out across GOMAXPROCS workers. Worker i owns the upper-triangle
// cells (i, j>i) and their mirrors (j, i), so no cell has two writers.
func BuildWith(ctx context.Context, ps *domain.PointSet, fn DistanceFunc) (*DistanceMatrix, error) {
	if ps == nil {
		return nil, errors.New("build distance matrix: point set is nil")
	}
	if fn == nil {
		return nil, errors.New("build distance matrix: distance func is nil")
	}

	ps.Freeze()
	points := ps.Points()
	n := len(points)
	m := &DistanceMatrix{n: n, cells: make([]float64, n*n)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < n-1; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j := i + 1; j < n; j++ {
				d := fn(points[i], points[j])
				if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
					return fmt.Errorf("distance %q -> %q = %v: must be a finite non-negative number", points[i].Name, points[j].Name, d)
				}
				m.cells[i*n+j] = d
				m.cells[j*n+i] = d
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build distance matrix: %w", err)
	}

	return m, nil
}

// FromUpperTriangle restores a matrix from the row-major strict upper triangle,
// as produced by UpperTriangle.
func FromUpperTriangle(n int, values []float64) (*DistanceMatrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("restore distance matrix: negative dimension %d", n)
	}
	if want := n * (n - 1) / 2; len(values) != want {
		return nil, fmt.Errorf("restore distance matrix: got %d values, want %d for n=%d", len(values), want, n)
	}

	m := &DistanceMatrix{n: n, cells: make([]float64, n*n)}
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := values[k]
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return nil, fmt.Errorf("restore distance matrix: cell (%d,%d) = %v is invalid", i, j, d)
			}
			m.cells[i*n+j] = d
			m.cells[j*n+i] = d
			k++
		}
	}

	return m, nil
}

func (m *DistanceMatrix) Len() int { return m.n }

// At returns the distance between indices i and j.
func (m *DistanceMatrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("distance at (%d,%d) for size %d: %w", i, j, m.n, domain.ErrIndexOutOfRange)
	}
	return m.cells[i*m.n+j], nil
}

// UpperTriangle returns the strict upper triangle in row-major order.
func (m *DistanceMatrix) UpperTriangle() []float64 {
	out := make([]float64, 0, m.n*(m.n-1)/2)
	for i := 0; i < m.n; i++ {
		out = append(out, m.cells[i*m.n+i+1:(i+1)*m.n]...)
	}
	return out
}
