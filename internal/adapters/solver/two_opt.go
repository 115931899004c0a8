package solver

import (
	"context"
	"errors"
	"fmt"
	"time"
	"tour-route-service/internal/matrix"

	lvmatrix "github.com/katalvlaran/lvlath/matrix"
	"github.com/katalvlaran/lvlath/tsp"
)

// improveTwoOpt runs symmetric first-improvement 2-opt over an open visiting
// order and returns the improved order, still starting at order[0].
// maxMoves bounds accepted moves; zero means until a local optimum.
// A context deadline becomes the search time limit and the best tour found
// so far is kept when it expires.
func improveTwoOpt(ctx context.Context, order []int, dm *matrix.DistanceMatrix, maxMoves int) ([]int, error) {
	n := len(order)
	if n < 4 {
		return append([]int(nil), order...), nil
	}

	dist, err := denseFrom(dm)
	if err != nil {
		return nil, fmt.Errorf("two-opt: %w", err)
	}

	closed, err := tsp.MakeTourFromPermutation(order, n, order[0])
	if err != nil {
		return nil, fmt.Errorf("two-opt: close tour: %w", err)
	}

	opts := tsp.DefaultOptions()
	opts.Symmetric = true
	opts.StartVertex = order[0]
	opts.TwoOptMaxIters = maxMoves
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return nil, context.DeadlineExceeded
		}
		opts.TimeLimit = left
	}

	res, err := tsp.TwoOptSearch(dist, closed, opts)
	switch {
	case errors.Is(err, tsp.ErrTimeLimit) && res != nil:
	case err != nil:
		return nil, fmt.Errorf("two-opt: %w", err)
	}

	// Drop the closing vertex; solution files list each node once.
	return append([]int(nil), res.Tour[:n]...), nil
}

// denseFrom copies dm into the library's row-major matrix.
func denseFrom(dm *matrix.DistanceMatrix) (*lvmatrix.Dense, error) {
	n := dm.Len()
	dense, err := lvmatrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d, err := dm.At(i, j)
			if err != nil {
				return nil, err
			}
			if err := dense.Set(i, j, d); err != nil {
				return nil, err
			}
		}
	}
	return dense, nil
}
