package solver

import (
	"bytes"
	"context"
	"fmt"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/matrix"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/services"
	"tour-route-service/internal/tsplib"

	"github.com/katalvlaran/lvlath/tsp"
)

// NearestNeighbor solves in process: greedy construction from node 0 followed
// by 2-opt improvement. Tours are valid but not guaranteed optimal.
type NearestNeighbor struct {
	// MaxTwoOptMoves bounds accepted 2-opt moves; zero runs to a local optimum.
	MaxTwoOptMoves int
}

func NewNearestNeighbor() *NearestNeighbor {
	return &NearestNeighbor{MaxTwoOptMoves: tsp.DefaultTwoOptMaxIters}
}

func (s *NearestNeighbor) Solve(ctx context.Context, name string, instance []byte) (_ []byte, err error) {
	defer obs.Time(ctx, "solver.nearest.Solve")(&err)

	inst, err := tsplib.DecodeInstance(bytes.NewReader(instance))
	if err != nil {
		return nil, fmt.Errorf("nearest neighbor solver: %w", err)
	}

	ps, err := domain.PointSetFromPoints(inst.Points)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbor solver: %w", err)
	}
	if ps.Len() == 0 {
		return tsplib.EncodeSolution(nil), nil
	}

	dm, err := matrix.Build(ctx, ps)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbor solver: %w", err)
	}

	order, err := services.NearestNeighborOrder(dm, 0)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbor solver: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	order, err = improveTwoOpt(ctx, order, dm, s.MaxTwoOptMoves)
	if err != nil {
		return nil, fmt.Errorf("nearest neighbor solver: %w", err)
	}

	return tsplib.EncodeSolution(order), nil
}
