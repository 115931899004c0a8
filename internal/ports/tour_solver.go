package ports

import "context"

// Contract for the out-of-process tour solver.
//
// The solver receives an encoded instance and returns the raw bytes of its
// solution file. Runtime is unbounded; implementations must honour ctx for
// cancellation and timeouts. Output is decoded and validated by the caller.
type TourSolver interface {
	Solve(ctx context.Context, name string, instance []byte) ([]byte, error)
}
