package domain

import "errors"

// Sentinel errors shared by the point set, distance matrix, solver codec and route builder.
// Callers wrap them with context and match with errors.Is.
var (
	ErrDuplicateName   = errors.New("duplicate point name")
	ErrNotFound        = errors.New("point not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidPoint    = errors.New("invalid point")
	ErrFrozen          = errors.New("point set is frozen")
	ErrNoPoints        = errors.New("no points to route")

	// External solver output does not parse, or its declared dimension disagrees with its body.
	ErrMalformedSolution = errors.New("malformed solver solution")

	// Decoded tour is not a permutation of the point set's index space.
	ErrInvalidTour = errors.New("invalid tour")
)
