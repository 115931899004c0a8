package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/geo"
	"tour-route-service/internal/matrix"
	"tour-route-service/internal/platform/metrics"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/ports"
	"tour-route-service/internal/tsplib"
)

type PlanTourRequest struct {
	// Instance name handed to the solver; also names the interchange files.
	Name    string
	Comment string
}

// TourPlan carries every artifact produced by one pipeline run.
type TourPlan struct {
	Points   *domain.PointSet
	Matrix   *matrix.DistanceMatrix
	Instance []byte
	Solution []byte
	Route    *domain.Route
}

// PlanTour runs the full pipeline: load points, build (or reuse) the distance
// matrix, hand the encoded instance to the solver, then decode and validate its
// tour into a closed route.
//
// Cache failures are logged and skipped. Every other failure aborts the run;
// no partial route is returned.
func PlanTour(
	ctx context.Context,
	req PlanTourRequest,
	source ports.PointSource,
	cache ports.MatrixCache,
	solver ports.TourSolver,
) (_ *TourPlan, err error) {
	ctx, _ = obs.WithRequestID(ctx)
	defer obs.Time(ctx, "tour.PlanTour")(&err)
	defer func() { metrics.TourRuns.WithLabelValues(outcome(err)).Inc() }()

	if source == nil || solver == nil {
		return nil, errors.New("plan tour: point source and solver must be non-nil")
	}

	points, err := source.ListPoints(ctx)
	if err != nil {
		return nil, &stageError{stage: "source_error", err: fmt.Errorf("plan tour: list points: %w", err)}
	}

	ps, err := domain.PointSetFromPoints(points)
	if err != nil {
		return nil, fmt.Errorf("plan tour: build point set: %w", err)
	}
	if ps.Len() == 0 {
		return nil, fmt.Errorf("plan tour: point source returned no points: %w", domain.ErrNoPoints)
	}

	dm, err := LoadOrBuildMatrix(ctx, ps, cache)
	if err != nil {
		return nil, fmt.Errorf("plan tour: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "tour"
	}
	instance := tsplib.Encode(ps, tsplib.Options{Name: name, Comment: req.Comment})

	solution, err := solver.Solve(ctx, name, instance)
	if err != nil {
		return nil, &stageError{stage: "solver_error", err: fmt.Errorf("plan tour: solve %q: %w", name, err)}
	}

	route, err := RouteFromSolution(bytes.NewReader(solution), ps, dm)
	if err != nil {
		return nil, fmt.Errorf("plan tour: %w", err)
	}

	log.Printf(
		"req_id=%s op=tour.PlanTour points=%d total_miles=%.3f",
		obs.RequestID(ctx), ps.Len(), route.TotalDistanceMiles,
	)

	return &TourPlan{
		Points:   ps,
		Matrix:   dm,
		Instance: instance,
		Solution: solution,
		Route:    route,
	}, nil
}

// RouteFromSolution decodes solver output and builds the validated route.
func RouteFromSolution(r io.Reader, ps *domain.PointSet, dm *matrix.DistanceMatrix) (*domain.Route, error) {
	indices, err := tsplib.Decode(r)
	if err != nil {
		return nil, err
	}
	return BuildRoute(indices, ps, dm)
}

// LoadOrBuildMatrix returns the cached matrix for ps when one exists, otherwise
// builds it and stores it. A nil cache always builds.
func LoadOrBuildMatrix(ctx context.Context, ps *domain.PointSet, cache ports.MatrixCache) (*matrix.DistanceMatrix, error) {
	ps.Freeze()
	key := ps.Fingerprint(geo.DefaultRadiusKm)

	// Check persistent matrix cache before computing.
	if cache != nil {
		values, ok, err := cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.MatrixCacheLookups.WithLabelValues("error").Inc()
			log.Printf("matrix cache read failed: key=%s err=%v", key, err)
		case ok:
			dm, err := matrix.FromUpperTriangle(ps.Len(), values)
			if err == nil {
				metrics.MatrixCacheLookups.WithLabelValues("hit").Inc()
				return dm, nil
			}
			metrics.MatrixCacheLookups.WithLabelValues("error").Inc()
			log.Printf("matrix cache entry unusable: key=%s err=%v", key, err)
		default:
			metrics.MatrixCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	start := time.Now()
	dm, err := buildMatrix(ctx, ps)
	if err != nil {
		return nil, err
	}
	metrics.MatrixBuildSeconds.Observe(time.Since(start).Seconds())

	if cache != nil {
		if err := cache.Put(ctx, key, dm.Len(), dm.UpperTriangle()); err != nil {
			log.Printf("matrix cache write failed: key=%s err=%v", key, err)
		}
	}

	return dm, nil
}

func buildMatrix(ctx context.Context, ps *domain.PointSet) (_ *matrix.DistanceMatrix, err error) {
	defer obs.Time(ctx, "matrix.Build")(&err)
	return matrix.Build(ctx, ps)
}

// stageError tags an error with the pipeline stage that produced it.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var se *stageError
	switch {
	case errors.Is(err, domain.ErrMalformedSolution):
		return "malformed_solution"
	case errors.Is(err, domain.ErrInvalidTour):
		return "invalid_tour"
	case errors.As(err, &se):
		return se.stage
	default:
		return "error"
	}
}
