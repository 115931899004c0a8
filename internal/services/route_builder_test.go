package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/geo"
	"tour-route-service/internal/matrix"
)

func buildFixture(t *testing.T, points []domain.Point) (*domain.PointSet, *matrix.DistanceMatrix) {
	t.Helper()
	ps, err := domain.PointSetFromPoints(points)
	if err != nil {
		t.Fatalf("point set: %v", err)
	}
	dm, err := matrix.Build(context.Background(), ps)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	return ps, dm
}

func TestBuildRouteClosesLoopAndSumsLegs(t *testing.T) {
	ps, dm := buildFixture(t, []domain.Point{
		{Name: "A", Lat: 0, Lon: 0},
		{Name: "B", Lat: 0, Lon: 1},
		{Name: "C", Lat: 1, Lon: 0},
	})

	route, err := BuildRoute([]int{0, 1, 2}, ps, dm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A", "B", "C", "A"}
	if len(route.Stops) != len(want) {
		t.Fatalf("stops = %v, want %v", route.Stops, want)
	}
	for i := range want {
		if route.Stops[i] != want[i] {
			t.Fatalf("stops = %v, want %v", route.Stops, want)
		}
	}

	ab := geo.Distance(0, 0, 0, 1, geo.DefaultRadiusKm, true)
	bc := geo.Distance(0, 1, 1, 0, geo.DefaultRadiusKm, true)
	ca := geo.Distance(1, 0, 0, 0, geo.DefaultRadiusKm, true)
	if math.Abs(route.TotalDistanceMiles-(ab+bc+ca)) > 1e-9 {
		t.Fatalf("distance = %v, want %v", route.TotalDistanceMiles, ab+bc+ca)
	}
	if route.Legs() != 3 {
		t.Fatalf("legs = %d, want 3", route.Legs())
	}
}

func TestBuildRouteFollowsSolverOrder(t *testing.T) {
	ps, dm := buildFixture(t, []domain.Point{
		{Name: "A", Lat: 0, Lon: 0},
		{Name: "B", Lat: 0, Lon: 1},
		{Name: "C", Lat: 1, Lon: 0},
		{Name: "D", Lat: 1, Lon: 1},
	})

	route, err := BuildRoute([]int{2, 0, 3, 1}, ps, dm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"C", "A", "D", "B", "C"}
	for i := range want {
		if route.Stops[i] != want[i] {
			t.Fatalf("stops = %v, want %v", route.Stops, want)
		}
	}
	if route.Indices[0] != 2 || route.Indices[len(route.Indices)-1] != 2 {
		t.Fatalf("indices = %v, want closed at 2", route.Indices)
	}
}

func TestBuildRouteSinglePoint(t *testing.T) {
	ps, dm := buildFixture(t, []domain.Point{{Name: "A", Lat: 10, Lon: 10}})

	route, err := BuildRoute([]int{0}, ps, dm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.Stops) != 2 || route.Stops[0] != "A" || route.Stops[1] != "A" {
		t.Fatalf("stops = %v, want [A A]", route.Stops)
	}
	if route.TotalDistanceMiles != 0 {
		t.Fatalf("distance = %v, want 0", route.TotalDistanceMiles)
	}
}

func TestBuildRouteRejectsInvalidTours(t *testing.T) {
	ps, dm := buildFixture(t, []domain.Point{
		{Name: "A", Lat: 0, Lon: 0},
		{Name: "B", Lat: 0, Lon: 1},
		{Name: "C", Lat: 1, Lon: 0},
	})

	cases := map[string][]int{
		"missing index":   {0, 1},
		"duplicate index": {0, 1, 1},
		"out of range":    {0, 1, 3},
		"negative index":  {0, -1, 2},
		"too long":        {0, 1, 2, 0},
		"empty":           {},
	}
	for name, tour := range cases {
		t.Run(name, func(t *testing.T) {
			route, err := BuildRoute(tour, ps, dm)
			if !errors.Is(err, domain.ErrInvalidTour) {
				t.Fatalf("err = %v, want ErrInvalidTour", err)
			}
			if route != nil {
				t.Fatalf("route = %+v, want nil on failure", route)
			}
		})
	}
}

func TestBuildRouteEmptyPointSet(t *testing.T) {
	ps, dm := buildFixture(t, nil)
	if _, err := BuildRoute([]int{}, ps, dm); !errors.Is(err, domain.ErrInvalidTour) {
		t.Fatalf("err = %v, want ErrInvalidTour", err)
	}
}

func TestBuildRouteRejectsMismatchedMatrix(t *testing.T) {
	ps, _ := buildFixture(t, []domain.Point{{Name: "A"}, {Name: "B", Lat: 1}})
	_, other := buildFixture(t, []domain.Point{{Name: "A"}})

	if _, err := BuildRoute([]int{0, 1}, ps, other); err == nil {
		t.Fatal("expected error for mismatched matrix size")
	}
}
