package solver

import (
	"context"
	"testing"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/matrix"
	"tour-route-service/internal/services"
)

func squareMatrix(t *testing.T) *matrix.DistanceMatrix {
	t.Helper()
	ps, err := domain.PointSetFromPoints([]domain.Point{
		{Name: "SW", Lat: 0, Lon: 0},
		{Name: "NW", Lat: 1, Lon: 0},
		{Name: "NE", Lat: 1, Lon: 1},
		{Name: "SE", Lat: 0, Lon: 1},
	})
	if err != nil {
		t.Fatalf("point set: %v", err)
	}
	dm, err := matrix.Build(context.Background(), ps)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	return dm
}

func cycleLength(t *testing.T, order []int, dm *matrix.DistanceMatrix) float64 {
	t.Helper()
	total := 0.0
	for i := range order {
		d, err := dm.At(order[i], order[(i+1)%len(order)])
		if err != nil {
			t.Fatalf("at: %v", err)
		}
		total += d
	}
	return total
}

func TestImproveTwoOptUncrossesSquare(t *testing.T) {
	dm := squareMatrix(t)

	// Visiting the corners diagonally crosses the tour.
	crossed := []int{0, 2, 1, 3}
	improved, err := improveTwoOpt(context.Background(), crossed, dm, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := services.ValidateTour(improved, 4); err != nil {
		t.Fatalf("improved order is not a permutation: %v", err)
	}
	if improved[0] != 0 {
		t.Fatalf("improved = %v, want start kept at 0", improved)
	}
	if cycleLength(t, improved, dm) >= cycleLength(t, crossed, dm) {
		t.Fatalf("2-opt did not shorten tour: %v -> %v", crossed, improved)
	}
	if crossed[1] != 2 {
		t.Fatal("input slice was modified")
	}
}

func TestImproveTwoOptKeepsNonZeroStart(t *testing.T) {
	dm := squareMatrix(t)

	improved, err := improveTwoOpt(context.Background(), []int{2, 0, 1, 3}, dm, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(improved) != 4 || improved[0] != 2 {
		t.Fatalf("improved = %v, want 4 nodes starting at 2", improved)
	}
}

func TestImproveTwoOptSmallOrdersUnchanged(t *testing.T) {
	dm := squareMatrix(t)

	got, err := improveTwoOpt(context.Background(), []int{2, 0, 1}, dm, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{2, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestImproveTwoOptExpiredDeadline(t *testing.T) {
	dm := squareMatrix(t)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	if _, err := improveTwoOpt(ctx, []int{0, 2, 1, 3}, dm, 0); err == nil {
		t.Fatal("expected error for expired deadline")
	}
}

func TestImproveTwoOptRejectsNonPermutation(t *testing.T) {
	dm := squareMatrix(t)
	if _, err := improveTwoOpt(context.Background(), []int{0, 1, 1, 3}, dm, 0); err == nil {
		t.Fatal("expected error for repeated index")
	}
}
