package services

import (
	"testing"
	"tour-route-service/internal/domain"
)

func TestNearestNeighborOrder(t *testing.T) {
	_, dm := buildFixture(t, []domain.Point{
		{Name: "A", Lat: 0, Lon: 0},
		{Name: "far", Lat: 0, Lon: 10},
		{Name: "near", Lat: 0, Lon: 1},
		{Name: "mid", Lat: 0, Lon: 5},
	})

	order, err := NearestNeighborOrder(dm, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 2, 3, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	if _, err := NearestNeighborOrder(dm, 4); err == nil {
		t.Fatal("expected error for out-of-range start")
	}
}

func TestNearestNeighborOrderEmpty(t *testing.T) {
	_, dm := buildFixture(t, nil)
	order, err := NearestNeighborOrder(dm, 0)
	if err != nil || len(order) != 0 {
		t.Fatalf("order = %v err = %v, want empty", order, err)
	}
}
