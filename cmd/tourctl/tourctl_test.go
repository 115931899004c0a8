package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const parksCSV = `name,lat,lon
Acadia,44.35,-68.21
Zion,37.30,-113.05
Yosemite,37.87,-119.54
Denali,63.33,-150.50
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parks.csv")
	if err := os.WriteFile(path, []byte(parksCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SOLVER", "nearest")
	t.Setenv("DB_DRIVER", "sqlite")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeWritesInstance(t *testing.T) {
	out, err := run(t, "encode", "--csv", writeCSV(t), "--contiguous-us")
	if err != nil {
		t.Fatalf("encode: %v\n%s", err, out)
	}
	for _, want := range []string{"NAME : NP TSP", "DIMENSION : 3", "2 37.870000 -119.540000", "EOF"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "150.5") {
		t.Fatalf("Denali should be filtered out:\n%s", out)
	}
}

func TestEncodeToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "np.tsp")
	if out, err := run(t, "encode", "--csv", writeCSV(t), "--name", "parks", "-o", path); err != nil {
		t.Fatalf("encode: %v\n%s", err, out)
	}
	b, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(b), "NAME : parks\n") {
		t.Fatalf("file = %q, err = %v", b, err)
	}
}

func TestRouteFromSolutionFile(t *testing.T) {
	sol := filepath.Join(t.TempDir(), "np.sol")
	if err := os.WriteFile(sol, []byte("4\n0 3 2 1\n"), 0o644); err != nil {
		t.Fatalf("write sol: %v", err)
	}
	geo := filepath.Join(t.TempDir(), "results")

	out, err := run(t, "route", "--csv", writeCSV(t), "--geojson", geo, sol)
	if err != nil {
		t.Fatalf("route: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Denali") || !strings.Contains(out, "over 4 legs") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(geo, "tsp_point.json")); err != nil {
		t.Fatalf("geojson not written: %v", err)
	}
}

func TestRouteRejectsInvalidSolution(t *testing.T) {
	sol := filepath.Join(t.TempDir(), "bad.sol")
	if err := os.WriteFile(sol, []byte("4\n0 0 2 1\n"), 0o644); err != nil {
		t.Fatalf("write sol: %v", err)
	}
	if _, err := run(t, "route", "--csv", writeCSV(t), sol); err == nil || !strings.Contains(err.Error(), "invalid tour") {
		t.Fatalf("err = %v, want invalid tour", err)
	}
}

func TestPlanWithNearestSolver(t *testing.T) {
	out, err := run(t, "plan", "--csv", writeCSV(t), "--solver", "nearest")
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	if !strings.Contains(out, "total:") || !strings.Contains(out, "Acadia") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "--csv", writeCSV(t))
	if err != nil {
		t.Fatalf("stats: %v\n%s", err, out)
	}
	if !strings.Contains(out, "points: 4") || !strings.Contains(out, "nearest") || !strings.Contains(out, "farthest") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
