package solver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
	"tour-route-service/internal/platform/obs"
)

// FileHandoff drops <name>.tsp into InDir and waits for an operator or an
// external job to place <name>.sol in OutDir. Waiting ends only when the
// solution appears or ctx is done.
type FileHandoff struct {
	InDir        string
	OutDir       string
	PollInterval time.Duration
}

func NewFileHandoff(inDir, outDir string) *FileHandoff {
	return &FileHandoff{InDir: inDir, OutDir: outDir, PollInterval: 2 * time.Second}
}

func (f *FileHandoff) Solve(ctx context.Context, name string, instance []byte) (_ []byte, err error) {
	defer obs.Time(ctx, "solver.handoff.Solve")(&err)

	base, err := fileBase(name)
	if err != nil {
		return nil, fmt.Errorf("file handoff: %w", err)
	}
	for _, dir := range []string{f.InDir, f.OutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("file handoff: create %q: %w", dir, err)
		}
	}

	solPath := filepath.Join(f.OutDir, base+".sol")
	// A solution left from an earlier run must not be mistaken for this one.
	if err := os.Remove(solPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file handoff: clear stale solution: %w", err)
	}

	tspPath := filepath.Join(f.InDir, base+".tsp")
	if err := writeFileAtomic(tspPath, instance); err != nil {
		return nil, fmt.Errorf("file handoff: write instance: %w", err)
	}
	log.Printf("req_id=%s op=solver.handoff instance=%s waiting_for=%s", obs.RequestID(ctx), tspPath, solPath)

	interval := f.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		data, err := os.ReadFile(solPath)
		switch {
		case err == nil && len(data) > 0:
			return data, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("file handoff: read solution: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("file handoff: waiting for %s: %w", solPath, ctx.Err())
		case <-ticker.C:
		}
	}
}
