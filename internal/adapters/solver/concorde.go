package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"tour-route-service/internal/platform/obs"
)

// Concorde runs an external TSP binary against <name>.tsp in a fresh working
// directory and returns the contents of the <name>.sol file it leaves behind.
type Concorde struct {
	// Binary is the solver executable, looked up on PATH when not absolute.
	Binary string
	// Args are passed before the instance file. An argument equal to
	// InstancePlaceholder is replaced by the file name instead.
	Args []string
	// WorkDir is the parent for per-run directories.
	WorkDir string
	// KeepFiles leaves the per-run directory in place for inspection.
	KeepFiles bool
}

const InstancePlaceholder = "{instance}"

func NewConcorde(binary, workDir string) *Concorde {
	return &Concorde{Binary: binary, WorkDir: workDir}
}

func (c *Concorde) argv(instanceFile string) []string {
	args := make([]string, 0, len(c.Args)+1)
	placed := false
	for _, a := range c.Args {
		if a == InstancePlaceholder {
			a = instanceFile
			placed = true
		}
		args = append(args, a)
	}
	if !placed {
		args = append(args, instanceFile)
	}
	return args
}

func (c *Concorde) Solve(ctx context.Context, name string, instance []byte) (_ []byte, err error) {
	defer obs.Time(ctx, "solver.concorde.Solve")(&err)

	base, err := fileBase(name)
	if err != nil {
		return nil, fmt.Errorf("concorde: %w", err)
	}
	if strings.TrimSpace(c.Binary) == "" {
		return nil, errors.New("concorde: binary is not configured")
	}

	if c.WorkDir != "" {
		if err := os.MkdirAll(c.WorkDir, 0o755); err != nil {
			return nil, fmt.Errorf("concorde: create work dir: %w", err)
		}
	}
	runDir, err := os.MkdirTemp(c.WorkDir, base+"-")
	if err != nil {
		return nil, fmt.Errorf("concorde: create run dir: %w", err)
	}
	if !c.KeepFiles {
		defer os.RemoveAll(runDir)
	}

	tspFile := base + ".tsp"
	if err := os.WriteFile(filepath.Join(runDir, tspFile), instance, 0o644); err != nil {
		return nil, fmt.Errorf("concorde: write instance: %w", err)
	}

	args := c.argv(tspFile)

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Dir = runDir
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("concorde: %w", ctxErr)
		}
		return nil, fmt.Errorf("concorde: run %s: %w: %s", c.Binary, err, tail(output.String(), 512))
	}

	solution, err := os.ReadFile(filepath.Join(runDir, base+".sol"))
	if err != nil {
		return nil, fmt.Errorf("concorde: read solution: %w", err)
	}

	return solution, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
