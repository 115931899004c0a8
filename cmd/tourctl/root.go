package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"tour-route-service/internal/adapters/source"
	"tour-route-service/internal/app"
	"tour-route-service/internal/config"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/ports"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	csvPath    string
	contiguous bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tourctl",
		Short:         "Build great-circle tours over named points",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.csvPath, "csv", "", "read points from a name,lat,lon CSV instead of the configured source")
	root.PersistentFlags().BoolVar(&opts.contiguous, "contiguous-us", false, "drop points outside the contiguous US")

	root.AddCommand(
		newEncodeCmd(opts),
		newRouteCmd(opts),
		newPlanCmd(opts),
		newStatsCmd(opts),
	)
	return root
}

// session holds the adapters one command runs against.
type session struct {
	cfg      config.Config
	source   ports.PointSource
	adapters *app.Adapters
}

func (s *session) Close() {
	if s.adapters != nil {
		s.adapters.Close()
	}
}

// openSession uses the --csv file when given, otherwise the configured adapters.
func openSession(ctx context.Context, opts *rootOptions) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}

	if opts.csvPath != "" {
		s.source = source.NewCSVSource(opts.csvPath)
	} else {
		a, err := app.Build(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.adapters = a
		s.source = a.Source
	}

	if opts.contiguous {
		s.source = source.NewBoundsFilter(s.source, source.ContiguousUS, source.IslandParks...)
	}
	return s, nil
}

func (s *session) pointSet(ctx context.Context) (*domain.PointSet, error) {
	points, err := s.source.ListPoints(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PointSetFromPoints(points)
}

func (s *session) cache() ports.MatrixCache {
	if s.adapters == nil {
		return nil
	}
	return s.adapters.Cache
}

// output returns the named file, or the command's stdout for "" and "-".
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
