package main

import (
	"fmt"
	"tour-route-service/internal/matrix"
	"tour-route-service/internal/services"

	"github.com/spf13/cobra"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize nearest and farthest neighbour distances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer s.Close()

			ps, err := s.pointSet(cmd.Context())
			if err != nil {
				return err
			}
			dm, err := services.LoadOrBuildMatrix(cmd.Context(), ps, s.cache())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "points: %d\n", ps.Len())
			for _, row := range []struct {
				label string
				s     matrix.Summary
			}{
				{"nearest", matrix.Summarize(dm.NearestDistances())},
				{"farthest", matrix.Summarize(dm.FarthestDistances())},
			} {
				fmt.Fprintf(w, "%-8s  min=%.1f  mean=%.1f  max=%.1f miles\n", row.label, row.s.Min, row.s.Mean, row.s.Max)
			}
			return nil
		},
	}
}
