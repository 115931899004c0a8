package main

import (
	"fmt"
	"io"
	"os"
	"tour-route-service/internal/adapters/export"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/services"

	"github.com/spf13/cobra"
)

func newRouteCmd(root *rootOptions) *cobra.Command {
	var geojsonDir string

	cmd := &cobra.Command{
		Use:   "route SOLUTION_FILE",
		Short: "Turn a solver solution file into the closed route and its length",
		Args:  cobra.ExactArgs(1),
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

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open solution: %w", err)
			}
			defer f.Close()

			route, err := services.RouteFromSolution(f, ps, dm)
			if err != nil {
				return err
			}

			printRoute(cmd.OutOrStdout(), route)
			if geojsonDir != "" {
				return export.NewGeoJSON(geojsonDir).Export(cmd.Context(), route, ps)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&geojsonDir, "geojson", "", "also write tsp_point.json and tsp_line.json to this directory")
	return cmd
}

func printRoute(w io.Writer, route *domain.Route) {
	for i, stop := range route.Stops {
		fmt.Fprintf(w, "%3d  %s\n", i, stop)
	}
	fmt.Fprintf(w, "total: %.3f miles over %d legs\n", route.TotalDistanceMiles, route.Legs())
}
