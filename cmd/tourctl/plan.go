package main

import (
	"context"
	"tour-route-service/internal/adapters/export"
	"tour-route-service/internal/app"
	"tour-route-service/internal/services"

	"github.com/spf13/cobra"
)

func newPlanCmd(root *rootOptions) *cobra.Command {
	var name, solverName, geojsonDir string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the full pipeline: points, matrix, solver, route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer s.Close()

			cfg := s.cfg
			if solverName != "" {
				cfg.Solver = solverName
			}
			solver, err := app.NewSolver(cfg)
			if err != nil {
				return err
			}
			if name == "" {
				name = cfg.InstanceName
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SolverTimeout)
			defer cancel()

			plan, err := services.PlanTour(ctx, services.PlanTourRequest{Name: name}, s.source, s.cache(), solver)
			if err != nil {
				return err
			}

			printRoute(cmd.OutOrStdout(), plan.Route)
			if geojsonDir != "" {
				return export.NewGeoJSON(geojsonDir).Export(ctx, plan.Route, plan.Points)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "instance name (default INSTANCE_NAME)")
	cmd.Flags().StringVar(&solverName, "solver", "", "concorde, file or nearest (default SOLVER)")
	cmd.Flags().StringVar(&geojsonDir, "geojson", "", "also write tsp_point.json and tsp_line.json to this directory")
	return cmd
}
