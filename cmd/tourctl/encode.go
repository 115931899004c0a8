package main

import (
	"fmt"
	"tour-route-service/internal/tsplib"

	"github.com/spf13/cobra"
)

func newEncodeCmd(root *rootOptions) *cobra.Command {
	var name, comment, out string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Write the solver instance file for the current points",
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

			w, closeFn, err := output(cmd, out)
			if err != nil {
				return err
			}
			if _, err := w.Write(tsplib.Encode(ps, tsplib.Options{Name: name, Comment: comment})); err != nil {
				closeFn()
				return fmt.Errorf("write instance: %w", err)
			}
			return closeFn()
		},
	}

	cmd.Flags().StringVar(&name, "name", tsplib.DefaultName, "instance NAME header")
	cmd.Flags().StringVar(&comment, "comment", tsplib.DefaultComment, "instance COMMENT header")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
