package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parsePoint(xs, ys string) (float64, float64, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse x: %w", err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse y: %w", err)
	}
	return x, y, nil
}

func newHitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hit <scene.yaml> <x> <y>",
		Short: "Print the topmost node under a scene point.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args[1], args[2])
			if err != nil {
				return err
			}
			scene, _, err := a.loadScene(args[0], float64(a.cfg.Render.Width), float64(a.cfg.Render.Height))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			hit := scene.HitTest(x, y)
			if hit == nil {
				fmt.Fprintln(out, "hit: none")
				return nil
			}
			lx, ly, _ := hit.SceneToLocal(x, y)
			fmt.Fprintf(out, "hit: %s\n", nodeLabel(hit.AsNode()))
			fmt.Fprintf(out, "local: %g,%g\n", lx, ly)
			fmt.Fprintf(out, "path: %s\n", pathString(hit.AsNode()))
			return nil
		},
	}
}
