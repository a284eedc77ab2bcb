package main

import (
	"fmt"
	"strings"

	"github.com/phanxgames/canopy"
	"github.com/spf13/cobra"
)

func newRouteCmd(a *app) *cobra.Command {
	var (
		strategy string
		handleAt string
	)
	cmd := &cobra.Command{
		Use:   "route <scene.yaml> <x> <y>",
		Short: "Raise a probe event at the hit target and print the visit order.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, ok := canopy.ParseRoutingStrategy(strategy)
			if !ok {
				return fmt.Errorf("route: unknown strategy %q", strategy)
			}
			x, y, err := parsePoint(args[1], args[2])
			if err != nil {
				return err
			}
			scene, tree, err := a.loadScene(args[0], float64(a.cfg.Render.Width), float64(a.cfg.Render.Height))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			target := scene.HitTest(x, y)
			if target == nil {
				fmt.Fprintln(out, "route: no target")
				return nil
			}

			probe := canopy.NewRoutedEvent("Probe", rs)
			var visited []string
			tree.Root.Walk(func(n *canopy.Node) bool {
				n.AddHandler(probe, func(node *canopy.Node, e *canopy.RoutedEventArgs) {
					visited = append(visited, nodeLabel(node))
					if handleAt != "" && node.Name == handleAt {
						e.Handled = true
					}
				})
				return true
			})

			probeArgs := canopy.NewRoutedEventArgs(probe, target)
			canopy.RaiseEvent(target, probeArgs)

			fmt.Fprintf(out, "strategy: %s\n", rs)
			fmt.Fprintf(out, "target: %s\n", nodeLabel(target.AsNode()))
			fmt.Fprintf(out, "visited: %s\n", strings.Join(visited, " > "))
			fmt.Fprintf(out, "handled: %t\n", probeArgs.Handled)
			return nil
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", "bubble", "routing strategy: tunnel, bubble or direct")
	cmd.Flags().StringVar(&handleAt, "handle-at", "", "mark the event handled at the node with this name")
	return cmd
}
