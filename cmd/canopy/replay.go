package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/ggcanvas"
	"github.com/phanxgames/canopy/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const replayFrameDelta = float32(1.0 / 60)

func newReplayCmd(a *app) *cobra.Command {
	var snapshots string
	cmd := &cobra.Command{
		Use:   "replay <scene.yaml> <script.json>",
		Short: "Run a scripted interaction headlessly and write snapshots.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("replay: %w", err)
			}
			runner, err := canopy.LoadTestScript(data)
			if err != nil {
				return fmt.Errorf("replay %s: %w", args[1], err)
			}
			w, h := a.cfg.Render.Width, a.cfg.Render.Height
			scene, _, err := a.loadScene(args[0], float64(w), float64(h))
			if err != nil {
				return err
			}
			bg, err := a.background()
			if err != nil {
				return err
			}
			vw, vh := scene.Viewport()
			surface := ggcanvas.NewSurface(int(vw), int(vh))
			surface.SetBackground(bg)
			if snapshots == "" {
				snapshots = a.cfg.Render.SnapshotDir
			}
			surface.SetDir(snapshots)

			log := observability.GetLogger()
			out := cmd.OutOrStdout()
			events := 0
			scene.Events.Connect(func(e *canopy.RoutedEventArgs) {
				events++
				fields := []zap.Field{zap.Stringer("event", e.Event)}
				if e.OriginalSource != nil {
					fields = append(fields, zap.String("source", nodeLabel(e.OriginalSource)))
				}
				log.Debug("routed event", fields...)
			})
			scene.Screenshots.Connect(func(st canopy.ScreenshotTaken) {
				fmt.Fprintln(out, st.Path)
			})

			scene.SetTestRunner(runner)
			frames := 0
			for !runner.Done() {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if frames >= a.cfg.Render.MaxReplayFrames {
					return fmt.Errorf("replay: script did not finish within %d frames", frames)
				}
				scene.Update(replayFrameDelta)
				scene.Frame(surface)
				frames++
			}
			started, total := runner.Progress()
			log.Info("replay finished",
				zap.Int("frames", frames),
				zap.Int("steps", started),
				zap.Int("total", total),
				zap.Int("events", events))
			if err := runner.Err(); err != nil {
				return fmt.Errorf("replay %s: %w", args[1], err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshots, "snapshots", "", "snapshot directory (default render.snapshot_dir)")
	return cmd
}
