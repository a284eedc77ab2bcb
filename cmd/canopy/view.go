package main

import (
	"github.com/phanxgames/canopy/ebitenui"
	"github.com/spf13/cobra"
)

func newViewCmd(a *app) *cobra.Command {
	var showFPS bool
	cmd := &cobra.Command{
		Use:   "view <scene.yaml>",
		Short: "Open a scene in a window.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h := a.cfg.Window.Width, a.cfg.Window.Height
			scene, _, err := a.loadScene(args[0], float64(w), float64(h))
			if err != nil {
				return err
			}
			bg, err := a.background()
			if err != nil {
				return err
			}
			vw, vh := scene.Viewport()
			return ebitenui.RunContext(cmd.Context(), scene, ebitenui.RunConfig{
				Title:      a.cfg.Window.Title + " - " + args[0],
				Width:      int(vw),
				Height:     int(vh),
				Resizable:  a.cfg.Window.Resizable,
				ShowFPS:    showFPS,
				Background: bg,
			})
		},
	}
	cmd.Flags().BoolVar(&showFPS, "fps", false, "show FPS and TPS")
	return cmd
}
