package main

import (
	"fmt"
	"strings"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/internal/config"
	"github.com/phanxgames/canopy/internal/observability"
	"github.com/phanxgames/canopy/scenefile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile string
	debug   bool
	v       *viper.Viper
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "canopy",
		Short:         "Render, hit test and replay canopy scene files.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger)
				return err
			}
			if a.debug {
				cfg.Logger.Level = "debug"
			}
			a.cfg = cfg
			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("config loaded",
				zap.String("file", a.v.ConfigFileUsed()),
				zap.String("version", Version))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./canopy.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log at debug level")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newRenderCmd(a),
		newHitCmd(a),
		newRouteCmd(a),
		newReplayCmd(a),
		newViewCmd(a),
	)
	return root
}

// loadScene builds the scene file at path into a scene whose viewport is the
// document's, falling back to the given size.
func (a *app) loadScene(path string, fallbackW, fallbackH float64) (*canopy.Scene, *scenefile.Tree, error) {
	tree, err := scenefile.LoadTree(path)
	if err != nil {
		return nil, nil, err
	}
	w, h := tree.Viewport.Width, tree.Viewport.Height
	if w <= 0 || h <= 0 {
		w, h = fallbackW, fallbackH
	}
	scene := canopy.NewScene()
	scene.SetViewport(w, h)
	scene.SetRoot(tree.Root)
	return scene, tree, nil
}

func (a *app) background() (canopy.Color, error) {
	c, err := canopy.ParseHexColor(a.cfg.Render.Background)
	if err != nil {
		return canopy.Color{}, fmt.Errorf("render.background: %w", err)
	}
	return c, nil
}

// pathString renders the root-first path to n as "a > b > c".
func pathString(n *canopy.Node) string {
	route := canopy.NewEventRoute(nil)
	route.BuildPath(n)
	labels := make([]string, 0, len(route.Path()))
	for _, p := range route.Path() {
		labels = append(labels, nodeLabel(p))
	}
	return strings.Join(labels, " > ")
}

func nodeLabel(n *canopy.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("#%d", n.ID)
}
