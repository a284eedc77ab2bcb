package ebitenui

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/canopy"
	"go.uber.org/zap"
)

const maxPointers = 10

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Resizable  bool
	ShowFPS    bool
	Background canopy.Color
	// ScreenshotDir overrides where queued screenshots are written.
	ScreenshotDir string
}

// Game adapts a canopy.Scene to ebiten.Game.
type Game struct {
	scene   *canopy.Scene
	surface *Surface
	showFPS bool
	ctx     context.Context

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchLast    [maxPointers]canopy.Vec2
	prevTouchIDs []ebiten.TouchID

	// deviceScale reports the device scale factor; swapped out in tests.
	deviceScale func() float64
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wraps scene.
func NewGame(scene *canopy.Scene, cfg RunConfig) *Game {
	surface := NewSurface(cfg.Background)
	if cfg.ScreenshotDir != "" {
		surface.ScreenshotDir = cfg.ScreenshotDir
	}
	return &Game{
		scene:       scene,
		surface:     surface,
		showFPS:     cfg.ShowFPS,
		ctx:         context.Background(),
		deviceScale: func() float64 { return ebiten.Monitor().DeviceScaleFactor() },
	}
}

// Scene returns the wrapped scene.
func (g *Game) Scene() *canopy.Scene { return g.scene }

// Update feeds mouse and touch input to the scene, unless injected input is
// pending, then advances it by one tick.
func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	if g.scene.PendingInjected() == 0 {
		mods := readModifiers()
		g.processMouse(mods)
		g.processTouches(mods)
	}
	g.scene.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// Draw runs one scene frame on screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetScreen(screen)
	g.scene.Frame(g.surface)
	if g.showFPS {
		drawFPS(screen)
	}
}

// Layout sizes the scene viewport to the window and tracks the device scale.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	if g.deviceScale != nil {
		g.scene.SetScale(g.deviceScale())
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene until it is closed.
func Run(scene *canopy.Scene, cfg RunConfig) error {
	return RunContext(context.Background(), scene, cfg)
}

// RunContext is Run with cancellation: the window closes once ctx is done.
func RunContext(ctx context.Context, scene *canopy.Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	game := NewGame(scene, cfg)
	game.ctx = ctx
	canopy.Logger().Info("window opened",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))

	err := ebiten.RunGame(game)
	if errors.Is(err, ebiten.Termination) {
		return ctx.Err()
	}
	return err
}
