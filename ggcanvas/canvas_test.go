package ggcanvas

import (
	"image/color"
	"math"
	"os"
	"testing"

	"github.com/fogleman/gg"
	"github.com/phanxgames/canopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = canopy.Color{R: 1, A: 1}
	blue = canopy.Color{B: 1, A: 1}
)

func rgbaAt(t *testing.T, ctx *gg.Context, x, y int) color.NRGBA {
	t.Helper()
	return color.NRGBAModel.Convert(ctx.Image().At(x, y)).(color.NRGBA)
}

func isRed(c color.NRGBA) bool  { return c.R > 200 && c.G < 50 && c.B < 50 && c.A > 200 }
func isBlue(c color.NRGBA) bool { return c.B > 200 && c.R < 50 && c.G < 50 && c.A > 200 }

func TestDrawRectFill(t *testing.T) {
	ctx := gg.NewContext(40, 40)
	c := New(ctx)
	c.DrawRect(canopy.Rect{X: 10, Y: 10, Width: 10, Height: 10}, canopy.CornerRadii{}, canopy.Paint{Fill: red, Opacity: 1})

	assert.True(t, isRed(rgbaAt(t, ctx, 15, 15)))
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 5, 5).A)
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 25, 25).A)
}

func TestDrawRectSkipsEmpty(t *testing.T) {
	ctx := gg.NewContext(20, 20)
	c := New(ctx)
	c.DrawRect(canopy.Rect{Width: 0, Height: 10}, canopy.CornerRadii{}, canopy.Paint{Fill: red, Opacity: 1})
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 0, 5).A)
}

func TestRoundedCornerLeavesCornerEmpty(t *testing.T) {
	ctx := gg.NewContext(40, 40)
	c := New(ctx)
	radii := canopy.CornerRadii{TopLeft: 15, TopRight: 15, BottomRight: 15, BottomLeft: 15}
	c.DrawRect(canopy.Rect{Width: 40, Height: 40}, radii, canopy.Paint{Fill: red, Opacity: 1})

	assert.True(t, isRed(rgbaAt(t, ctx, 20, 20)))
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 0, 0).A)
}

func TestDrawEllipse(t *testing.T) {
	ctx := gg.NewContext(40, 40)
	c := New(ctx)
	c.DrawEllipse(canopy.Rect{Width: 40, Height: 40}, canopy.Paint{Fill: blue, Opacity: 1})

	assert.True(t, isBlue(rgbaAt(t, ctx, 20, 20)))
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 1, 1).A)
}

func TestOpacityScalesAlpha(t *testing.T) {
	ctx := gg.NewContext(10, 10)
	c := New(ctx)
	c.DrawRect(canopy.Rect{Width: 10, Height: 10}, canopy.CornerRadii{}, canopy.Paint{Fill: red, Opacity: 0.5})

	a := rgbaAt(t, ctx, 5, 5).A
	assert.InDelta(t, 128, int(a), 2)
}

func TestSaveRestoreScopesTranslate(t *testing.T) {
	ctx := gg.NewContext(40, 40)
	c := New(ctx)
	c.Save()
	c.Translate(20, 20)
	c.Restore()
	c.DrawRect(canopy.Rect{Width: 10, Height: 10}, canopy.CornerRadii{}, canopy.Paint{Fill: red, Opacity: 1})

	assert.True(t, isRed(rgbaAt(t, ctx, 5, 5)))
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 25, 25).A)
}

func TestConcatScale(t *testing.T) {
	ctx := gg.NewContext(40, 40)
	c := New(ctx)
	c.Concat(canopy.ScaleMatrix(2, 2))
	c.DrawRect(canopy.Rect{Width: 10, Height: 10}, canopy.CornerRadii{}, canopy.Paint{Fill: red, Opacity: 1})

	assert.True(t, isRed(rgbaAt(t, ctx, 15, 15)))
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 25, 25).A)
}

func TestConcatRotation(t *testing.T) {
	ctx := gg.NewContext(60, 60)
	c := New(ctx)
	// Quarter turn clockwise then shift right: (x, y) -> (50 - y, x).
	c.Concat(canopy.TranslateMatrix(50, 0).Multiply(canopy.RotateMatrix(math.Pi / 2)))
	c.DrawRect(canopy.Rect{Width: 20, Height: 10}, canopy.CornerRadii{}, canopy.Paint{Fill: red, Opacity: 1})

	assert.True(t, isRed(rgbaAt(t, ctx, 45, 10)))
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 55, 10).A)
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 45, 30).A)
}

func TestDrawLineNeedsStroke(t *testing.T) {
	ctx := gg.NewContext(20, 20)
	c := New(ctx)
	c.DrawLine(0, 10, 20, 10, canopy.Paint{Fill: red, Opacity: 1})
	assert.Equal(t, uint8(0), rgbaAt(t, ctx, 10, 10).A)

	c.DrawLine(0, 10, 20, 10, canopy.Paint{Stroke: red, StrokeWidth: 4, Opacity: 1})
	assert.True(t, isRed(rgbaAt(t, ctx, 10, 10)))
}

func newTestScene() *canopy.Scene {
	root := canopy.NewBox("root")
	root.SetSize(100, 100)
	root.SetBackground(blue)

	child := canopy.NewBox("child")
	child.SetSize(20, 20)
	child.SetAlignment(canopy.AlignCenter)
	child.SetJustification(canopy.JustifyCenter)
	child.SetBackground(red)
	root.AddChild(child)

	s := canopy.NewScene()
	s.SetViewport(200, 200)
	s.SetRoot(root)
	return s
}

func TestSurfaceRendersScene(t *testing.T) {
	s := newTestScene()
	surface := NewSurface(200, 200)

	require.True(t, s.Frame(surface))
	assert.Equal(t, 1, surface.Frames())

	img := surface.Image()
	at := func(x, y int) color.NRGBA { return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA) }
	assert.True(t, isRed(at(50, 50)), "centered child")
	assert.True(t, isBlue(at(10, 10)), "root background")
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, at(150, 150), "cleared to white")
}

func TestSurfaceClearsBetweenFrames(t *testing.T) {
	s := newTestScene()
	surface := NewSurface(200, 200)
	surface.SetBackground(canopy.ColorBlack)
	require.True(t, s.Frame(surface))

	s.Root().AsVisual().SetVisible(false)
	s.Frame(surface)
	c := color.NRGBAModel.Convert(surface.Image().At(50, 50)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, c)
}

func TestSnapshotThroughScene(t *testing.T) {
	s := newTestScene()
	surface := NewSurface(200, 200)
	surface.SetDir(t.TempDir())

	var taken []canopy.ScreenshotTaken
	s.Screenshots.Connect(func(st canopy.ScreenshotTaken) { taken = append(taken, st) })
	s.Screenshot("first frame")
	s.Frame(surface)

	require.Len(t, taken, 1)
	assert.Equal(t, "first frame", taken[0].Label)
	assert.Contains(t, taken[0].Path, "first_frame.png")
	_, err := os.Stat(taken[0].Path)
	require.NoError(t, err)
}
