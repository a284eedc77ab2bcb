package ebitenui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/canopy"
)

// Surface presents frames on the ebiten screen image handed to Game.Draw.
type Surface struct {
	screen     *ebiten.Image
	canvas     *Canvas
	background canopy.Color

	// ScreenshotDir is where Snapshot writes PNG files.
	ScreenshotDir string
}

var (
	_ canopy.Surface     = (*Surface)(nil)
	_ canopy.Snapshotter = (*Surface)(nil)
)

// NewSurface returns a surface that clears to background every frame.
func NewSurface(background canopy.Color) *Surface {
	return &Surface{
		canvas:        NewCanvas(nil),
		background:    background,
		ScreenshotDir: "screenshots",
	}
}

// SetScreen sets the image the next frame draws into.
func (s *Surface) SetScreen(screen *ebiten.Image) { s.screen = screen }

// BeginFrame returns false until a screen has been set.
func (s *Surface) BeginFrame() (canopy.Canvas, bool) {
	if s.screen == nil {
		return nil, false
	}
	if !s.background.IsTransparent() {
		s.screen.Fill(s.background.RGBA())
	}
	s.canvas.Reset(s.screen)
	return s.canvas, true
}

func (s *Surface) EndFrame() {}

// Snapshot reads the screen back and writes it as a PNG.
func (s *Surface) Snapshot(label string) (string, error) {
	if s.screen == nil {
		return "", fmt.Errorf("snapshot: no screen")
	}
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: mkdir %s: %w", s.ScreenshotDir, err)
	}

	bounds := s.screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	s.screen.ReadPixels(pixels)

	path := canopy.SnapshotPath(s.ScreenshotDir, label, time.Now())
	if err := writePNG(path, unpremultiply(pixels, w, h)); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return path, nil
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
