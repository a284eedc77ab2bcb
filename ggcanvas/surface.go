package ggcanvas

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/fogleman/gg"
	"github.com/phanxgames/canopy"
)

// Surface is an off-screen canopy.Surface backed by an RGBA image. Every
// frame starts from a cleared image.
type Surface struct {
	ctx        *gg.Context
	canvas     *Canvas
	background canopy.Color
	dir        string
	frames     int
	now        func() time.Time
}

var (
	_ canopy.Surface     = (*Surface)(nil)
	_ canopy.Snapshotter = (*Surface)(nil)
)

// NewSurface creates a width x height surface cleared to white.
func NewSurface(width, height int) *Surface {
	ctx := gg.NewContext(width, height)
	return &Surface{
		ctx:        ctx,
		canvas:     New(ctx),
		background: canopy.ColorWhite,
		dir:        "snapshots",
		now:        time.Now,
	}
}

// SetBackground sets the clear color used by BeginFrame.
func (s *Surface) SetBackground(c canopy.Color) { s.background = c }

// Background returns the clear color.
func (s *Surface) Background() canopy.Color { return s.background }

// SetDir sets the directory Snapshot writes into.
func (s *Surface) SetDir(dir string) { s.dir = dir }

// Dir returns the snapshot directory.
func (s *Surface) Dir() string { return s.dir }

// Size returns the surface size in pixels.
func (s *Surface) Size() (width, height int) {
	return s.ctx.Width(), s.ctx.Height()
}

// BeginFrame clears the image and returns a canvas at the identity transform.
func (s *Surface) BeginFrame() (canopy.Canvas, bool) {
	s.ctx.Identity()
	s.ctx.ResetClip()
	bg := s.background
	s.ctx.SetRGBA(bg.R, bg.G, bg.B, bg.A)
	s.ctx.Clear()
	return s.canvas, true
}

// EndFrame counts the completed frame.
func (s *Surface) EndFrame() { s.frames++ }

// Frames returns the number of completed frames.
func (s *Surface) Frames() int { return s.frames }

// Image returns the last painted frame.
func (s *Surface) Image() image.Image { return s.ctx.Image() }

// SavePNG writes the last painted frame to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

// Snapshot writes the last frame under Dir with a timestamped file name.
func (s *Surface) Snapshot(label string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: create dir: %w", err)
	}
	path := canopy.SnapshotPath(s.dir, label, s.now())
	if err := s.SavePNG(path); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return path, nil
}
