// Package ebitenui runs canopy scenes in an ebiten window. Shapes are
// tessellated on the CPU and filled with DrawTriangles from a 1x1 white
// source image; the vertex colors carry the paint.
package ebitenui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/canopy"
)

// --- White pixel singleton (no sync.Once; ebiten draws on one goroutine) ---

var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Canvas implements canopy.Canvas on an ebiten image. It keeps its own
// matrix stack and bakes the current matrix into vertex positions.
type Canvas struct {
	target  *ebiten.Image
	current canopy.Matrix
	stack   []canopy.Matrix

	verts []ebiten.Vertex
	inds  []uint16

	// DrawCalls counts DrawTriangles submissions since the last Reset.
	DrawCalls int
}

var _ canopy.Canvas = (*Canvas)(nil)

// NewCanvas returns a canvas drawing into target.
func NewCanvas(target *ebiten.Image) *Canvas {
	return &Canvas{target: target, current: canopy.Identity}
}

// Reset retargets the canvas and clears the matrix stack.
func (c *Canvas) Reset(target *ebiten.Image) {
	c.target = target
	c.current = canopy.Identity
	c.stack = c.stack[:0]
	c.DrawCalls = 0
}

// Matrix returns the current transform.
func (c *Canvas) Matrix() canopy.Matrix { return c.current }

func (c *Canvas) Save() {
	c.stack = append(c.stack, c.current)
}

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.current = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) Translate(dx, dy float64) {
	c.current = c.current.Multiply(canopy.TranslateMatrix(dx, dy))
}

func (c *Canvas) Concat(m canopy.Matrix) {
	c.current = c.current.Multiply(m)
}

func (c *Canvas) DrawRect(r canopy.Rect, radii canopy.CornerRadii, p canopy.Paint) {
	c.drawOutline(canopy.RoundedRectPath(r, radii), p)
}

func (c *Canvas) DrawEllipse(r canopy.Rect, p canopy.Paint) {
	c.drawOutline(canopy.EllipsePath(r), p)
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, p canopy.Paint) {
	if !p.HasStroke() {
		return
	}
	c.verts, c.inds = c.verts[:0], c.inds[:0]
	c.verts, c.inds = appendSegment(c.verts, c.inds, c.current,
		canopy.Vec2{X: x0, Y: y0}, canopy.Vec2{X: x1, Y: y1}, p.StrokeWidth, paintColor(p.Stroke, p.Opacity))
	c.flush()
}

func (c *Canvas) drawOutline(pts []canopy.Vec2, p canopy.Paint) {
	if len(pts) < 3 {
		return
	}
	if !p.Fill.IsTransparent() {
		c.verts, c.inds = c.verts[:0], c.inds[:0]
		c.verts, c.inds = appendFan(c.verts, c.inds, c.current, pts, paintColor(p.Fill, p.Opacity))
		c.flush()
	}
	if p.HasStroke() {
		c.verts, c.inds = c.verts[:0], c.inds[:0]
		col := paintColor(p.Stroke, p.Opacity)
		for i := range pts {
			c.verts, c.inds = appendSegment(c.verts, c.inds, c.current, pts[i], pts[(i+1)%len(pts)], p.StrokeWidth, col)
		}
		c.flush()
	}
}

func (c *Canvas) flush() {
	if c.target == nil || len(c.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	c.target.DrawTriangles(c.verts, c.inds, ensureWhitePixel(), &op)
	c.DrawCalls++
}

func paintColor(col canopy.Color, opacity float64) canopy.Color {
	if opacity < 1 {
		return col.WithAlpha(opacity)
	}
	return col
}

func vertex(m canopy.Matrix, x, y float64, col canopy.Color) ebiten.Vertex {
	dx, dy := m.Apply(x, y)
	return ebiten.Vertex{
		DstX:   float32(dx),
		DstY:   float32(dy),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(col.R),
		ColorG: float32(col.G),
		ColorB: float32(col.B),
		ColorA: float32(col.A),
	}
}

// appendFan triangulates a convex outline as a fan from its first point.
func appendFan(verts []ebiten.Vertex, inds []uint16, m canopy.Matrix, pts []canopy.Vec2, col canopy.Color) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	for _, p := range pts {
		verts = append(verts, vertex(m, p.X, p.Y, col))
	}
	for i := 1; i < len(pts)-1; i++ {
		inds = append(inds, base, base+uint16(i), base+uint16(i+1))
	}
	return verts, inds
}

// appendSegment emits a quad of the given width centered on a-b.
func appendSegment(verts []ebiten.Vertex, inds []uint16, m canopy.Matrix, a, b canopy.Vec2, width float64, col canopy.Color) ([]ebiten.Vertex, []uint16) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return verts, inds
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	base := uint16(len(verts))
	verts = append(verts,
		vertex(m, a.X+nx, a.Y+ny, col),
		vertex(m, b.X+nx, b.Y+ny, col),
		vertex(m, b.X-nx, b.Y-ny, col),
		vertex(m, a.X-nx, a.Y-ny, col),
	)
	inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	return verts, inds
}
