// Package ggcanvas paints canopy scenes into images with fogleman/gg. It
// backs off-screen rendering, golden-image tests and the render command.
package ggcanvas

import (
	"github.com/fogleman/gg"
	"github.com/phanxgames/canopy"
)

// Canvas adapts a gg.Context to canopy.Canvas.
type Canvas struct {
	ctx *gg.Context
}

var _ canopy.Canvas = (*Canvas)(nil)

// New wraps ctx. Drawing uses the context's current transform as the scene
// origin.
func New(ctx *gg.Context) *Canvas {
	return &Canvas{ctx: ctx}
}

// Context returns the underlying gg context.
func (c *Canvas) Context() *gg.Context { return c.ctx }

func (c *Canvas) Save()    { c.ctx.Push() }
func (c *Canvas) Restore() { c.ctx.Pop() }

func (c *Canvas) Translate(dx, dy float64) {
	c.ctx.Translate(dx, dy)
}

// Concat replays m as translate, rotate, shear and scale, the primitive
// operations gg exposes.
func (c *Canvas) Concat(m canopy.Matrix) {
	if m.IsIdentity() {
		return
	}
	tx, ty, rot, shear, sx, sy := m.Decompose()
	if tx != 0 || ty != 0 {
		c.ctx.Translate(tx, ty)
	}
	if rot != 0 {
		c.ctx.Rotate(rot)
	}
	if shear != 0 {
		c.ctx.Shear(shear, 0)
	}
	if sx != 1 || sy != 1 {
		c.ctx.Scale(sx, sy)
	}
}

func (c *Canvas) DrawRect(r canopy.Rect, radii canopy.CornerRadii, p canopy.Paint) {
	if r.Empty() {
		return
	}
	radii = radii.Clamp(r.Width, r.Height)
	if radii.IsZero() {
		c.ctx.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	} else {
		c.tracePolygon(canopy.RoundedRectPath(r, radii))
	}
	c.fillAndStroke(p)
}

func (c *Canvas) DrawEllipse(r canopy.Rect, p canopy.Paint) {
	if r.Empty() {
		return
	}
	c.ctx.DrawEllipse(r.X+r.Width/2, r.Y+r.Height/2, r.Width/2, r.Height/2)
	c.fillAndStroke(p)
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, p canopy.Paint) {
	if !p.HasStroke() {
		return
	}
	c.ctx.DrawLine(x0, y0, x1, y1)
	c.setColor(p.Stroke, p.Opacity)
	c.ctx.SetLineWidth(p.StrokeWidth)
	c.ctx.Stroke()
}

func (c *Canvas) tracePolygon(pts []canopy.Vec2) {
	if len(pts) == 0 {
		return
	}
	c.ctx.NewSubPath()
	c.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		c.ctx.LineTo(pt.X, pt.Y)
	}
	c.ctx.ClosePath()
}

func (c *Canvas) fillAndStroke(p canopy.Paint) {
	if !p.Fill.IsTransparent() {
		c.setColor(p.Fill, p.Opacity)
		c.ctx.FillPreserve()
	}
	if p.HasStroke() {
		c.setColor(p.Stroke, p.Opacity)
		c.ctx.SetLineWidth(p.StrokeWidth)
		c.ctx.StrokePreserve()
	}
	c.ctx.ClearPath()
}

func (c *Canvas) setColor(col canopy.Color, opacity float64) {
	if opacity < 1 {
		col = col.WithAlpha(opacity)
	}
	c.ctx.SetRGBA(col.R, col.G, col.B, col.A)
}
