package canopy

// Paint is the fill and stroke state for one shape-drawing call.
type Paint struct {
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	// Opacity multiplies the alpha of both Fill and Stroke.
	Opacity float64
}

// HasStroke reports whether the stroke would be visible.
func (p Paint) HasStroke() bool {
	return p.StrokeWidth > 0 && !p.Stroke.IsTransparent()
}

// Canvas is the drawing capability used by the paint walk. Save and Restore
// scope Translate and Concat. Shapes with zero or negative size are skipped
// by implementations.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Concat(m Matrix)
	DrawRect(r Rect, radii CornerRadii, p Paint)
	DrawEllipse(r Rect, p Paint)
	DrawLine(x0, y0, x1, y1 float64, p Paint)
}

// paintStats counts work done by one paint walk.
type paintStats struct {
	visited int
	painted int
	skipped int
}

// paintNode issues save, translate, draw-self, children, restore for n.
// Children are drawn in n's content-box frame.
func paintNode(c Canvas, n *Node, parentAlpha float64, stats *paintStats) {
	stats.visited++
	v := n.visual
	if v == nil {
		for _, child := range n.children {
			paintNode(c, child, parentAlpha, stats)
		}
		return
	}
	if !v.visible || v.opacity <= 0 {
		stats.skipped++
		return
	}
	if !v.transform.IsIdentity() && !v.transform.Invertible() {
		stats.skipped++
		return
	}
	alpha := parentAlpha * v.opacity

	c.Save()
	c.Translate(v.left, v.top)
	if !v.transform.IsIdentity() {
		c.Concat(v.transform)
	}
	if v.paintSelf(c, alpha) {
		stats.painted++
	}
	if len(n.children) > 0 {
		ox, oy := v.contentOffset()
		if ox != 0 || oy != 0 {
			c.Translate(ox, oy)
		}
		for _, child := range n.children {
			paintNode(c, child, alpha, stats)
		}
	}
	c.Restore()
}

// paintSelf draws v's own shape at the origin of the current frame. It
// reports whether a draw call was issued.
func (v *VisualNode) paintSelf(c Canvas, alpha float64) bool {
	if v.width <= 0 || v.height <= 0 {
		return false
	}
	p := v.shapePaint(alpha)
	if p.Fill.IsTransparent() && !p.HasStroke() {
		return false
	}
	bounds := Rect{Width: v.width, Height: v.height}
	switch v.Type {
	case NodeTypeEllipse:
		c.DrawEllipse(bounds, p)
	default:
		c.DrawRect(bounds, v.radii.Clamp(v.width, v.height), p)
	}
	return true
}

// shapePaint uses the mean border width as the stroke width.
func (v *VisualNode) shapePaint(alpha float64) Paint {
	p := Paint{Fill: v.background, Opacity: alpha}
	b := v.border
	if b.Left > 0 || b.Top > 0 || b.Right > 0 || b.Bottom > 0 {
		p.Stroke = v.borderColor
		p.StrokeWidth = (b.Left + b.Top + b.Right + b.Bottom) / 4
	}
	return p
}
