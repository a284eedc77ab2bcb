package canopy

import "go.uber.org/zap"

// HitShape is a custom hit region in a node's local (border-box) frame.
type HitShape interface {
	Contains(x, y float64) bool
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitEllipse is the ellipse inscribed in a Width x Height box at the origin.
type HitEllipse struct {
	Width, Height float64
}

// Contains reports whether (x, y) lies inside or on the ellipse.
func (e HitEllipse) Contains(x, y float64) bool {
	if e.Width <= 0 || e.Height <= 0 {
		return false
	}
	rx, ry := e.Width/2, e.Height/2
	dx := (x - rx) / rx
	dy := (y - ry) / ry
	return dx*dx+dy*dy <= 1
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Hit testing ---

// HitTest returns the deepest, topmost visual node under (x, y), or nil.
// The point is in the frame of n's parent: the scene frame when n is the root.
//
// Invisible and fully transparent nodes are skipped with their whole
// subtree, as are nodes whose transform cannot be inverted. Children are
// tested last-added first, the inverse of paint order. Group nodes have no
// bounds and forward the point to their children unchanged.
func (n *Node) HitTest(x, y float64) *VisualNode {
	if n == nil || n.disposed {
		return nil
	}
	v := n.visual
	if v == nil {
		return hitChildren(n.children, x, y)
	}
	if !v.visible || v.opacity <= 0 {
		return nil
	}
	lx, ly, ok := v.parentToLocal(x, y)
	if !ok {
		return nil
	}
	if !v.ContainsLocal(lx, ly) {
		return nil
	}
	ox, oy := v.contentOffset()
	if hit := hitChildren(n.children, lx-ox, ly-oy); hit != nil {
		return hit
	}
	return v
}

func hitChildren(children []*Node, x, y float64) *VisualNode {
	for i := len(children) - 1; i >= 0; i-- {
		if hit := children[i].HitTest(x, y); hit != nil {
			return hit
		}
	}
	return nil
}

// parentToLocal maps a point in the parent's content-box frame into v's
// local frame. The second result is false for a singular transform.
func (v *VisualNode) parentToLocal(x, y float64) (float64, float64, bool) {
	lx, ly := x-v.left, y-v.top
	if v.transform.IsIdentity() {
		return lx, ly, true
	}
	inv, ok := v.transform.Invert()
	if !ok {
		logger().Debug("hit test: singular transform", zap.String("node", v.Name))
		return 0, 0, false
	}
	lx, ly = inv.Apply(lx, ly)
	return lx, ly, true
}

// ContainsLocal is the bounds test used by HitTest, in v's local frame.
// HitShape takes precedence; ellipses test the inscribed ellipse; everything
// else tests the border box with inclusive edges. Zero or negative sizes
// never contain a point.
func (v *VisualNode) ContainsLocal(lx, ly float64) bool {
	if v.HitShape != nil {
		return v.HitShape.Contains(lx, ly)
	}
	if v.width <= 0 || v.height <= 0 {
		return false
	}
	if v.Type == NodeTypeEllipse {
		return HitEllipse{Width: v.width, Height: v.height}.Contains(lx, ly)
	}
	return lx >= 0 && lx <= v.width && ly >= 0 && ly <= v.height
}
