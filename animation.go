package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of a VisualNode simultaneously.
// Create one via the convenience constructors (TweenOpacity, TweenOffset,
// TweenSize, TweenRotation, TweenBackground) and either call Update(dt) each
// frame or register it with Scene.Animate. Values are written through the
// node's setters, so size tweens dirty layout. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64)
	target *VisualNode
	Done   bool
}

func newTweenGroup(node *VisualNode, from, to []float64, duration float32, fn ease.TweenFunc, apply func([4]float64)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(from), target: node, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// Update advances all tweens by dt seconds and writes the values to the
// target. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

// Target returns the animated node.
func (g *TweenGroup) Target() *VisualNode { return g.target }

// TweenOpacity animates the node's opacity to the target value.
func TweenOpacity(node *VisualNode, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []float64{node.opacity}, []float64{to}, duration, fn, func(v [4]float64) {
		node.SetOpacity(v[0])
	})
}

// TweenOffset animates the translation component of the node's transform.
func TweenOffset(node *VisualNode, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := node.transformProps
	return newTweenGroup(node, []float64{p.OffsetX, p.OffsetY}, []float64{toX, toY}, duration, fn, func(v [4]float64) {
		node.SetOffset(v[0], v[1])
	})
}

// TweenRotation animates the rotation component (radians) of the transform.
func TweenRotation(node *VisualNode, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []float64{node.transformProps.Rotation}, []float64{to}, duration, fn, func(v [4]float64) {
		node.SetRotation(v[0])
	})
}

// TweenScale animates the scale component of the transform.
func TweenScale(node *VisualNode, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := node.transformProps
	return newTweenGroup(node, []float64{p.ScaleX, p.ScaleY}, []float64{toSX, toSY}, duration, fn, func(v [4]float64) {
		node.SetScale(v[0], v[1])
	})
}

// TweenSize animates the requested width and height from the current
// resolved size. Every step dirties layout.
func TweenSize(node *VisualNode, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, []float64{node.width, node.height}, []float64{toW, toH}, duration, fn, func(v [4]float64) {
		node.SetSize(v[0], v[1])
	})
}

// TweenBackground animates all four components of the background color.
func TweenBackground(node *VisualNode, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := node.background
	return newTweenGroup(node, []float64{c.R, c.G, c.B, c.A}, []float64{to.R, to.G, to.B, to.A}, duration, fn, func(v [4]float64) {
		node.SetBackground(Color{v[0], v[1], v[2], v[3]})
	})
}
