package canopy

// VisualNode is a Node with resolved geometry, a box model, paint state, and
// one layout-engine handle. Resolved geometry is relative to the parent's
// content box and is valid after a layout pass over a subtree containing the
// node; property setters that affect layout flag the node dirty instead of
// recomputing eagerly.
type VisualNode struct {
	Node

	// Resolved geometry
	left, top     float64
	width, height float64

	// Requested size; values <= 0 mean auto.
	reqWidth, reqHeight float64

	transform      Matrix
	transformProps TransformProps

	// Box model
	margin, padding, border Insets
	radii                   CornerRadii
	borderColor             Color

	// Paint state
	opacity    float64
	visible    bool
	background Color
	foreground Color

	// Layout intent
	alignment     Alignment
	justification Justification

	// HitShape replaces the bounds test when set. Coordinates are local to
	// the node's border box.
	HitShape HitShape
	// Focusable nodes take focus when the pointer is pressed on them or a
	// descendant.
	Focusable bool

	layout LayoutHandle
}

// NewVisualNode creates a visual node of the given type backed by engine.
// A nil engine selects DefaultLayoutEngine.
func NewVisualNode(name string, typ NodeType, engine LayoutEngine) *VisualNode {
	if engine == nil {
		engine = DefaultLayoutEngine
	}
	v := &VisualNode{
		Node:           Node{ID: nextNodeID(), Name: name, Type: typ, layoutDirty: true},
		transform:      Identity,
		transformProps: DefaultTransformProps(),
		borderColor:    ColorBlack,
		opacity:        1,
		visible:        true,
		background:     ColorTransparent,
		foreground:     ColorBlack,
		alignment:      AlignStretch,
		justification:  JustifyStart,
	}
	v.Node.visual = v
	if engine != nil {
		v.layout = engine.NewHandle()
	}
	v.syncStyle()
	return v
}

// NewBox creates a rectangular visual node.
func NewBox(name string) *VisualNode {
	return NewVisualNode(name, NodeTypeBox, nil)
}

// NewEllipse creates a visual node painted and hit-tested as the ellipse
// inscribed in its bounds.
func NewEllipse(name string) *VisualNode {
	return NewVisualNode(name, NodeTypeEllipse, nil)
}

// node shadows the promoted method so a nil *VisualNode maps to a nil *Node.
func (v *VisualNode) node() *Node {
	if v == nil {
		return nil
	}
	return &v.Node
}

// AsNode returns the embedded tree node.
func (v *VisualNode) AsNode() *Node {
	return v.node()
}

// LayoutHandle returns the solver node owned by v.
func (v *VisualNode) LayoutHandle() LayoutHandle {
	return v.layout
}

// invalidateLayout marks v and its ancestors dirty.
func (v *VisualNode) invalidateLayout() {
	v.Node.markLayoutDirty()
}

// --- Geometry ---

// Left returns the resolved x offset within the parent's content box.
func (v *VisualNode) Left() float64 { return v.left }

// Top returns the resolved y offset within the parent's content box.
func (v *VisualNode) Top() float64 { return v.top }

// Width returns the resolved width.
func (v *VisualNode) Width() float64 { return v.width }

// Height returns the resolved height.
func (v *VisualNode) Height() float64 { return v.height }

// Bounds returns the resolved border box in the parent's content-box frame.
func (v *VisualNode) Bounds() Rect {
	return Rect{X: v.left, Y: v.top, Width: v.width, Height: v.height}
}

// SetLeft overrides the resolved x offset. It does not dirty layout; the
// next layout pass over this node replaces it.
func (v *VisualNode) SetLeft(left float64) { v.left = left }

// SetTop overrides the resolved y offset. See SetLeft.
func (v *VisualNode) SetTop(top float64) { v.top = top }

// SetPosition sets both resolved offsets. See SetLeft.
func (v *VisualNode) SetPosition(left, top float64) {
	v.left, v.top = left, top
}

// SetWidth requests a fixed width. Values <= 0 request auto sizing.
func (v *VisualNode) SetWidth(w float64) {
	v.reqWidth = w
	if w > 0 {
		v.width = w
	}
	v.invalidateLayout()
}

// SetHeight requests a fixed height. Values <= 0 request auto sizing.
func (v *VisualNode) SetHeight(h float64) {
	v.reqHeight = h
	if h > 0 {
		v.height = h
	}
	v.invalidateLayout()
}

// SetSize calls SetWidth and SetHeight.
func (v *VisualNode) SetSize(w, h float64) {
	v.SetWidth(w)
	v.SetHeight(h)
}

// SetBounds sets resolved offsets and a fixed size in one call.
func (v *VisualNode) SetBounds(r Rect) {
	v.SetPosition(r.X, r.Y)
	v.SetSize(r.Width, r.Height)
}

// RequestedSize returns the width and height passed to the solver;
// values <= 0 mean auto.
func (v *VisualNode) RequestedSize() (w, h float64) {
	return v.reqWidth, v.reqHeight
}

// ContentSize returns the resolved size minus padding.
func (v *VisualNode) ContentSize() (w, h float64) {
	return v.width - v.padding.Horizontal(), v.height - v.padding.Vertical()
}

// --- Transform ---

// Transform returns the local transform, applied after translating by
// (Left, Top).
func (v *VisualNode) Transform() Matrix { return v.transform }

// SetTransform replaces the local transform. A later component setter
// (SetOffset, SetScale, ...) recomposes the matrix from components.
func (v *VisualNode) SetTransform(m Matrix) { v.transform = m }

// TransformProps returns the components last used to compose the transform.
func (v *VisualNode) TransformProps() TransformProps { return v.transformProps }

// SetTransformProps composes the transform from p.
func (v *VisualNode) SetTransformProps(p TransformProps) {
	v.transformProps = p
	v.transform = p.Matrix()
}

// SetOffset sets the translation component of the transform.
func (v *VisualNode) SetOffset(x, y float64) {
	v.transformProps.OffsetX, v.transformProps.OffsetY = x, y
	v.transform = v.transformProps.Matrix()
}

// SetScale sets the scale component of the transform.
func (v *VisualNode) SetScale(sx, sy float64) {
	v.transformProps.ScaleX, v.transformProps.ScaleY = sx, sy
	v.transform = v.transformProps.Matrix()
}

// SetRotation sets the rotation component (radians) of the transform.
func (v *VisualNode) SetRotation(r float64) {
	v.transformProps.Rotation = r
	v.transform = v.transformProps.Matrix()
}

// SetSkew sets the skew component (radians) of the transform.
func (v *VisualNode) SetSkew(sx, sy float64) {
	v.transformProps.SkewX, v.transformProps.SkewY = sx, sy
	v.transform = v.transformProps.Matrix()
}

// SetPivot sets the local point that rotation, scale, and skew act around.
func (v *VisualNode) SetPivot(px, py float64) {
	v.transformProps.PivotX, v.transformProps.PivotY = px, py
	v.transform = v.transformProps.Matrix()
}

// --- Box model ---

// Margin returns the margin on edge; EdgeAll returns 0.
func (v *VisualNode) Margin(edge Edge) float64 { return v.margin.get(edge) }

// SetMargin sets the margin on edge, or on every edge for EdgeAll.
func (v *VisualNode) SetMargin(edge Edge, m float64) {
	v.margin.set(edge, m)
	v.invalidateLayout()
}

// Padding returns the padding on edge; EdgeAll returns 0.
func (v *VisualNode) Padding(edge Edge) float64 { return v.padding.get(edge) }

// Paddings returns all four paddings.
func (v *VisualNode) Paddings() Insets { return v.padding }

// SetPadding sets the padding on edge, or on every edge for EdgeAll.
func (v *VisualNode) SetPadding(edge Edge, p float64) {
	v.padding.set(edge, p)
	v.invalidateLayout()
}

// BorderWidth returns the border width on edge; EdgeAll returns 0.
func (v *VisualNode) BorderWidth(edge Edge) float64 { return v.border.get(edge) }

// SetBorderWidth sets the border width on edge. Border widths are paint-only.
func (v *VisualNode) SetBorderWidth(edge Edge, w float64) {
	v.border.set(edge, w)
}

// BorderRadius returns the radius of corner; CornerAll returns 0.
func (v *VisualNode) BorderRadius(corner Corner) float64 { return v.radii.get(corner) }

// BorderRadii returns all four corner radii.
func (v *VisualNode) BorderRadii() CornerRadii { return v.radii }

// SetBorderRadius sets the radius of corner. Radii are paint-only.
func (v *VisualNode) SetBorderRadius(corner Corner, r float64) {
	v.radii.set(corner, r)
}

// BorderColor returns the border color.
func (v *VisualNode) BorderColor() Color { return v.borderColor }

// SetBorderColor sets the border color.
func (v *VisualNode) SetBorderColor(c Color) { v.borderColor = c }

// --- Paint state ---

// Opacity returns the node's own opacity in [0, 1].
func (v *VisualNode) Opacity() float64 { return v.opacity }

// SetOpacity sets the opacity, clamped to [0, 1]. A node with zero opacity
// and its subtree are neither painted nor hit.
func (v *VisualNode) SetOpacity(o float64) {
	v.opacity = max(0, min(1, o))
}

// Visible reports whether the node is visible.
func (v *VisualNode) Visible() bool { return v.visible }

// SetVisible shows or hides the node and its subtree.
func (v *VisualNode) SetVisible(visible bool) { v.visible = visible }

// Background returns the fill color.
func (v *VisualNode) Background() Color { return v.background }

// SetBackground sets the fill color.
func (v *VisualNode) SetBackground(c Color) { v.background = c }

// Foreground returns the foreground color.
func (v *VisualNode) Foreground() Color { return v.foreground }

// SetForeground sets the foreground color.
func (v *VisualNode) SetForeground(c Color) { v.foreground = c }

// --- Layout intent ---

// Alignment returns the cross-axis placement.
func (v *VisualNode) Alignment() Alignment { return v.alignment }

// SetAlignment sets the cross-axis placement.
func (v *VisualNode) SetAlignment(a Alignment) {
	v.alignment = a
	v.invalidateLayout()
}

// Justification returns the main-axis placement.
func (v *VisualNode) Justification() Justification { return v.justification }

// SetJustification sets the main-axis placement.
func (v *VisualNode) SetJustification(j Justification) {
	v.justification = j
	v.invalidateLayout()
}

// --- Coordinate conversion ---

// contentOffset is the translation from v's border box to its content box,
// which is the frame its children are positioned in.
func (v *VisualNode) contentOffset() (float64, float64) {
	return v.padding.Left, v.padding.Top
}

// LocalTransform maps v's local frame into its parent's content-box frame.
func (v *VisualNode) LocalTransform() Matrix {
	t := TranslateMatrix(v.left, v.top)
	if v.transform.IsIdentity() {
		return t
	}
	return t.Multiply(v.transform)
}

// SceneTransform maps v's local frame into the frame of the tree root's
// parent, i.e. the scene (window) frame.
func (v *VisualNode) SceneTransform() Matrix {
	m := v.LocalTransform()
	for p := v.parent; p != nil; p = p.parent {
		if pv := p.visual; pv != nil {
			ox, oy := pv.contentOffset()
			m = pv.LocalTransform().Multiply(TranslateMatrix(ox, oy)).Multiply(m)
		}
	}
	return m
}

// SceneToLocal converts a scene-space point into v's local frame. The second
// result is false when a transform on the path is singular.
func (v *VisualNode) SceneToLocal(x, y float64) (lx, ly float64, ok bool) {
	inv, ok := v.SceneTransform().Invert()
	if !ok {
		return 0, 0, false
	}
	lx, ly = inv.Apply(x, y)
	return lx, ly, true
}

// LocalToScene converts a point in v's local frame into scene space.
func (v *VisualNode) LocalToScene(lx, ly float64) (x, y float64) {
	return v.SceneTransform().Apply(lx, ly)
}
