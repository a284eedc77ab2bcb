package canopy

import (
	"time"

	"go.uber.org/zap"
)

// LayoutAlign is the solver-level cross-axis alignment value.
type LayoutAlign uint8

const (
	LayoutAlignAuto LayoutAlign = iota // inherit the parent's alignItems
	LayoutAlignStart
	LayoutAlignCenter
	LayoutAlignEnd
	LayoutAlignStretch
)

// LayoutJustify is the solver-level main-axis distribution value.
type LayoutJustify uint8

const (
	LayoutJustifyStart LayoutJustify = iota
	LayoutJustifyCenter
	LayoutJustifyEnd
)

// LayoutStyle is the per-node input handed to a LayoutHandle.
type LayoutStyle struct {
	// Width and Height are fixed sizes; values <= 0 mean auto.
	Width, Height float64
	Padding       Insets
	Margin        Insets
	// AutoMargin marks edges (indexed by Edge) whose margin is auto. The
	// matching Margin value is ignored for those edges.
	AutoMargin     [4]bool
	AlignItems     LayoutAlign
	AlignSelf      LayoutAlign
	JustifyContent LayoutJustify
}

// LayoutEngine creates solver nodes. A tree must use handles from one engine.
type LayoutEngine interface {
	NewHandle() LayoutHandle
}

// LayoutHandle is one node of the external solver's own tree. A VisualNode
// owns exactly one handle and mirrors its child list into it.
type LayoutHandle interface {
	InsertChild(child LayoutHandle, index int)
	RemoveChild(child LayoutHandle)
	SetStyle(style LayoutStyle)
	// Calculate solves the subtree rooted at this handle for the given
	// available size, left-to-right.
	Calculate(availableWidth, availableHeight float64)
	// Left and Top are relative to the parent handle's border box, or to the
	// available area for the handle Calculate was called on.
	Left() float64
	Top() float64
	Width() float64
	Height() float64
	Free()
}

// DefaultLayoutEngine is used by NewBox, NewEllipse and NewVisualNode when no
// engine is given.
var DefaultLayoutEngine LayoutEngine = FlexEngine{}

// --- Style synthesis ---

// layoutStyle translates box-model and alignment intent into solver input.
// A call root places its children with alignItems/justifyContent. Any other
// node overrides the inherited cross-axis placement with alignSelf and
// synthesizes its own main-axis placement from auto margins, because the
// solver has no per-item justification.
func (v *VisualNode) layoutStyle(callRoot bool) LayoutStyle {
	st := LayoutStyle{
		Width:   v.reqWidth,
		Height:  v.reqHeight,
		Padding: v.padding,
		Margin:  v.margin,
	}
	if callRoot {
		st.AlignItems = alignItemsFor(v.alignment)
		st.JustifyContent = justifyContentFor(v.justification)
		st.AlignSelf = LayoutAlignAuto
		return st
	}
	st.AlignItems = LayoutAlignStretch
	st.JustifyContent = LayoutJustifyStart
	st.AlignSelf = alignItemsFor(v.alignment)

	switch v.alignment {
	case AlignCenter:
		st.AutoMargin[EdgeLeft] = true
		st.AutoMargin[EdgeRight] = true
	case AlignEnd:
		st.AutoMargin[EdgeLeft] = true
	}
	switch v.justification {
	case JustifyCenter:
		st.AutoMargin[EdgeTop] = true
		st.AutoMargin[EdgeBottom] = true
	case JustifyEnd:
		st.AutoMargin[EdgeTop] = true
	}
	return st
}

func alignItemsFor(a Alignment) LayoutAlign {
	switch a {
	case AlignStart:
		return LayoutAlignStart
	case AlignCenter:
		return LayoutAlignCenter
	case AlignEnd:
		return LayoutAlignEnd
	default:
		return LayoutAlignStretch
	}
}

func justifyContentFor(j Justification) LayoutJustify {
	switch j {
	case JustifyCenter:
		return LayoutJustifyCenter
	case JustifyEnd:
		return LayoutJustifyEnd
	default:
		return LayoutJustifyStart
	}
}

// isLayoutChild reports whether v is laid out inside a visual parent.
func (v *VisualNode) isLayoutChild() bool {
	return v.parent != nil && v.parent.visual != nil
}

// syncStyle pushes v's style into its handle for the role it has in the tree.
func (v *VisualNode) syncStyle() {
	if v.layout != nil {
		v.layout.SetStyle(v.layoutStyle(!v.isLayoutChild()))
	}
}

// syncSubtree pushes styles for v and every visual descendant reachable
// through visual parents.
func (v *VisualNode) syncSubtree(callRoot bool) {
	if v.layout != nil {
		v.layout.SetStyle(v.layoutStyle(callRoot))
	}
	for _, c := range v.children {
		if c.visual != nil {
			c.visual.syncSubtree(false)
		}
	}
}

// --- Layout pass ---

// CalculateLayout resolves left, top, width, and height for v and its whole
// subtree. parentWidth and parentHeight are the content-box size of the area
// v is placed in. v is the root of the call: it places its children with its
// own alignment and justification and is itself positioned by its margins.
//
// Resolved offsets are relative to the parent's content box, which is the
// area the solver measures the call root against. parentPaddingLeft and
// parentPaddingTop are therefore not added to v's offsets; they are accepted
// so a subtree call has the same signature as the parent's pass, and each
// descendant's offsets are corrected by its own parent's padding.
func (v *VisualNode) CalculateLayout(parentWidth, parentHeight, parentPaddingLeft, parentPaddingTop float64) {
	if v == nil || v.disposed {
		return
	}
	if v.layout == nil {
		logger().Debug("layout: node has no layout handle", zap.String("node", v.Name))
		return
	}
	start := time.Now()
	v.syncSubtree(true)
	v.layout.Calculate(max(0, parentWidth), max(0, parentHeight))
	v.readLayout(parentPaddingLeft, parentPaddingTop, true)
	if v.isLayoutChild() {
		// Restore the child-role style the parent's solver pass expects.
		v.syncStyle()
	}
	logger().Debug("layout pass",
		zap.String("root", v.Name),
		zap.Float64("width", parentWidth),
		zap.Float64("height", parentHeight),
		zap.Duration("elapsed", time.Since(start)))
}

// readLayout copies solver output into resolved geometry and recurses with
// this node's content box as the children's parent frame.
func (v *VisualNode) readLayout(parentPaddingLeft, parentPaddingTop float64, callRoot bool) {
	h := v.layout
	left, top := h.Left(), h.Top()
	if !callRoot {
		left -= parentPaddingLeft
		top -= parentPaddingTop
	}
	v.left, v.top = left, top
	v.width, v.height = h.Width(), h.Height()
	v.layoutDirty = false

	contentW := v.width - v.padding.Horizontal()
	contentH := v.height - v.padding.Vertical()
	for _, c := range v.children {
		if c.visual != nil && c.visual.layout != nil {
			c.visual.readLayout(v.padding.Left, v.padding.Top, false)
			continue
		}
		layoutDetached(c, contentW, contentH)
	}
}

// layoutDetached lays out nodes with no solver mirror in their parent: group
// nodes pass the available size through, and each visual node beneath them
// becomes the root of its own call, placed in the available box by its own
// alignment and justification.
func layoutDetached(n *Node, width, height float64) {
	if n == nil {
		return
	}
	if v := n.visual; v != nil {
		v.CalculateLayout(width, height, 0, 0)
		v.placeIn(width, height)
		return
	}
	n.layoutDirty = false
	for _, c := range n.children {
		layoutDetached(c, width, height)
	}
}

// placeIn shifts a resolved call root inside a width x height box. The solver
// positions a call root by its margins alone, so the free space left around
// the margin box is distributed here.
func (v *VisualNode) placeIn(width, height float64) {
	if free := width - v.width - v.margin.Horizontal(); free > 0 {
		v.left += free * alignmentFactor(v.alignment)
	}
	if free := height - v.height - v.margin.Vertical(); free > 0 {
		v.top += free * justificationFactor(v.justification)
	}
}

func alignmentFactor(a Alignment) float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignEnd:
		return 1
	default:
		return 0
	}
}

func justificationFactor(j Justification) float64 {
	switch j {
	case JustifyCenter:
		return 0.5
	case JustifyEnd:
		return 1
	default:
		return 0
	}
}

// --- Mirror maintenance ---

// attachLayout mirrors child into v's handle at index and resyncs the child's
// style for its new non-root role.
func (v *VisualNode) attachLayout(child *VisualNode, index int) {
	if v.layout == nil || child.layout == nil {
		return
	}
	v.layout.InsertChild(child.layout, index)
	child.syncStyle()
}

// detachLayout removes child from v's handle; the child becomes a call root.
func (v *VisualNode) detachLayout(child *VisualNode) {
	if v.layout == nil || child.layout == nil {
		return
	}
	v.layout.RemoveChild(child.layout)
	child.syncStyle()
}

func (v *VisualNode) releaseLayout() {
	if v.layout != nil {
		v.layout.Free()
		v.layout = nil
	}
}
