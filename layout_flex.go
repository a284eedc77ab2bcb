package canopy

import "github.com/kjk/flex"

// FlexEngine is the LayoutEngine backed by github.com/kjk/flex, a Go port of
// Yoga. Its default flex direction is column: the main axis is vertical and
// the cross axis horizontal.
type FlexEngine struct{}

// NewHandle returns a fresh solver node.
func (FlexEngine) NewHandle() LayoutHandle {
	return &flexHandle{node: flex.NewNode()}
}

type flexHandle struct {
	node     *flex.Node
	parent   *flexHandle
	children []*flexHandle
}

var flexEdges = [4]flex.Edge{flex.EdgeLeft, flex.EdgeTop, flex.EdgeRight, flex.EdgeBottom}

// InsertChild mirrors a child at index. Handles from another engine are
// ignored.
func (h *flexHandle) InsertChild(child LayoutHandle, index int) {
	c, ok := child.(*flexHandle)
	if !ok || c == nil || c == h {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	index = max(0, min(index, len(h.children)))
	h.children = append(h.children, nil)
	copy(h.children[index+1:], h.children[index:])
	h.children[index] = c
	c.parent = h
	h.node.InsertChild(c.node, index)
}

func (h *flexHandle) RemoveChild(child LayoutHandle) {
	c, ok := child.(*flexHandle)
	if !ok || c == nil || c.parent != h {
		return
	}
	for i, ch := range h.children {
		if ch == c {
			copy(h.children[i:], h.children[i+1:])
			h.children[len(h.children)-1] = nil
			h.children = h.children[:len(h.children)-1]
			break
		}
	}
	c.parent = nil
	h.node.RemoveChild(c.node)
}

func (h *flexHandle) SetStyle(st LayoutStyle) {
	n := h.node
	if st.Width > 0 {
		n.StyleSetWidth(float32(st.Width))
	} else {
		n.StyleSetWidthAuto()
	}
	if st.Height > 0 {
		n.StyleSetHeight(float32(st.Height))
	} else {
		n.StyleSetHeightAuto()
	}

	padding := [4]float64{st.Padding.Left, st.Padding.Top, st.Padding.Right, st.Padding.Bottom}
	margin := [4]float64{st.Margin.Left, st.Margin.Top, st.Margin.Right, st.Margin.Bottom}
	for i, edge := range flexEdges {
		n.StyleSetPadding(edge, float32(padding[i]))
		if st.AutoMargin[i] {
			n.StyleSetMarginAuto(edge)
		} else {
			n.StyleSetMargin(edge, float32(margin[i]))
		}
	}

	n.StyleSetAlignItems(flexAlign(st.AlignItems))
	n.StyleSetAlignSelf(flexAlign(st.AlignSelf))
	n.StyleSetJustifyContent(flexJustify(st.JustifyContent))
}

func (h *flexHandle) Calculate(availableWidth, availableHeight float64) {
	flex.CalculateLayout(h.node, float32(availableWidth), float32(availableHeight), flex.DirectionLTR)
}

func (h *flexHandle) Left() float64   { return float64(h.node.LayoutGetLeft()) }
func (h *flexHandle) Top() float64    { return float64(h.node.LayoutGetTop()) }
func (h *flexHandle) Width() float64  { return float64(h.node.LayoutGetWidth()) }
func (h *flexHandle) Height() float64 { return float64(h.node.LayoutGetHeight()) }

// Free detaches the handle from both its parent and its children.
func (h *flexHandle) Free() {
	if h.parent != nil {
		h.parent.RemoveChild(h)
	}
	for len(h.children) > 0 {
		h.RemoveChild(h.children[len(h.children)-1])
	}
}

func flexAlign(a LayoutAlign) flex.Align {
	switch a {
	case LayoutAlignStart:
		return flex.AlignFlexStart
	case LayoutAlignCenter:
		return flex.AlignCenter
	case LayoutAlignEnd:
		return flex.AlignFlexEnd
	case LayoutAlignStretch:
		return flex.AlignStretch
	default:
		return flex.AlignAuto
	}
}

func flexJustify(j LayoutJustify) flex.Justify {
	switch j {
	case LayoutJustifyCenter:
		return flex.JustifyCenter
	case LayoutJustifyEnd:
		return flex.JustifyFlexEnd
	default:
		return flex.JustifyFlexStart
	}
}
