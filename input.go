package canopy

import "math"

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Built-in routed events ---

var (
	// EventPreviewPointerDown tunnels from the root before EventPointerDown.
	// Handling it suppresses EventPointerDown.
	EventPreviewPointerDown = NewRoutedEvent("PreviewPointerDown", RoutingTunnel)
	EventPointerDown        = NewRoutedEvent("PointerDown", RoutingBubble)
	EventPointerUp          = NewRoutedEvent("PointerUp", RoutingBubble)
	EventPointerMove        = NewRoutedEvent("PointerMove", RoutingBubble)
	EventPointerEnter       = NewRoutedEvent("PointerEnter", RoutingDirect)
	EventPointerLeave       = NewRoutedEvent("PointerLeave", RoutingDirect)
	// EventClick fires on release over the node that received the press.
	EventClick     = NewRoutedEvent("Click", RoutingBubble)
	EventDragStart = NewRoutedEvent("DragStart", RoutingBubble)
	EventDrag      = NewRoutedEvent("Drag", RoutingBubble)
	EventDragEnd   = NewRoutedEvent("DragEnd", RoutingBubble)
)

// PointerInput is one sample of raw pointer state in scene coordinates.
type PointerInput struct {
	X, Y      float64
	Pressed   bool
	Button    MouseButton
	Modifiers KeyModifiers
	// PointerID selects the pointer slot: 0 for the mouse, 1-9 for touches.
	PointerID int
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *VisualNode
	hoverNode *VisualNode // last node the pointer was hovering over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
}

// CapturePointer routes all events for pointerID to node until release or
// ReleasePointer.
func (s *Scene) CapturePointer(pointerID int, node *VisualNode) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// HandlePointer feeds one raw pointer sample through hit testing and the
// pointer state machine, raising routed events. Layout is brought up to date
// first.
func (s *Scene) HandlePointer(in PointerInput) {
	if in.PointerID < 0 || in.PointerID >= maxPointers {
		return
	}
	s.ensureLayout()
	s.processPointer(in)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(in PointerInput) {
	ps := &s.pointers[in.PointerID]
	x, y := in.X, in.Y

	// Determine target node: captured node or hit test.
	target := s.captured[in.PointerID]
	if target == nil || target.IsDisposed() {
		target = s.HitTest(x, y)
	}

	data := PointerData{X: x, Y: y, Button: in.Button, PointerID: in.PointerID, Modifiers: in.Modifiers}

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.IsDisposed() {
			s.raise(ps.hoverNode, EventPointerLeave, data)
		}
		if target != nil {
			s.raise(target, EventPointerEnter, data)
		}
		ps.hoverNode = target
	}

	switch {
	case in.Pressed && !ps.down:
		// Just pressed: capture button for the duration of this interaction.
		ps.down = true
		ps.button = in.Button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		ps.dragging = false

		s.focusFrom(target)
		if args := s.raise(target, EventPreviewPointerDown, data); args == nil || !args.Handled {
			s.raise(target, EventPointerDown, data)
		}

	case !in.Pressed && ps.down:
		// Just released: use button from press start.
		data.Button = ps.button
		data.StartX, data.StartY = ps.startX, ps.startY
		if ps.dragging {
			data.DeltaX, data.DeltaY = x-ps.lastX, y-ps.lastY
			s.raise(ps.hitNode, EventDragEnd, data)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.raise(target, EventClick, data)
		}
		data.DeltaX, data.DeltaY = 0, 0
		s.raise(target, EventPointerUp, data)

		// Auto-release capture.
		s.captured[in.PointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = x, y

	case in.Pressed && ps.down:
		// Held down, possibly moved.
		if x != ps.lastX || y != ps.lastY {
			data.Button = ps.button
			data.StartX, data.StartY = ps.startX, ps.startY
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					data.DeltaX, data.DeltaY = dx, dy
					s.raise(ps.hitNode, EventDragStart, data)
				}
			}
			if ps.dragging {
				data.DeltaX, data.DeltaY = x-ps.lastX, y-ps.lastY
				s.raise(ps.hitNode, EventDrag, data)
			}
			data.DeltaX, data.DeltaY = x-ps.lastX, y-ps.lastY
			s.raise(target, EventPointerMove, data)
		}
		ps.lastX, ps.lastY = x, y

	default:
		// Hover move.
		if x != ps.lastX || y != ps.lastY {
			data.DeltaX, data.DeltaY = x-ps.lastX, y-ps.lastY
			s.raise(target, EventPointerMove, data)
			ps.lastX, ps.lastY = x, y
		}
	}
}

// raise routes event from target. Scene-level observers see the args before
// any node handler. It returns nil when target is nil.
func (s *Scene) raise(target *VisualNode, event *RoutedEvent, data PointerData) *RoutedEventArgs {
	if target == nil || target.IsDisposed() {
		return nil
	}
	args := NewRoutedEventArgs(event, target)
	p := data
	args.Pointer = &p
	s.Events.Emit(args)
	RaiseEvent(target, args)
	return args
}

// --- Focus ---

// Focused returns the focused node, or nil.
func (s *Scene) Focused() *VisualNode { return s.focused }

// SetFocus moves focus to v (nil clears it) and emits FocusChanged when the
// focused node changes.
func (s *Scene) SetFocus(v *VisualNode) {
	if v == s.focused {
		return
	}
	old := s.focused
	s.focused = v
	s.FocusChanged.Emit(FocusChange{Old: old, New: v})
}

// focusFrom focuses the nearest focusable node at or above target.
func (s *Scene) focusFrom(target *VisualNode) {
	for n := target.node(); n != nil; n = n.parent {
		if v := n.visual; v != nil && v.Focusable {
			s.SetFocus(v)
			return
		}
	}
	s.SetFocus(nil)
}
