package canopy

import "strconv"

// RoutingStrategy selects how an EventRoute walks its path.
type RoutingStrategy uint8

const (
	RoutingBubble RoutingStrategy = iota // target to root
	RoutingDirect                        // target only
	RoutingTunnel                        // root to target
)

func (s RoutingStrategy) String() string {
	switch s {
	case RoutingBubble:
		return "bubble"
	case RoutingDirect:
		return "direct"
	case RoutingTunnel:
		return "tunnel"
	default:
		return "RoutingStrategy(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseRoutingStrategy maps "bubble", "direct" and "tunnel" to a strategy.
func ParseRoutingStrategy(s string) (RoutingStrategy, bool) {
	switch s {
	case "bubble":
		return RoutingBubble, true
	case "direct":
		return RoutingDirect, true
	case "tunnel":
		return RoutingTunnel, true
	}
	return RoutingBubble, false
}

var routedEventCounter uint32

// RoutedEvent identifies a kind of routed event. Handlers are registered per
// RoutedEvent, so two events with the same name stay distinct.
type RoutedEvent struct {
	Name     string
	Strategy RoutingStrategy
	id       uint32
}

// NewRoutedEvent declares an event kind with its routing strategy.
func NewRoutedEvent(name string, strategy RoutingStrategy) *RoutedEvent {
	routedEventCounter++
	return &RoutedEvent{Name: name, Strategy: strategy, id: routedEventCounter}
}

func (e *RoutedEvent) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.Name + "(" + e.Strategy.String() + ")"
}

// RoutedEventArgs carries one logical input event through one dispatch.
type RoutedEventArgs struct {
	// Event is the kind being raised; nil args still route but reach no
	// handler.
	Event *RoutedEvent
	// Handled stops dispatch once set by a handler.
	Handled bool
	// OriginalSource is the node the event was raised on, usually the hit
	// target.
	OriginalSource *Node
	// CurrentTarget is the node being visited.
	CurrentTarget *Node
	// Pointer is set for pointer-originated events.
	Pointer *PointerData

	strategy RoutingStrategy
}

// NewRoutedEventArgs creates args for event raised at source. The strategy is
// taken from event and cannot change afterwards.
func NewRoutedEventArgs(event *RoutedEvent, source Element) *RoutedEventArgs {
	a := &RoutedEventArgs{Event: event, OriginalSource: nodeOf(source)}
	if event != nil {
		a.strategy = event.Strategy
	}
	return a
}

// NewRoutedEventArgsWithStrategy creates args without an event kind.
func NewRoutedEventArgsWithStrategy(strategy RoutingStrategy, source Element) *RoutedEventArgs {
	return &RoutedEventArgs{strategy: strategy, OriginalSource: nodeOf(source)}
}

// Strategy returns the routing strategy fixed at construction.
func (a *RoutedEventArgs) Strategy() RoutingStrategy { return a.strategy }

// PointerData describes the pointer state behind a pointer event. Positions
// are in scene coordinates.
type PointerData struct {
	X, Y      float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// LocalPosition converts the pointer position into the current target's
// local frame. ok is false for group targets, non-pointer events, and
// singular transforms.
func (a *RoutedEventArgs) LocalPosition() (x, y float64, ok bool) {
	if a.Pointer == nil || a.CurrentTarget == nil || a.CurrentTarget.visual == nil {
		return 0, 0, false
	}
	return a.CurrentTarget.visual.SceneToLocal(a.Pointer.X, a.Pointer.Y)
}

// --- EventRoute ---

// EventRoute holds the root-first path of one dispatch. The path is always
// stored root to target; the strategy decides the walk direction at Invoke.
type EventRoute struct {
	args *RoutedEventArgs
	path []*Node
}

// NewEventRoute creates an empty route for args.
func NewEventRoute(args *RoutedEventArgs) *EventRoute {
	return &EventRoute{args: args}
}

// Args returns the route's event args.
func (r *EventRoute) Args() *RoutedEventArgs { return r.args }

// Path returns the root-first path. The returned slice MUST NOT be mutated by the caller.
func (r *EventRoute) Path() []*Node { return r.path }

// AddTarget appends a node to the target end of the path.
func (r *EventRoute) AddTarget(e Element) {
	if n := nodeOf(e); n != nil {
		r.path = append(r.path, n)
	}
}

// BuildPath replaces the path with target and its ancestors, root first.
// It returns false and leaves the path empty when target is nil.
func (r *EventRoute) BuildPath(target Element) bool {
	r.path = r.path[:0]
	t := nodeOf(target)
	if t == nil {
		return false
	}
	for p := t; p != nil; p = p.parent {
		r.path = append(r.path, p)
	}
	for i, j := 0, len(r.path)-1; i < j; i, j = i+1, j-1 {
		r.path[i], r.path[j] = r.path[j], r.path[i]
	}
	return true
}

// Clear empties the path.
func (r *EventRoute) Clear() {
	r.path = r.path[:0]
}

// Invoke dispatches the args along the path: only the target for Direct,
// root to target for Tunnel, target to root for Bubble. Dispatch stops as
// soon as Handled is set.
func (r *EventRoute) Invoke() {
	if r.args == nil || len(r.path) == 0 {
		return
	}
	switch r.args.strategy {
	case RoutingDirect:
		if !r.args.Handled {
			dispatchToNode(r.path[len(r.path)-1], r.args)
		}
	case RoutingTunnel:
		for _, n := range r.path {
			if r.args.Handled {
				return
			}
			dispatchToNode(n, r.args)
		}
	default:
		for i := len(r.path) - 1; i >= 0; i-- {
			if r.args.Handled {
				return
			}
			dispatchToNode(r.path[i], r.args)
		}
	}
}

// dispatchToNode records the visited node and runs its handlers for the event.
func dispatchToNode(n *Node, args *RoutedEventArgs) {
	args.CurrentTarget = n
	n.handlers.invoke(n, args)
}

// RaiseEvent builds a route from target and invokes it.
func RaiseEvent(target Element, args *RoutedEventArgs) {
	route := NewEventRoute(args)
	if route.BuildPath(target) {
		route.Invoke()
	}
}
