package canopy

// HandlerFunc handles a routed event at node, the args' CurrentTarget.
type HandlerFunc func(node *Node, args *RoutedEventArgs)

type eventHandler struct {
	id    uint32
	event uint32
	fn    HandlerFunc
}

// handlerTable is the per-node handler registry. Handlers run in
// registration order.
type handlerTable struct {
	entries []eventHandler
	nextID  uint32
}

// HandlerHandle allows removing a registered handler.
type HandlerHandle struct {
	id   uint32
	node *Node
}

// Remove unregisters the handler so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h HandlerHandle) Remove() {
	if h.node == nil {
		return
	}
	t := &h.node.handlers
	for i := range t.entries {
		if t.entries[i].id == h.id {
			copy(t.entries[i:], t.entries[i+1:])
			t.entries[len(t.entries)-1] = eventHandler{}
			t.entries = t.entries[:len(t.entries)-1]
			return
		}
	}
}

// AddHandler registers fn for event on n.
func (n *Node) AddHandler(event *RoutedEvent, fn HandlerFunc) HandlerHandle {
	if n == nil || event == nil || fn == nil {
		return HandlerHandle{}
	}
	n.handlers.nextID++
	id := n.handlers.nextID
	n.handlers.entries = append(n.handlers.entries, eventHandler{id: id, event: event.id, fn: fn})
	return HandlerHandle{id: id, node: n}
}

// HandlerCount returns the number of handlers registered on n for event.
func (n *Node) HandlerCount(event *RoutedEvent) int {
	if n == nil || event == nil {
		return 0
	}
	count := 0
	for _, h := range n.handlers.entries {
		if h.event == event.id {
			count++
		}
	}
	return count
}

func (t *handlerTable) invoke(n *Node, args *RoutedEventArgs) {
	if args.Event == nil || len(t.entries) == 0 {
		return
	}
	// Handlers may add or remove handlers; iterate over a snapshot and skip
	// entries removed earlier in this dispatch.
	snapshot := make([]eventHandler, 0, len(t.entries))
	for _, h := range t.entries {
		if h.event == args.Event.id {
			snapshot = append(snapshot, h)
		}
	}
	for _, h := range snapshot {
		if args.Handled {
			return
		}
		if !t.has(h.id) {
			continue
		}
		h.fn(n, args)
	}
}

func (t *handlerTable) has(id uint32) bool {
	for i := range t.entries {
		if t.entries[i].id == id {
			return true
		}
	}
	return false
}
