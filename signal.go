package canopy

// Signal is a synchronous subscriber list. Emit calls subscribers in
// subscription order on the calling goroutine.
type Signal[T any] struct {
	slots  []signalSlot[T]
	nextID uint32
}

type signalSlot[T any] struct {
	id uint32
	fn func(T)
}

// Connection allows disconnecting a subscriber.
type Connection struct {
	id         uint32
	disconnect func(id uint32)
}

// Disconnect removes the subscriber. Safe to call more than once.
func (c Connection) Disconnect() {
	if c.disconnect != nil {
		c.disconnect(c.id)
	}
}

// Connect subscribes fn.
func (s *Signal[T]) Connect(fn func(T)) Connection {
	if fn == nil {
		return Connection{}
	}
	s.nextID++
	id := s.nextID
	s.slots = append(s.slots, signalSlot[T]{id: id, fn: fn})
	return Connection{id: id, disconnect: s.remove}
}

func (s *Signal[T]) remove(id uint32) {
	for i := range s.slots {
		if s.slots[i].id == id {
			copy(s.slots[i:], s.slots[i+1:])
			s.slots[len(s.slots)-1] = signalSlot[T]{}
			s.slots = s.slots[:len(s.slots)-1]
			return
		}
	}
}

// Emit delivers v to every subscriber connected when Emit was called.
func (s *Signal[T]) Emit(v T) {
	if len(s.slots) == 0 {
		return
	}
	slots := append([]signalSlot[T](nil), s.slots...)
	for _, slot := range slots {
		slot.fn(v)
	}
}

// Len returns the number of subscribers.
func (s *Signal[T]) Len() int { return len(s.slots) }

// ViewportSize is the payload of Scene.Resized.
type ViewportSize struct {
	Width, Height float64
}

// FocusChange is the payload of Scene.FocusChanged.
type FocusChange struct {
	Old, New *VisualNode
}
