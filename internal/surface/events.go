package surface

import "sync"

// PointerKind identifies the pointer event delivered by a host.
type PointerKind int

const (
	PointerClicked PointerKind = iota
	PointerPressed
	PointerReleased
	PointerEntered
	PointerExited
)

func (k PointerKind) String() string {
	switch k {
	case PointerClicked:
		return "clicked"
	case PointerPressed:
		return "pressed"
	case PointerReleased:
		return "released"
	case PointerEntered:
		return "entered"
	case PointerExited:
		return "exited"
	default:
		return "unknown"
	}
}

// PointerEvent carries surface-relative pointer coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y int

	consumed bool
}

// Consume marks the event as handled so no later listener sees it.
func (e *PointerEvent) Consume() { e.consumed = true }

// Consumed reports whether a listener consumed the event.
func (e *PointerEvent) Consumed() bool { return e.consumed }

// Listener receives pointer events from a host.
type Listener interface {
	HandlePointer(ev *PointerEvent)
}

// Registrar is implemented by hosts that deliver pointer events.
type Registrar interface {
	Register(l Listener)
}

// Dispatcher fans pointer events out to registered listeners in
// registration order until one consumes the event.
type Dispatcher struct {
	mu        sync.Mutex
	listeners []Listener
}

// Register adds l. Registering the same listener twice has no effect.
func (d *Dispatcher) Register(l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.listeners {
		if existing == l {
			return
		}
	}
	d.listeners = append(d.listeners, l)
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Dispatch delivers ev and reports whether it was consumed.
func (d *Dispatcher) Dispatch(ev *PointerEvent) bool {
	d.mu.Lock()
	listeners := append([]Listener(nil), d.listeners...)
	d.mu.Unlock()
	for _, l := range listeners {
		l.HandlePointer(ev)
		if ev.Consumed() {
			return true
		}
	}
	return false
}

// Button turns raw press and release transitions of one pointer button into
// pointer events. A click is reported only when the release happens where
// the press did.
type Button struct {
	down   bool
	px, py int
}

// Press records a press at (x, y). It returns nil if the button is already
// down.
func (b *Button) Press(x, y int) *PointerEvent {
	if b.down {
		return nil
	}
	b.down, b.px, b.py = true, x, y
	return &PointerEvent{Kind: PointerPressed, X: x, Y: y}
}

// Release records a release at (x, y). released is nil if the button was not
// down; clicked is nil unless the pointer did not move since the press.
func (b *Button) Release(x, y int) (released, clicked *PointerEvent) {
	if !b.down {
		return nil, nil
	}
	b.down = false
	released = &PointerEvent{Kind: PointerReleased, X: x, Y: y}
	if x == b.px && y == b.py {
		clicked = &PointerEvent{Kind: PointerClicked, X: x, Y: y}
	}
	return released, clicked
}

// Down reports whether the button is held.
func (b *Button) Down() bool { return b.down }
