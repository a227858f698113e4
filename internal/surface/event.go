package surface

import "time"

// Kind identifies the type of a raw pointer event.
type Kind uint8

const (
	// KindDown is a contact or button press.
	KindDown Kind = iota
	// KindUp is a contact or button release.
	KindUp
	// KindMove is pointer movement.
	KindMove
	// KindDragStart is the platform's native drag gesture starting.
	KindDragStart
)

// String returns the event name of the kind, such as "pointerdown".
func (k Kind) String() string {
	switch k {
	case KindDown:
		return "pointerdown"
	case KindUp:
		return "pointerup"
	case KindMove:
		return "pointermove"
	case KindDragStart:
		return "dragstart"
	default:
		return "unknown"
	}
}

// ParseKind parses an event name.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "pointerdown", "down":
		return KindDown, true
	case "pointerup", "up":
		return KindUp, true
	case "pointermove", "move":
		return KindMove, true
	case "dragstart":
		return KindDragStart, true
	default:
		return 0, false
	}
}

// Event is a raw, unvalidated pointer event as delivered by the host.
type Event struct {
	// Kind is the event type.
	Kind Kind

	// PointerType names the device ("mouse", "pen", "touch"). Hosts may
	// report types this package does not know about.
	PointerType string

	// Button is the device-specific contact code. -1 when no button
	// changed state (movement).
	Button int

	// X and Y are the event coordinates.
	X float64
	Y float64

	// Timestamp is when the host observed the event.
	Timestamp time.Time

	defaultPrevented bool
	passive          bool
}

// PreventDefault suppresses the event's default platform action.
// It has no effect inside a passive listener.
func (e *Event) PreventDefault() {
	if e.passive {
		return
	}
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener suppressed the default action.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Handler receives dispatched events.
type Handler func(ev *Event)
