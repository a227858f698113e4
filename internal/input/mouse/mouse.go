package mouse

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/unipointer/internal/surface"
)

// PointerType is the pointer type reported for terminal events.
const PointerType = "mouse"

// Button represents a terminal mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonBack is the back navigation button (mouse button 4).
	ButtonBack
	// ButtonForward is the forward navigation button (mouse button 5).
	ButtonForward
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return "none"
	}
}

// Code returns the W3C pointer event button code, or -1 for ButtonNone.
func (b Button) Code() int {
	switch b {
	case ButtonLeft:
		return 0
	case ButtonMiddle:
		return 1
	case ButtonRight:
		return 2
	case ButtonBack:
		return 3
	case ButtonForward:
		return 4
	default:
		return -1
	}
}

// buttonMasks pairs tcell masks with buttons in report order.
var buttonMasks = [...]struct {
	mask   tcell.ButtonMask
	button Button
}{
	{tcell.ButtonPrimary, ButtonLeft},
	{tcell.ButtonMiddle, ButtonMiddle},
	{tcell.ButtonSecondary, ButtonRight},
	{tcell.Button4, ButtonBack},
	{tcell.Button5, ButtonForward},
}

// pressMask is every mask bit that carries press state.
const pressMask = tcell.ButtonPrimary | tcell.ButtonMiddle | tcell.ButtonSecondary |
	tcell.Button4 | tcell.Button5

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Region is a rectangle of terminal cells.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether pos lies inside the region.
func (r Region) Contains(pos Position) bool {
	return pos.X >= r.X && pos.X < r.X+r.Width &&
		pos.Y >= r.Y && pos.Y < r.Y+r.Height
}

// Translator converts tcell mouse reports into raw pointer events.
// It is not safe for concurrent use.
type Translator struct {
	held    tcell.ButtonMask
	last    Position
	hasLast bool
}

// NewTranslator creates a translator with no buttons held.
func NewTranslator() *Translator {
	return &Translator{}
}

// Held reports whether b was held in the last report.
func (t *Translator) Held(b Button) bool {
	for _, bm := range buttonMasks {
		if bm.button == b {
			return t.held&bm.mask != 0
		}
	}
	return false
}

// Translate returns the raw events implied by ev: a move if the position
// changed, then an up for every released button, then a down for every
// newly pressed button.
func (t *Translator) Translate(ev *tcell.EventMouse) []*surface.Event {
	x, y := ev.Position()
	return t.translate(Position{X: x, Y: y}, ev.Buttons(), ev.When())
}

func (t *Translator) translate(pos Position, buttons tcell.ButtonMask, when time.Time) []*surface.Event {
	buttons &= pressMask

	var out []*surface.Event
	if !t.hasLast || !pos.Equal(t.last) {
		out = append(out, newEvent(surface.KindMove, -1, pos, when))
	}
	t.last = pos
	t.hasLast = true

	released := t.held &^ buttons
	pressed := buttons &^ t.held
	for _, bm := range buttonMasks {
		if released&bm.mask != 0 {
			out = append(out, newEvent(surface.KindUp, bm.button.Code(), pos, when))
		}
	}
	for _, bm := range buttonMasks {
		if pressed&bm.mask != 0 {
			out = append(out, newEvent(surface.KindDown, bm.button.Code(), pos, when))
		}
	}

	t.held = buttons
	return out
}

// Reset forgets held buttons and the last position.
func (t *Translator) Reset() {
	t.held = 0
	t.last = Position{}
	t.hasLast = false
}

func newEvent(kind surface.Kind, code int, pos Position, when time.Time) *surface.Event {
	return &surface.Event{
		Kind:        kind,
		PointerType: PointerType,
		Button:      code,
		X:           float64(pos.X),
		Y:           float64(pos.Y),
		Timestamp:   when,
	}
}

// Router delivers raw events to a target surface and its ambient scope.
type Router struct {
	target  *surface.Surface
	ambient *surface.Surface
	region  Region
}

// NewRouter creates a router for target bounded by region.
func NewRouter(target, ambient *surface.Surface, region Region) *Router {
	return &Router{
		target:  target,
		ambient: ambient,
		region:  region,
	}
}

// Region returns the target bounds.
func (r *Router) Region() Region {
	return r.region
}

// SetRegion updates the target bounds, for example after a resize.
func (r *Router) SetRegion(region Region) {
	r.region = region
}

// Route dispatches ev to the target when inside the region, then to the
// ambient surface.
func (r *Router) Route(ev *surface.Event) {
	pos := Position{X: int(ev.X), Y: int(ev.Y)}
	if r.region.Contains(pos) {
		r.target.Dispatch(ev)
	}
	r.ambient.Dispatch(ev)
}
