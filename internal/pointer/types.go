package pointer

import (
	"time"

	"github.com/dshills/unipointer/internal/surface"
)

// DeviceType is the kind of physical device that produced an event.
type DeviceType string

const (
	// DeviceUnknown is any device type the package does not recognise.
	DeviceUnknown DeviceType = ""
	// DeviceMouse is a mouse.
	DeviceMouse DeviceType = "mouse"
	// DevicePen is a pen or stylus.
	DevicePen DeviceType = "pen"
	// DeviceTouch is a touch contact.
	DeviceTouch DeviceType = "touch"
)

// String returns the device type name.
func (d DeviceType) String() string {
	if d == DeviceUnknown {
		return "unknown"
	}
	return string(d)
}

// ParseDeviceType maps a host pointer type name to a DeviceType.
func ParseDeviceType(s string) DeviceType {
	switch DeviceType(s) {
	case DeviceMouse, DevicePen, DeviceTouch:
		return DeviceType(s)
	default:
		return DeviceUnknown
	}
}

// Button is a device-specific contact code. Codes alias across devices:
// LeftMouse, PenContact and TouchContact are all 0.
type Button int

// Contact codes, following the W3C pointer events button numbering.
const (
	LeftMouse    Button = 0
	MiddleMouse  Button = 1
	RightMouse   Button = 2
	PenContact   Button = 0
	PenBarrel    Button = 2
	PenEraser    Button = 5
	TouchContact Button = 0
)

// NoButton is reported by events where no button changed state.
const NoButton Button = -1

// DeviceTypes returns the device type lookup table.
// The returned map is a copy; modifying it has no effect.
func DeviceTypes() map[string]DeviceType {
	return map[string]DeviceType{
		"MOUSE": DeviceMouse,
		"PEN":   DevicePen,
		"TOUCH": DeviceTouch,
	}
}

// Buttons returns the contact code lookup table.
// The returned map is a copy; modifying it has no effect.
func Buttons() map[string]Button {
	return map[string]Button{
		"LEFT_MOUSE":    LeftMouse,
		"MIDDLE_MOUSE":  MiddleMouse,
		"RIGHT_MOUSE":   RightMouse,
		"PEN_CONTACT":   PenContact,
		"PEN_BARREL":    PenBarrel,
		"PEN_ERASER":    PenEraser,
		"TOUCH_CONTACT": TouchContact,
	}
}

// Category is a derived pressed state.
type Category uint8

const (
	// Primary is held by the left mouse button, pen contact or touch.
	Primary Category = iota
	// Middle is held by the middle mouse button.
	Middle
	// Auxiliary is held by the right mouse button, pen barrel or pen eraser.
	Auxiliary
)

// categories lists every category in notification order.
var categories = [...]Category{Primary, Middle, Auxiliary}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Primary:
		return "primary"
	case Middle:
		return "middle"
	case Auxiliary:
		return "auxiliary"
	default:
		return "unknown"
	}
}

// Position is a point in surface coordinates.
type Position struct {
	X float64
	Y float64
}

// Event is a validated pointer event.
type Event struct {
	// Device is the device that produced the event.
	Device DeviceType

	// Button is the contact code, or NoButton.
	Button Button

	// Position is where the event occurred.
	Position Position

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// FromRaw converts a host event into an Event. Unknown pointer types map to
// DeviceUnknown; conversion never fails.
func FromRaw(raw *surface.Event) Event {
	return Event{
		Device:    ParseDeviceType(raw.PointerType),
		Button:    Button(raw.Button),
		Position:  Position{X: raw.X, Y: raw.Y},
		Timestamp: raw.Timestamp,
	}
}
