package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/unipointer/internal/surface"
)

// Decoding errors.
var (
	// ErrMalformed indicates a line is not a valid event object.
	ErrMalformed = errors.New("malformed event")

	// ErrUnknownType indicates an unrecognised event type.
	ErrUnknownType = errors.New("unknown event type")
)

// LineError reports a decoding failure on a specific line.
type LineError struct {
	Line int
	Err  error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Record is one recorded event.
type Record struct {
	// Line is the source line number.
	Line int

	// Event is the raw event to dispatch.
	Event surface.Event

	// OnTarget reports whether the event is inside the target.
	OnTarget bool

	// Delay is how long to wait before dispatching, from "delay" in
	// milliseconds.
	Delay time.Duration
}

// Decode reads every record from r. It stops at the first bad line.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		rec, err := ParseLine(text)
		if err != nil {
			return records, &LineError{Line: line, Err: err}
		}
		rec.Line = line
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("reading events: %w", err)
	}

	return records, nil
}

// ParseLine decodes a single JSON event object.
func ParseLine(text string) (Record, error) {
	if !gjson.Valid(text) {
		return Record{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	obj := gjson.Parse(text)
	if !obj.IsObject() {
		return Record{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}

	typ := obj.Get("type")
	if typ.Type != gjson.String {
		return Record{}, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	kind, ok := surface.ParseKind(typ.Str)
	if !ok || kind == surface.KindDragStart {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownType, typ.Str)
	}

	rec := Record{
		Event: surface.Event{
			Kind:        kind,
			PointerType: obj.Get("pointerType").String(),
			Button:      -1,
		},
		OnTarget: true,
	}

	if kind != surface.KindMove {
		rec.Event.Button = 0
	}
	if b := obj.Get("button"); b.Exists() {
		if b.Type != gjson.Number || b.Num != float64(int(b.Num)) {
			return Record{}, fmt.Errorf("%w: button must be an integer", ErrMalformed)
		}
		rec.Event.Button = int(b.Num)
	}

	for _, c := range []struct {
		key string
		dst *float64
	}{
		{"x", &rec.Event.X},
		{"y", &rec.Event.Y},
	} {
		v := obj.Get(c.key)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.Number {
			return Record{}, fmt.Errorf("%w: %s must be a number", ErrMalformed, c.key)
		}
		*c.dst = v.Num
	}

	if t := obj.Get("target"); t.Exists() {
		if !t.IsBool() {
			return Record{}, fmt.Errorf("%w: target must be a boolean", ErrMalformed)
		}
		rec.OnTarget = t.Bool()
	}

	if d := obj.Get("delay"); d.Exists() {
		if d.Type != gjson.Number || d.Num < 0 {
			return Record{}, fmt.Errorf("%w: delay must be a non-negative number", ErrMalformed)
		}
		rec.Delay = time.Duration(d.Num * float64(time.Millisecond))
	}

	return rec, nil
}
