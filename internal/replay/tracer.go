package replay

import (
	"fmt"
	"io"
	"sync"

	"github.com/tidwall/sjson"

	"github.com/dshills/unipointer/internal/pointer"
)

// Tracer writes pointer notifications as JSON lines.
type Tracer struct {
	mu  sync.Mutex
	w   io.Writer
	seq int
	err error

	p      *pointer.Pointer
	states map[pointer.Category]*pointer.StateListener
	move   *pointer.MoveListener
	drag   *pointer.MoveListener
	attach bool
}

// NewTracer creates a tracer writing to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Attach registers the tracer's listeners on p.
func (t *Tracer) Attach(p *pointer.Pointer) {
	t.Detach()

	t.p = p
	t.move = pointer.NewMoveListener(func(ev pointer.Event) { t.write("move", ev) })
	t.drag = pointer.NewMoveListener(func(ev pointer.Event) { t.write("drag", ev) })
	t.states = make(map[pointer.Category]*pointer.StateListener, 3)
	for _, c := range []pointer.Category{pointer.Primary, pointer.Middle, pointer.Auxiliary} {
		cat := c
		l := pointer.NewStateListener(func(ev pointer.Event) pointer.UpFunc {
			t.write(cat.String()+".down", ev)
			return func() { t.writeUp(cat.String() + ".up") }
		})
		t.states[cat] = l
		p.AddStateListener(cat, l)
	}
	p.AddMovementListener(t.move)
	p.AddDragListener(t.drag)
	t.attach = true
}

// Detach removes every listener the tracer registered.
func (t *Tracer) Detach() {
	if !t.attach {
		return
	}
	for c, l := range t.states {
		t.p.RemoveStateListener(c, l)
	}
	t.p.RemoveMovementListener(t.move)
	t.p.RemoveDragListener(t.drag)
	t.attach = false
}

// Err returns the first write error.
func (t *Tracer) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Count returns the number of lines written.
func (t *Tracer) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

func (t *Tracer) write(kind string, ev pointer.Event) {
	t.emit(kind, &ev)
}

func (t *Tracer) writeUp(kind string) {
	t.emit(kind, nil)
}

func (t *Tracer) emit(kind string, ev *pointer.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return
	}
	t.seq++

	fields := []traceField{{"seq", t.seq}, {"kind", kind}}
	if ev != nil {
		fields = append(fields, traceField{"device", ev.Device.String()})
		if ev.Button != pointer.NoButton {
			fields = append(fields, traceField{"button", int(ev.Button)})
		}
		fields = append(fields, traceField{"x", ev.Position.X}, traceField{"y", ev.Position.Y})
	}

	line, err := encodeTrace(fields)
	if err != nil {
		t.err = err
		return
	}
	_, t.err = io.WriteString(t.w, line+"\n")
}

type traceField struct {
	path  string
	value any
}

// encodeTrace builds a JSON object with fields set in order.
func encodeTrace(fields []traceField) (string, error) {
	line := `{}`
	for _, f := range fields {
		var err error
		if line, err = sjson.Set(line, f.path, f.value); err != nil {
			return "", fmt.Errorf("encoding trace field %q: %w", f.path, err)
		}
	}
	return line, nil
}
