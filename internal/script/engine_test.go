package script

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/dshills/unipointer/internal/logging"
	"github.com/dshills/unipointer/internal/pointer"
	"github.com/dshills/unipointer/internal/surface"
)

type fixture struct {
	p       *pointer.Pointer
	target  *surface.Surface
	ambient *surface.Surface
	e       *Engine
	logs    *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	target := surface.New("target")
	ambient := surface.New("ambient")
	p := pointer.New(target, pointer.WithAmbient(ambient))
	logs := &bytes.Buffer{}
	e := New(p, WithLogger(logging.New(logging.Config{Level: logging.LevelDebug, Output: logs})))
	t.Cleanup(func() {
		e.Close()
		p.Close()
	})
	return &fixture{p: p, target: target, ambient: ambient, e: e, logs: logs}
}

func (f *fixture) send(kind surface.Kind, ptype string, button int, x, y float64, onTarget bool) {
	ev := &surface.Event{Kind: kind, PointerType: ptype, Button: button, X: x, Y: y}
	if onTarget {
		f.target.Dispatch(ev)
	}
	f.ambient.Dispatch(ev)
}

func (f *fixture) global(t *testing.T, name string) string {
	t.Helper()
	return f.e.L.GetGlobal(name).String()
}

func TestStateListenerWithUp(t *testing.T) {
	f := newFixture(t)

	err := f.e.LoadString("test", `
events = ""
pointer.on_primary(function(ev)
  events = events .. "down:" .. ev.device .. ":" .. ev.x .. ";"
  return function() events = events .. "up;" end
end)
`)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if f.e.Handles() != 1 {
		t.Errorf("Handles() = %d, want 1", f.e.Handles())
	}

	f.send(surface.KindDown, "pen", 0, 7, 0, true)
	f.send(surface.KindUp, "pen", 0, 7, 0, false)

	if got := f.global(t, "events"); got != "down:pen:7;up;" {
		t.Errorf("events = %q", got)
	}
}

func TestDownWithoutUpFunction(t *testing.T) {
	f := newFixture(t)

	err := f.e.LoadString("test", `
count = 0
pointer.on_auxiliary(function(ev) count = count + 1 end)
`)
	if err != nil {
		t.Fatal(err)
	}

	f.send(surface.KindDown, "mouse", 2, 0, 0, true)
	f.send(surface.KindUp, "mouse", 2, 0, 0, true)

	if got := f.global(t, "count"); got != "1" {
		t.Errorf("count = %s, want 1", got)
	}
}

func TestMoveDragAndOff(t *testing.T) {
	f := newFixture(t)

	err := f.e.LoadString("test", `
moves = 0
drags = 0
mh = pointer.on_move(function(ev) moves = moves + 1 end)
pointer.on_drag(function(ev) drags = drags + 1 end)
`)
	if err != nil {
		t.Fatal(err)
	}

	f.send(surface.KindMove, "mouse", -1, 1, 1, true)
	f.send(surface.KindDown, "mouse", 0, 1, 1, true)
	f.send(surface.KindMove, "mouse", -1, 99, 1, false)

	if err := f.e.LoadString("off", `removed = pointer.off(mh); again = pointer.off(mh)`); err != nil {
		t.Fatal(err)
	}
	f.send(surface.KindMove, "mouse", -1, 2, 2, true)

	if got := f.global(t, "moves"); got != "1" {
		t.Errorf("moves = %s, want 1", got)
	}
	if got := f.global(t, "drags"); got != "2" {
		t.Errorf("drags = %s, want 2", got)
	}
	if f.global(t, "removed") != "true" || f.global(t, "again") != "false" {
		t.Errorf("off results = %s, %s", f.global(t, "removed"), f.global(t, "again"))
	}
	if f.p.MovementListenerCount() != 0 {
		t.Errorf("movement listeners = %d, want 0", f.p.MovementListenerCount())
	}
}

func TestStateFunction(t *testing.T) {
	f := newFixture(t)

	if err := f.e.LoadString("test", `
pointer.on_middle(function(ev)
  local s = pointer.state()
  seen = tostring(s.middle) .. "," .. tostring(s.primary) .. "," .. tostring(s.dragging)
end)
`); err != nil {
		t.Fatal(err)
	}

	f.send(surface.KindDown, "mouse", 1, 0, 0, true)
	// State listeners run before the drag session starts.
	if got := f.global(t, "seen"); got != "true,false,false" {
		t.Errorf("seen = %q", got)
	}
}

func TestLogFunction(t *testing.T) {
	f := newFixture(t)

	if err := f.e.LoadString("test", `log("hello", 42)`); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.logs.String(), "hello 42") {
		t.Errorf("logs = %q", f.logs.String())
	}
}

func TestSandbox(t *testing.T) {
	f := newFixture(t)

	for _, src := range []string{
		`os.exit(1)`,
		`io.open("/etc/passwd")`,
		`dofile("/tmp/x.lua")`,
		`require("os")`,
	} {
		if err := f.e.LoadString("sandbox", src); err == nil {
			t.Errorf("LoadString(%q) succeeded, want error", src)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	f := newFixture(t)

	err := f.e.LoadString("bad.lua", `pointer.on_primary(`)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if le.Name != "bad.lua" {
		t.Errorf("Name = %q", le.Name)
	}

	if err := f.e.LoadString("arg", `pointer.on_primary(5)`); err == nil {
		t.Error("non-function listener should fail")
	}

	if err := f.e.Load(filepath.Join(t.TempDir(), "missing.lua")); !errors.As(err, &le) {
		t.Errorf("Load(missing) error = %v, want *LoadError", err)
	}
}

func TestLoadAllAndReload(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.lua")
	bad := filepath.Join(dir, "bad.lua")
	if err := os.WriteFile(good, []byte(`pointer.on_primary(function() end)`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`this is not lua`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := f.e.LoadAll([]string{bad, good, filepath.Join(dir, "missing.lua")})
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("LoadAll errors = %d (%v), want 2", n, err)
	}
	if f.p.StateListenerCount(pointer.Primary) != 1 {
		t.Errorf("primary listeners = %d, want 1", f.p.StateListenerCount(pointer.Primary))
	}

	if err := os.WriteFile(good, []byte(`
pointer.on_middle(function() end)
pointer.on_middle(function() end)
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := f.e.Reload([]string{good}); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if f.p.StateListenerCount(pointer.Primary) != 0 {
		t.Error("Reload left old listeners registered")
	}
	if f.p.StateListenerCount(pointer.Middle) != 2 {
		t.Errorf("middle listeners = %d, want 2", f.p.StateListenerCount(pointer.Middle))
	}
	if f.e.Handles() != 2 {
		t.Errorf("Handles() = %d, want 2", f.e.Handles())
	}
}

func TestListenerErrorPanics(t *testing.T) {
	f := newFixture(t)

	if err := f.e.LoadString("test", `pointer.on_primary(function() error("kaboom") end)`); err != nil {
		t.Fatal(err)
	}

	defer func() {
		r := recover()
		ce, ok := r.(*CallError)
		if !ok {
			t.Fatalf("recover() = %v, want *CallError", r)
		}
		if ce.Kind != "primary" || !strings.Contains(ce.Error(), "kaboom") {
			t.Errorf("CallError = %v", ce)
		}
	}()
	f.send(surface.KindDown, "touch", 0, 0, 0, true)
}

func TestClose(t *testing.T) {
	f := newFixture(t)

	if err := f.e.LoadString("test", `
pointer.on_primary(function() end)
pointer.on_move(function() end)
pointer.on_drag(function() end)
`); err != nil {
		t.Fatal(err)
	}

	f.e.Close()
	f.e.Close()

	if f.p.StateListenerCount(pointer.Primary) != 0 || f.p.MovementListenerCount() != 0 || f.p.DragListenerCount() != 0 {
		t.Error("Close left listeners registered")
	}
	if err := f.e.LoadString("late", `x = 1`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("LoadString after Close error = %v, want ErrEngineClosed", err)
	}
	if err := f.e.Reload(nil); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Reload after Close error = %v, want ErrEngineClosed", err)
	}
}
