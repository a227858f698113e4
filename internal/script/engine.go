package script

import (
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/multierr"

	"github.com/dshills/unipointer/internal/logging"
	"github.com/dshills/unipointer/internal/pointer"
)

// registration records a listener added by a script.
type registration struct {
	kind     string
	category pointer.Category
	state    *pointer.StateListener
	move     *pointer.MoveListener
}

// Engine runs Lua scripts against a Pointer.
type Engine struct {
	L      *lua.LState
	p      *pointer.Pointer
	logger *logging.Logger

	nextHandle int
	handles    map[int]registration
	order      []int

	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the Lua log function.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine bound to p.
func New(p *pointer.Pointer, opts ...Option) *Engine {
	e := &Engine{
		p:       p,
		logger:  logging.Null(),
		handles: make(map[int]registration),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.L = newState()
	e.install()
	return e
}

// Load runs the script at path.
func (e *Engine) Load(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Name: path, Err: err}
	}
	return e.LoadString(path, string(src))
}

// LoadString runs src, using name in error messages.
func (e *Engine) LoadString(name, src string) error {
	if e.closed {
		return ErrEngineClosed
	}

	fn, err := e.L.Load(strings.NewReader(src), name)
	if err != nil {
		return &LoadError{Name: name, Err: err}
	}
	e.L.Push(fn)
	if err := e.L.PCall(0, lua.MultRet, nil); err != nil {
		return &LoadError{Name: name, Err: err}
	}
	e.L.SetTop(0)

	e.logger.Debug("loaded script %s", name)
	return nil
}

// LoadAll runs every script, continuing past failures. All failures are
// returned combined.
func (e *Engine) LoadAll(paths []string) error {
	var errs error
	for _, path := range paths {
		errs = multierr.Append(errs, e.Load(path))
	}
	return errs
}

// Reload removes every script listener, discards the Lua state and runs
// paths in a fresh one.
func (e *Engine) Reload(paths []string) error {
	if e.closed {
		return ErrEngineClosed
	}
	e.removeAll()
	e.L.Close()
	e.L = newState()
	e.install()
	return e.LoadAll(paths)
}

// Handles returns the number of live script registrations.
func (e *Engine) Handles() int {
	return len(e.handles)
}

// Close removes every script listener from the pointer and closes the Lua
// state.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.removeAll()
	e.L.Close()
	e.closed = true
}

func (e *Engine) removeAll() {
	for _, h := range e.order {
		e.off(h)
	}
	e.order = nil
}

// off removes the registration for handle h.
func (e *Engine) off(h int) bool {
	reg, ok := e.handles[h]
	if !ok {
		return false
	}
	delete(e.handles, h)

	switch reg.kind {
	case "move":
		e.p.RemoveMovementListener(reg.move)
	case "drag":
		e.p.RemoveDragListener(reg.move)
	default:
		e.p.RemoveStateListener(reg.category, reg.state)
	}
	return true
}

func (e *Engine) register(reg registration) int {
	e.nextHandle++
	h := e.nextHandle
	e.handles[h] = reg
	e.order = append(e.order, h)
	return h
}

// call invokes fn with args and returns its first result. Lua errors are
// raised as Go panics.
func (e *Engine) call(h int, kind string, fn *lua.LFunction, args ...lua.LValue) lua.LValue {
	err := e.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		panic(&CallError{Handle: h, Kind: kind, Err: err})
	}
	ret := e.L.Get(-1)
	e.L.Pop(1)
	return ret
}

func (e *Engine) eventTable(ev pointer.Event) *lua.LTable {
	t := e.L.NewTable()
	t.RawSetString("device", lua.LString(ev.Device.String()))
	t.RawSetString("button", lua.LNumber(ev.Button))
	t.RawSetString("x", lua.LNumber(ev.Position.X))
	t.RawSetString("y", lua.LNumber(ev.Position.Y))
	return t
}
