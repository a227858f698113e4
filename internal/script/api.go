package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/unipointer/internal/pointer"
)

// install sets up the pointer table and log function.
func (e *Engine) install() {
	L := e.L

	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"on_primary":   e.onState(pointer.Primary),
		"on_middle":    e.onState(pointer.Middle),
		"on_auxiliary": e.onState(pointer.Auxiliary),
		"on_move":      e.onMove("move"),
		"on_drag":      e.onMove("drag"),
		"off":          e.luaOff,
		"state":        e.luaState,
	})
	L.SetGlobal("pointer", mod)
	L.SetGlobal("log", L.NewFunction(e.luaLog))
}

func (e *Engine) onState(c pointer.Category) lua.LGFunction {
	return func(L *lua.LState) int {
		fn := L.CheckFunction(1)

		var h int
		l := pointer.NewStateListener(func(ev pointer.Event) pointer.UpFunc {
			ret := e.call(h, c.String(), fn, e.eventTable(ev))
			up, ok := ret.(*lua.LFunction)
			if !ok {
				return nil
			}
			return func() {
				e.call(h, c.String()+" up", up)
			}
		})
		h = e.register(registration{kind: c.String(), category: c, state: l})
		e.p.AddStateListener(c, l)

		L.Push(lua.LNumber(h))
		return 1
	}
}

func (e *Engine) onMove(kind string) lua.LGFunction {
	return func(L *lua.LState) int {
		fn := L.CheckFunction(1)

		var h int
		l := pointer.NewMoveListener(func(ev pointer.Event) {
			e.call(h, kind, fn, e.eventTable(ev))
		})
		h = e.register(registration{kind: kind, move: l})
		if kind == "drag" {
			e.p.AddDragListener(l)
		} else {
			e.p.AddMovementListener(l)
		}

		L.Push(lua.LNumber(h))
		return 1
	}
}

func (e *Engine) luaOff(L *lua.LState) int {
	h := L.CheckInt(1)
	L.Push(lua.LBool(e.off(h)))
	return 1
}

func (e *Engine) luaState(L *lua.LState) int {
	t := L.NewTable()
	t.RawSetString("primary", lua.LBool(e.p.PrimaryPressed()))
	t.RawSetString("middle", lua.LBool(e.p.MiddlePressed()))
	t.RawSetString("auxiliary", lua.LBool(e.p.AuxiliaryPressed()))
	t.RawSetString("dragging", lua.LBool(e.p.Dragging()))
	L.Push(t)
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.logger.Info("%s", strings.Join(parts, " "))
	return 0
}
