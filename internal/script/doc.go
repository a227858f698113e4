// Package script lets Lua scripts register pointer listeners.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. A global pointer table is installed:
//
//	local h = pointer.on_primary(function(ev)
//	    log("down at " .. ev.x .. "," .. ev.y)
//	    return function()
//	        log("up")
//	    end
//	end)
//
//	pointer.on_drag(function(ev) log("drag " .. ev.x) end)
//	pointer.off(h)
//
// on_primary, on_middle and on_auxiliary take a down function that may
// return an up function. on_move and on_drag take a function receiving each
// event. Every on_* call returns an integer handle for pointer.off.
// pointer.state() returns {primary=, middle=, auxiliary=, dragging=}.
//
// Event tables carry device, button, x and y.
//
// A Lua error raised inside a listener is re-raised as a Go panic carrying
// a *CallError; it is not isolated from the rest of the dispatch.
//
// An Engine is bound to the goroutine that dispatches pointer events and is
// not safe for concurrent use.
package script
