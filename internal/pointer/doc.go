// Package pointer provides a unified pointer abstraction over mouse, pen and
// touch input.
//
// A Pointer is bound to a target surface and an ambient surface. It tracks
// which device contacts are held and exposes three derived pressed states:
//
//   - Primary: left mouse button, pen tip contact, or touch contact
//   - Middle: middle mouse button
//   - Auxiliary: right mouse button, pen barrel button, or pen eraser
//
// Listeners are notified only when a derived state actually changes. A state
// listener's down function may return an up function, which is called when the
// state is released:
//
//	p := pointer.New(target)
//	p.AddPrimaryStateListener(pointer.NewStateListener(func(ev pointer.Event) pointer.UpFunc {
//	    start := ev.Position
//	    return func() {
//	        fmt.Println("released, pressed at", start)
//	    }
//	}))
//
// # Movement and Drag
//
// Movement listeners see every move on the target. Drag listeners see moves
// on the ambient surface between a down on the target and the following up,
// so a drag keeps reporting after the pointer leaves the target.
//
// # Thread Safety
//
// Pointer is not safe for concurrent use. Events must be dispatched from a
// single goroutine, which is also where every listener runs. Listener panics
// propagate to the dispatcher and abort the remaining notifications.
package pointer
