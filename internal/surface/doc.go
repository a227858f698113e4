// Package surface models the host UI event system that pointer input is
// delivered through.
//
// A Surface is an in-process event target: listeners subscribe to a Kind of
// raw event (down, up, move, drag-start) and Dispatch delivers an Event to
// every active listener synchronously, in subscription order.
//
// Two roles are played by surfaces:
//
//   - A target surface is the bounded area a pointer is bound to (a widget,
//     a terminal region).
//   - An ambient surface is the broader scope that receives every event,
//     including those outside the target's bounds. Global returns the
//     process-wide ambient surface.
//
// # Subscriptions
//
//	sub := s.AddListener(surface.KindMove, func(ev *surface.Event) {
//	    ev.PreventDefault()
//	})
//	defer sub.Cancel()
//
// WithOnce makes a subscription cancel itself before its first invocation.
// WithPassive makes PreventDefault a no-op for that listener.
//
// # Thread Safety
//
// Surface is safe for concurrent use. Handlers run on the goroutine that
// calls Dispatch.
package surface
