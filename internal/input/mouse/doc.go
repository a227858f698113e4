// Package mouse translates terminal mouse reports into raw pointer events.
//
// Terminals report the full set of held buttons with every mouse event
// rather than individual presses and releases. Translator diffs successive
// reports to recover down and up transitions:
//
//	tr := mouse.NewTranslator()
//	for _, ev := range tr.Translate(tcellMouseEvent) {
//	    router.Route(ev)
//	}
//
// # Buttons
//
// Terminal buttons are numbered with W3C pointer event codes so they can be
// fed straight into the pointer package:
//
//   - primary (left): 0
//   - middle: 1
//   - secondary (right): 2
//   - back: 3
//   - forward: 4
//
// Wheel reports carry no press state and are dropped.
//
// # Routing
//
// Router delivers every event to the ambient surface and, when the event
// lies inside the target Region, to the target surface first, mirroring how
// a browser bubbles pointer events from an element up to the window.
package mouse
