// Package replay reads recorded pointer events and traces pointer
// notifications.
//
// Recordings are JSON lines, one raw event per line:
//
//	{"type":"pointerdown","pointerType":"pen","button":0,"x":10,"y":4}
//	{"type":"pointermove","pointerType":"pen","x":60,"y":4,"target":false}
//	{"type":"pointerup","pointerType":"pen","button":0,"x":60,"y":4,"target":false}
//
// "target" says whether the event happened inside the bound target and
// defaults to true. Blank lines and lines starting with '#' are skipped.
//
// A Tracer writes one JSON object per notification it observes on a Pointer,
// which makes replays easy to diff.
package replay
