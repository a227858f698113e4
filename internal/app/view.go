package app

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/unipointer/internal/input/mouse"
	"github.com/dshills/unipointer/internal/pointer"
)

const defaultTraceLines = 8

var (
	styleText   = tcell.StyleDefault
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// traceLog keeps the most recent lines written to it.
type traceLog struct {
	mu      sync.Mutex
	limit   int
	lines   []string
	partial []byte
}

func newTraceLog(limit int) *traceLog {
	if limit <= 0 {
		limit = defaultTraceLines
	}
	return &traceLog{limit: limit}
}

// Write implements io.Writer.
func (l *traceLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := append(l.partial, p...)
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		l.push(string(data[:i]))
		data = data[i+1:]
	}
	l.partial = append(l.partial[:0:0], data...)
	return len(p), nil
}

func (l *traceLog) push(line string) {
	l.lines = append(l.lines, line)
	if over := len(l.lines) - l.limit; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (l *traceLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// view renders the target region, pointer state and recent trace output.
type view struct {
	screen tcell.Screen
	log    *traceLog
}

func newView(screen tcell.Screen) *view {
	return &view{screen: screen, log: newTraceLog(defaultTraceLines)}
}

func (v *view) draw(p *pointer.Pointer, region mouse.Region) {
	v.screen.Clear()
	width, height := v.screen.Size()

	drawText(v.screen, 0, 0, styleText, "unipointer  press inside the box, drag anywhere, q to quit")

	border := styleBorder
	if p.Dragging() {
		border = styleActive
	}
	drawBox(v.screen, region, border)

	row := region.Y + region.Height + 1
	for _, line := range v.log.Lines() {
		if row >= height-1 {
			break
		}
		drawText(v.screen, 0, row, styleText, line)
		row++
	}

	status := statusLine(p)
	if pad := width - len(status); pad > 0 {
		status += strings.Repeat(" ", pad)
	}
	drawText(v.screen, 0, height-1, styleStatus, status)

	v.screen.Show()
}

func statusLine(p *pointer.Pointer) string {
	return fmt.Sprintf(" primary:%s  middle:%s  auxiliary:%s  dragging:%s",
		onOff(p.PrimaryPressed()),
		onOff(p.MiddlePressed()),
		onOff(p.AuxiliaryPressed()),
		onOff(p.Dragging()),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawBox(s tcell.Screen, r mouse.Region, style tcell.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right := r.X + r.Width - 1
	bottom := r.Y + r.Height - 1

	for x := r.X + 1; x < right; x++ {
		s.SetContent(x, r.Y, tcell.RuneHLine, nil, style)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetContent(r.X, y, tcell.RuneVLine, nil, style)
		s.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	s.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, style)
	s.SetContent(right, r.Y, tcell.RuneURCorner, nil, style)
	s.SetContent(r.X, bottom, tcell.RuneLLCorner, nil, style)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

// clampRegion shrinks r so it fits inside a width by height screen, leaving
// the last row for the status line.
func clampRegion(r mouse.Region, width, height int) mouse.Region {
	if limit := width - r.X; r.Width > limit {
		r.Width = limit
	}
	if limit := height - 1 - r.Y; r.Height > limit {
		r.Height = limit
	}
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}
