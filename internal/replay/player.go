package replay

import (
	"context"
	"time"

	"github.com/dshills/unipointer/internal/surface"
)

// Player dispatches records to a target and its ambient surface.
type Player struct {
	target  *surface.Surface
	ambient *surface.Surface

	// realtime honours record delays.
	realtime bool
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithRealtime makes Play sleep for each record's delay.
func WithRealtime() PlayerOption {
	return func(p *Player) {
		p.realtime = true
	}
}

// NewPlayer creates a player for target and ambient.
func NewPlayer(target, ambient *surface.Surface, opts ...PlayerOption) *Player {
	p := &Player{target: target, ambient: ambient}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play dispatches every record in order, target first when the record is
// on target. It returns the number of records dispatched.
func (p *Player) Play(ctx context.Context, records []Record) (int, error) {
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if p.realtime && rec.Delay > 0 {
			timer := time.NewTimer(rec.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return i, ctx.Err()
			case <-timer.C:
			}
		}

		ev := rec.Event
		if ev.Timestamp.IsZero() {
			ev.Timestamp = time.Now()
		}
		if rec.OnTarget {
			p.target.Dispatch(&ev)
		}
		p.ambient.Dispatch(&ev)
	}
	return len(records), nil
}
