package app

import (
	"context"
	"io"

	"github.com/dshills/unipointer/internal/replay"
)

// ReplayOptions configures RunReplay.
type ReplayOptions struct {
	// Realtime honours per-record delays.
	Realtime bool
}

// RunReplay dispatches recorded events from r and, when tracing is enabled,
// writes notifications to w as JSON lines.
func (app *Application) RunReplay(ctx context.Context, r io.Reader, w io.Writer, opts ReplayOptions) error {
	if app.closed {
		return ErrClosed
	}

	records, err := replay.Decode(r)
	if err != nil {
		return err
	}

	var tracer *replay.Tracer
	if app.cfg.Trace {
		tracer = replay.NewTracer(w)
		tracer.Attach(app.pointer)
		defer tracer.Detach()
	}

	var playerOpts []replay.PlayerOption
	if opts.Realtime {
		playerOpts = append(playerOpts, replay.WithRealtime())
	}
	n, err := replay.NewPlayer(app.target, app.ambient, playerOpts...).Play(ctx, records)
	app.logger.Debug("replayed %d of %d events", n, len(records))
	if err != nil {
		return err
	}

	if tracer != nil {
		return tracer.Err()
	}
	return nil
}
