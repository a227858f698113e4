package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/unipointer/internal/config/watcher"
	"github.com/dshills/unipointer/internal/input/mouse"
	"github.com/dshills/unipointer/internal/replay"
)

const eventQueueSize = 64

// session is one interactive run bound to a screen.
type session struct {
	app        *Application
	screen     tcell.Screen
	view       *view
	translator *mouse.Translator
	router     *mouse.Router
}

func (app *Application) newSession(screen tcell.Screen) *session {
	width, height := screen.Size()
	return &session{
		app:        app,
		screen:     screen,
		view:       newView(screen),
		translator: mouse.NewTranslator(),
		router:     mouse.NewRouter(app.target, app.ambient, clampRegion(app.Region(), width, height)),
	}
}

// RunInteractive drives the pointer from terminal mouse input until the user
// quits or ctx is cancelled. The screen is initialized and finalized here.
func (app *Application) RunInteractive(ctx context.Context, screen tcell.Screen) error {
	if app.closed {
		return ErrClosed
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	s := app.newSession(screen)
	if app.cfg.Trace {
		tracer := replay.NewTracer(s.view.log)
		tracer.Attach(app.pointer)
		defer tracer.Detach()
	}

	g, gctx := errgroup.WithContext(ctx)

	events := make(chan tcell.Event, eventQueueSize)
	quit := make(chan struct{})
	g.Go(func() error {
		screen.ChannelEvents(events, quit)
		return nil
	})

	var changes <-chan watcher.Event
	if app.watcher != nil {
		changes = app.watcher.Events()
		g.Go(func() error {
			if err := app.watcher.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(quit)
		return s.loop(gctx, events, changes)
	})

	app.logger.Info("interactive session started")
	err := g.Wait()
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		err = nil
	}
	app.logger.Info("interactive session ended")
	return err
}

func (s *session) loop(ctx context.Context, events <-chan tcell.Event, changes <-chan watcher.Event) error {
	s.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := s.handle(ev); err != nil {
				return err
			}

		case ch := <-changes:
			s.app.reloadScripts(ch)
		}
		s.draw()
	}
}

// handle processes one terminal event. It returns ErrQuit when the user asks
// to leave.
func (s *session) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return ErrQuit
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return ErrQuit
		}

	case *tcell.EventMouse:
		for _, raw := range s.translator.Translate(ev) {
			s.router.Route(raw)
		}

	case *tcell.EventResize:
		width, height := ev.Size()
		s.router.SetRegion(clampRegion(s.app.Region(), width, height))
		s.screen.Sync()
		s.app.logger.Debug("resized to %dx%d", width, height)
	}
	return nil
}

func (s *session) draw() {
	s.view.draw(s.app.pointer, s.router.Region())
}
