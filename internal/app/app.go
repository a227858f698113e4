// Package app wires configuration, logging, scripts and the pointer together
// and runs them either against a terminal or a recorded event file.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/unipointer/internal/config"
	"github.com/dshills/unipointer/internal/config/watcher"
	"github.com/dshills/unipointer/internal/input/mouse"
	"github.com/dshills/unipointer/internal/logging"
	"github.com/dshills/unipointer/internal/pointer"
	"github.com/dshills/unipointer/internal/script"
	"github.com/dshills/unipointer/internal/surface"
)

// Options configures the application. Non-zero fields override the
// configuration file and environment.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// Scripts are Lua scripts to load in addition to configured ones.
	Scripts []string

	// Watch reloads scripts when they change.
	Watch bool

	// LogOutput overrides where logs go when no log file is configured.
	LogOutput io.Writer

	// Lookup reads environment variables. Defaults to os.LookupEnv.
	Lookup config.LookupFunc
}

// Application owns one pointer bound to a target surface.
type Application struct {
	cfg    config.Config
	logger *logging.Logger

	target  *surface.Surface
	ambient *surface.Surface
	pointer *pointer.Pointer
	engine  *script.Engine
	watcher *watcher.Watcher

	logFile *os.File
	closed  bool
}

// New resolves configuration and builds the application.
func New(opts Options) (*Application, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg}
	if err := app.initLogger(opts.LogOutput); err != nil {
		return nil, err
	}

	app.target = surface.New("target")
	app.ambient = surface.New("screen")
	app.pointer = pointer.New(app.target, pointer.WithAmbient(app.ambient))
	app.engine = script.New(app.pointer, script.WithLogger(app.logger.WithComponent("script")))

	if err := app.engine.LoadAll(cfg.Scripts); err != nil {
		app.logger.Warn("script errors: %v", err)
	}

	if cfg.Watch {
		if err := app.initWatcher(); err != nil {
			app.Close()
			return nil, err
		}
	}

	app.logger.Debug("application initialized with %d scripts", len(cfg.Scripts))
	return app, nil
}

func resolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	cfg.Scripts = append(cfg.Scripts, opts.Scripts...)
	if opts.Watch {
		cfg.Watch = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (app *Application) initLogger(fallback io.Writer) error {
	out := fallback
	if app.cfg.Log.File != "" {
		f, err := os.OpenFile(app.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		app.logFile = f
		out = f
	}
	if out == nil {
		app.logger = logging.Null()
		return nil
	}

	app.logger = logging.New(logging.Config{
		Level:  app.cfg.LogLevel(),
		Output: out,
		Prefix: "unipointer",
	})
	return nil
}

func (app *Application) initWatcher() error {
	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error: %v", err)
	}))
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	for _, path := range app.cfg.Scripts {
		if err := w.Watch(path); err != nil {
			_ = w.Close()
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}
	app.watcher = w
	return nil
}

// reloadScripts reruns every configured script.
func (app *Application) reloadScripts(ev watcher.Event) {
	app.logger.Info("reloading scripts after %s of %s", ev.Op, ev.Path)
	if err := app.engine.Reload(app.cfg.Scripts); err != nil {
		app.logger.Warn("script errors: %v", err)
	}
}

// Config returns the resolved configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Pointer returns the application's pointer.
func (app *Application) Pointer() *pointer.Pointer {
	return app.pointer
}

// Region returns the configured target region.
func (app *Application) Region() mouse.Region {
	t := app.cfg.Target
	return mouse.Region{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// Close releases scripts, the watcher and the log file.
func (app *Application) Close() {
	if app.closed {
		return
	}
	app.closed = true

	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	app.engine.Close()
	app.pointer.Close()
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}
