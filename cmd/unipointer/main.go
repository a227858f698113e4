// Package main is the entry point for unipointer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/unipointer/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds command line settings beyond app.Options.
type options struct {
	app      app.Options
	replay   string
	realtime bool
}

// scriptList collects repeated -script flags.
type scriptList []string

func (s *scriptList) String() string {
	return strings.Join(*s, ",")
}

func (s *scriptList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.replay != "" {
		opts.app.LogOutput = os.Stderr
	}

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.replay != "" {
		err = runReplay(ctx, application, opts)
	} else {
		err = runInteractive(ctx, application)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runReplay(ctx context.Context, application *app.Application, opts options) error {
	var in io.Reader = os.Stdin
	if opts.replay != "-" {
		f, err := os.Open(opts.replay)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return application.RunReplay(ctx, in, os.Stdout, app.ReplayOptions{Realtime: opts.realtime})
}

func runInteractive(ctx context.Context, application *app.Application) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return app.ErrNotTerminal
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	return application.RunInteractive(ctx, screen)
}

func parseFlags() options {
	var opts options
	var scripts scriptList
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Var(&scripts, "script", "Lua script to load (repeatable)")
	flag.Var(&scripts, "s", "Lua script to load (shorthand)")
	flag.StringVar(&opts.replay, "replay", "", "Replay a JSON-lines event file (- for stdin)")
	flag.StringVar(&opts.replay, "r", "", "Replay a JSON-lines event file (shorthand)")
	flag.BoolVar(&opts.realtime, "realtime", false, "Honour event delays during replay")
	flag.BoolVar(&opts.app.Watch, "watch", false, "Reload scripts when they change")
	flag.BoolVar(&opts.app.Watch, "w", false, "Reload scripts when they change (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "unipointer - unified mouse, pen and touch pointer state\n\n")
		fmt.Fprintf(os.Stderr, "Usage: unipointer [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  unipointer                          Track the terminal mouse\n")
		fmt.Fprintf(os.Stderr, "  unipointer -s drag.lua -w           Run a script, reloading on change\n")
		fmt.Fprintf(os.Stderr, "  unipointer -r events.jsonl          Replay recorded events and trace\n")
		fmt.Fprintf(os.Stderr, "  cat events.jsonl | unipointer -r -  Replay from stdin\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("unipointer %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.app.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.app.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %s\n", strings.Join(flag.Args(), " "))
		os.Exit(1)
	}

	opts.app.Scripts = scripts
	return opts
}
