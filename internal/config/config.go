package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/dshills/unipointer/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "UNIPOINTER_"

// Config holds all settings.
type Config struct {
	Log     LogConfig    `toml:"log" yaml:"log"`
	Target  TargetConfig `toml:"target" yaml:"target"`
	Scripts []string     `toml:"scripts" yaml:"scripts"`
	Watch   bool         `toml:"watch" yaml:"watch"`
	Trace   bool         `toml:"trace" yaml:"trace"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty means stderr, which interactive mode
	// replaces with no output.
	File string `toml:"file" yaml:"file"`
}

// TargetConfig is the target region in terminal cells.
type TargetConfig struct {
	X      int `toml:"x" yaml:"x"`
	Y      int `toml:"y" yaml:"y"`
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Target: TargetConfig{
			X:      4,
			Y:      2,
			Width:  40,
			Height: 12,
		},
		Trace: true,
	}
}

// Load reads path on top of the defaults. The format is chosen by
// extension. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Decode(path, data, &cfg); err != nil {
		return cfg, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Decode parses data into cfg using the format implied by name.
func Decode(name string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return &ParseError{Path: name, Err: err}
	}
	return nil
}

// resolvePaths makes relative script paths relative to the config file.
func (c *Config) resolvePaths(base string) {
	for i, s := range c.Scripts {
		if s != "" && !filepath.IsAbs(s) {
			c.Scripts[i] = filepath.Join(base, s)
		}
	}
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays UNIPOINTER_* variables:
//
//	UNIPOINTER_LOG_LEVEL, UNIPOINTER_LOG_FILE, UNIPOINTER_SCRIPTS
//	(comma-separated), UNIPOINTER_WATCH, UNIPOINTER_TRACE
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := lookup(EnvPrefix + "SCRIPTS"); ok {
		c.Scripts = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.Scripts = append(c.Scripts, s)
			}
		}
	}

	var errs error
	for name, dst := range map[string]*bool{"WATCH": &c.Watch, "TRACE": &c.Trace} {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			continue
		}
		*dst = b
	}
	return errs
}

// Validate checks every setting and returns all problems combined.
func (c *Config) Validate() error {
	var errs error

	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = multierr.Append(errs, &ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("unknown level %q", c.Log.Level),
		})
	}
	if c.Target.Width <= 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "target.width", Message: "must be positive"})
	}
	if c.Target.Height <= 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "target.height", Message: "must be positive"})
	}
	if c.Target.X < 0 || c.Target.Y < 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "target", Message: "origin must not be negative"})
	}
	for i, s := range c.Scripts {
		if strings.TrimSpace(s) == "" {
			errs = multierr.Append(errs, &ValidationError{
				Field:   fmt.Sprintf("scripts[%d]", i),
				Message: "empty path",
			})
		}
	}
	if c.Watch && len(c.Scripts) == 0 {
		errs = multierr.Append(errs, &ValidationError{Field: "watch", Message: "requires at least one script"})
	}

	return errs
}

// LogLevel returns the parsed log level, defaulting to info.
func (c *Config) LogLevel() logging.Level {
	lvl, _ := logging.ParseLevel(c.Log.Level)
	return lvl
}
