package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/dshills/unipointer/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if cfg.LogLevel() != logging.LevelInfo {
		t.Errorf("LogLevel() = %v, want info", cfg.LogLevel())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target != Default().Target {
		t.Errorf("Target = %+v, want defaults", cfg.Target)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if !cfg.Trace {
		t.Error("Trace should default to true")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "unipointer.toml", `
scripts = ["paint.lua", "/abs/other.lua"]
watch = true

[log]
level = "debug"

[target]
x = 1
y = 2
width = 30
height = 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Target != (TargetConfig{X: 1, Y: 2, Width: 30, Height: 10}) {
		t.Errorf("Target = %+v", cfg.Target)
	}
	if !cfg.Watch {
		t.Error("Watch = false, want true")
	}
	if len(cfg.Scripts) != 2 {
		t.Fatalf("Scripts = %v", cfg.Scripts)
	}
	if cfg.Scripts[0] != filepath.Join(dir, "paint.lua") {
		t.Errorf("Scripts[0] = %q, want resolved against config dir", cfg.Scripts[0])
	}
	if cfg.Scripts[1] != "/abs/other.lua" {
		t.Errorf("Scripts[1] = %q, want unchanged", cfg.Scripts[1])
	}
	if !cfg.Trace {
		t.Error("unset Trace should keep its default")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "unipointer.yaml", `
log:
  level: warn
  file: /tmp/unipointer.log
target:
  width: 8
  height: 4
trace: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/tmp/unipointer.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Target.Width != 8 || cfg.Target.Height != 4 {
		t.Errorf("Target = %+v", cfg.Target)
	}
	if cfg.Target.X != Default().Target.X {
		t.Errorf("Target.X = %d, want default %d", cfg.Target.X, Default().Target.X)
	}
	if cfg.Trace {
		t.Error("Trace = true, want false")
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	cfg := Default()
	if err := Decode("empty.yml", nil, &cfg); err != nil {
		t.Errorf("Decode(empty) error = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		target  any
	}{
		{"bad toml", "a.toml", "log = [", &ParseError{}},
		{"unknown toml field", "b.toml", "colour = 1", &ParseError{}},
		{"unknown yaml field", "c.yaml", "colour: 1", &ParseError{}},
		{"unsupported", "d.json", "{}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if tt.target == nil {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("error = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error = %T %v, want *ParseError", err, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"UNIPOINTER_LOG_LEVEL": "error",
		"UNIPOINTER_LOG_FILE":  "/var/log/up.log",
		"UNIPOINTER_SCRIPTS":   "a.lua, ,b.lua",
		"UNIPOINTER_WATCH":     "true",
		"UNIPOINTER_TRACE":     "0",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Log.Level != "error" || cfg.Log.File != "/var/log/up.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if len(cfg.Scripts) != 2 || cfg.Scripts[0] != "a.lua" || cfg.Scripts[1] != "b.lua" {
		t.Errorf("Scripts = %v", cfg.Scripts)
	}
	if !cfg.Watch || cfg.Trace {
		t.Errorf("Watch = %v, Trace = %v", cfg.Watch, cfg.Trace)
	}
}

func TestApplyEnvBadBool(t *testing.T) {
	env := map[string]string{
		"UNIPOINTER_WATCH": "maybe",
		"UNIPOINTER_TRACE": "sometimes",
	}
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("errors = %d (%v), want 2", n, err)
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Target.Width = 0
	cfg.Target.Height = -1
	cfg.Target.X = -3
	cfg.Scripts = []string{"ok.lua", "  "}

	err := cfg.Validate()
	errs := multierr.Errors(err)
	if len(errs) != 5 {
		t.Fatalf("Validate() = %d errors (%v), want 5", len(errs), err)
	}
	for _, e := range errs {
		if !errors.Is(e, ErrValidationFailed) {
			t.Errorf("%v does not wrap ErrValidationFailed", e)
		}
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("error text %q should name log.level", err.Error())
	}
}

func TestValidateWatchNeedsScripts(t *testing.T) {
	cfg := Default()
	cfg.Watch = true
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil, want watch error")
	}
}
