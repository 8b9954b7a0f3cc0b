package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pipecanvas/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	src := `
[canvas]
double_click = "350ms"
width = 1600

[bridge]
transport = "redis"
addr = "localhost:6379"
session = "demo"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Canvas.DoubleClick.D(), 350*time.Millisecond; got != want {
		t.Errorf("DoubleClick = %v, want %v", got, want)
	}
	if cfg.Canvas.Width != 1600 {
		t.Errorf("Width = %v, want 1600", cfg.Canvas.Width)
	}
	if cfg.Canvas.Height != 800 {
		t.Errorf("Height = %v, want default 800", cfg.Canvas.Height)
	}
	if cfg.Bridge.Transport != TransportRedis || cfg.Bridge.Session != "demo" {
		t.Errorf("Bridge = %+v", cfg.Bridge)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "[canvas\nwidth = 1", ""},
		{"bad duration", "[canvas]\ndouble_click = \"soon\"", ""},
		{"negative width", "[canvas]\nwidth = -5", "canvas.width"},
		{"unknown transport", "[bridge]\ntransport = \"carrier-pigeon\"", "bridge.transport"},
		{"socketio without url", "[bridge]\ntransport = \"socketio\"", "bridge.url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v, want defaults", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load of an explicit missing file succeeded")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Canvas.TooltipDelay = Duration(time.Second)
	cfg.Bridge.Transport = TransportHTTP
	cfg.Bridge.Addr = ":8080"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `tooltip_delay = "1s"`) {
		t.Errorf("saved file lacks the duration string:\n%s", data)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load(Save(cfg)) = %+v, want %+v", got, cfg)
	}
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, appName, fileName); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
