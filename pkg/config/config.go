// Package config loads and saves the pipecanvas settings file.
//
// Settings live in a TOML file at $XDG_CONFIG_HOME/pipecanvas/config.toml
// (falling back to ~/.config/pipecanvas/config.toml). Missing keys keep their
// defaults, so a file only needs to name what it changes:
//
//	[canvas]
//	double_click = "400ms"
//
//	[bridge]
//	transport = "redis"
//	addr = "localhost:6379"
//	session = "demo"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pipecanvas/pkg/errors"
)

const (
	appName  = "pipecanvas"
	fileName = "config.toml"
)

// Transport names accepted in [bridge].
const (
	TransportNone     = "none"
	TransportSocketIO = "socketio"
	TransportRedis    = "redis"
	TransportHTTP     = "http"
)

var transports = []string{TransportNone, TransportSocketIO, TransportRedis, TransportHTTP}

// Config is the whole settings file.
type Config struct {
	Canvas Canvas `toml:"canvas"`
	Bridge Bridge `toml:"bridge"`
	Log    Log    `toml:"log"`
}

// Canvas holds geometry and timing settings of the engine.
type Canvas struct {
	NodeWidth     float64  `toml:"node_width"`
	FontSize      float64  `toml:"font_size"`
	TextPadding   float64  `toml:"text_padding"`
	DoubleClick   Duration `toml:"double_click"`
	TooltipDelay  Duration `toml:"tooltip_delay"`
	ArrowLength   float64  `toml:"arrow_length"`
	LabelMinWidth float64  `toml:"label_min_width"`
	LabelPadding  float64  `toml:"label_padding"`
	Width         float64  `toml:"width"`
	Height        float64  `toml:"height"`
}

// Bridge selects and configures the server connection.
type Bridge struct {
	Transport string `toml:"transport"`
	URL       string `toml:"url,omitempty"`       // socket.io server
	Path      string `toml:"path,omitempty"`      // socket.io endpoint path
	Namespace string `toml:"namespace,omitempty"` // socket.io namespace
	Addr      string `toml:"addr,omitempty"`      // redis address or http listen address
	Session   string `toml:"session,omitempty"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas: Canvas{
			NodeWidth:     120,
			FontSize:      10,
			TextPadding:   6,
			DoubleClick:   Duration(500 * time.Millisecond),
			TooltipDelay:  Duration(400 * time.Millisecond),
			ArrowLength:   5,
			LabelMinWidth: 40,
			LabelPadding:  30,
			Width:         1200,
			Height:        800,
		},
		Bridge: Bridge{
			Transport: TransportNone,
			Path:      "/socket.io/",
			Namespace: "/",
			Session:   "default",
		},
		Log: Log{Level: "info"},
	}
}

// Dir returns the directory holding the settings file.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default settings file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the settings file at path on top of the defaults. An empty
// path means the default location, where a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var problems []string
	positive := map[string]float64{
		"canvas.node_width":   c.Canvas.NodeWidth,
		"canvas.font_size":    c.Canvas.FontSize,
		"canvas.arrow_length": c.Canvas.ArrowLength,
		"canvas.width":        c.Canvas.Width,
		"canvas.height":       c.Canvas.Height,
	}
	for _, key := range sortedKeys(positive) {
		if positive[key] <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive", key))
		}
	}
	if c.Canvas.TextPadding < 0 || c.Canvas.LabelMinWidth < 0 || c.Canvas.LabelPadding < 0 {
		problems = append(problems, "canvas paddings and widths must not be negative")
	}
	if c.Canvas.DoubleClick <= 0 {
		problems = append(problems, "canvas.double_click must be positive")
	}
	if c.Canvas.TooltipDelay < 0 {
		problems = append(problems, "canvas.tooltip_delay must not be negative")
	}
	if !slices.Contains(transports, c.Bridge.Transport) {
		problems = append(problems, fmt.Sprintf("bridge.transport %q is not one of %s",
			c.Bridge.Transport, strings.Join(transports, ", ")))
	}
	switch c.Bridge.Transport {
	case TransportSocketIO:
		if c.Bridge.URL == "" {
			problems = append(problems, "bridge.url is required for socketio")
		}
	case TransportRedis, TransportHTTP:
		if c.Bridge.Addr == "" {
			problems = append(problems, fmt.Sprintf("bridge.addr is required for %s", c.Bridge.Transport))
		}
	}
	if len(problems) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(problems, "; "))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
