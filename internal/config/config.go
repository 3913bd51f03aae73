// Package config holds process-wide, read-only harness configuration.
// It is constructed once (defaults, optionally overlaid from a TOML
// file) and passed explicitly into test setup; nothing mutates it
// afterwards.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"lintkit/internal/markup"
)

// Config is the harness configuration.
type Config struct {
	// OpenMarker and CloseMarker override the span marker delimiters.
	OpenMarker  string `toml:"open_marker"`
	CloseMarker string `toml:"close_marker"`

	// TimeoutSeconds bounds one analysis run; 0 disables the bound.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// Jobs limits suite-level parallelism across independent cases.
	Jobs int `toml:"jobs"`

	// MaxDiagnostics caps how many diagnostics one run may report.
	MaxDiagnostics int `toml:"max_diagnostics"`

	// Color controls CLI output: auto, on or off.
	Color string `toml:"color"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OpenMarker:     markup.Default.Open,
		CloseMarker:    markup.Default.Close,
		TimeoutSeconds: 30,
		Jobs:           1,
		MaxDiagnostics: 100,
		Color:          "auto",
	}
}

// Load reads a TOML configuration file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the harness cannot honor.
func (c Config) Validate() error {
	if c.OpenMarker == "" || c.CloseMarker == "" {
		return fmt.Errorf("markers must be non-empty")
	}
	if c.OpenMarker == c.CloseMarker {
		return fmt.Errorf("open and close markers must differ")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative")
	}
	if c.MaxDiagnostics <= 0 {
		return fmt.Errorf("max_diagnostics must be positive")
	}
	switch c.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("color must be auto, on or off, got %q", c.Color)
	}
	return nil
}

// Delimiters returns the configured marker pair.
func (c Config) Delimiters() markup.Delimiters {
	return markup.Delimiters{Open: c.OpenMarker, Close: c.CloseMarker}
}

// Timeout returns the per-run deadline, 0 when disabled.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
