package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration invalid: %v", err)
	}
	if cfg.OpenMarker != "[|" || cfg.CloseMarker != "|]" {
		t.Errorf("markers = %q/%q", cfg.OpenMarker, cfg.CloseMarker)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %s, want 30s", cfg.Timeout())
	}
	d := cfg.Delimiters()
	if d.Open != cfg.OpenMarker || d.Close != cfg.CloseMarker {
		t.Errorf("Delimiters() = %+v", d)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("overrides over defaults", func(t *testing.T) {
		path := filepath.Join(dir, "lintkit.toml")
		content := "open_marker = \"<<\"\nclose_marker = \">>\"\ntimeout_seconds = 5\njobs = 4\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.OpenMarker != "<<" || cfg.CloseMarker != ">>" {
			t.Errorf("markers = %q/%q", cfg.OpenMarker, cfg.CloseMarker)
		}
		if cfg.TimeoutSeconds != 5 || cfg.Jobs != 4 {
			t.Errorf("timeout/jobs = %d/%d", cfg.TimeoutSeconds, cfg.Jobs)
		}
		// Untouched keys keep their defaults.
		if cfg.MaxDiagnostics != 100 || cfg.Color != "auto" {
			t.Errorf("defaults lost: max=%d color=%q", cfg.MaxDiagnostics, cfg.Color)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "absent.toml")); err == nil {
			t.Errorf("Load of missing file succeeded")
		}
	})

	t.Run("bad TOML", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		if err := os.WriteFile(path, []byte("open_marker = [unterminated"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load of broken TOML succeeded")
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.toml")
		if err := os.WriteFile(path, []byte("color = \"maybe\"\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load of invalid color succeeded")
		}
	})
}

func TestValidate(t *testing.T) {
	mutate := func(f func(*Config)) Config {
		cfg := Default()
		f(&cfg)
		return cfg
	}

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty open marker", cfg: mutate(func(c *Config) { c.OpenMarker = "" })},
		{name: "empty close marker", cfg: mutate(func(c *Config) { c.CloseMarker = "" })},
		{name: "identical markers", cfg: mutate(func(c *Config) { c.OpenMarker, c.CloseMarker = "@@", "@@" })},
		{name: "negative timeout", cfg: mutate(func(c *Config) { c.TimeoutSeconds = -1 })},
		{name: "negative jobs", cfg: mutate(func(c *Config) { c.Jobs = -2 })},
		{name: "zero max diagnostics", cfg: mutate(func(c *Config) { c.MaxDiagnostics = 0 })},
		{name: "unknown color", cfg: mutate(func(c *Config) { c.Color = "sometimes" })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Errorf("Validate accepted %+v", tt.cfg)
			}
		})
	}

	if err := mutate(func(c *Config) { c.TimeoutSeconds = 0 }).Validate(); err != nil {
		t.Errorf("zero timeout rejected: %v", err)
	}
}
