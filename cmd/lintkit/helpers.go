package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lintkit/internal/config"
)

// loadConfig resolves the effective configuration: defaults, overlaid
// from --config when given, with --color taking precedence over both.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return cfg, err
	}
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return cfg, err
	}
	if colorFlag != "" {
		cfg.Color = colorFlag
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// colorEnabled resolves the auto mode against the terminal.
func colorEnabled(cfg config.Config) bool {
	switch cfg.Color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func printf(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}
