package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lintkit/internal/textdiff"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] <expected> <actual>",
	Short: "Render the structural difference between two text files",
	Long:  "Compare two files line by line with whitespace made visible; exits non-zero when they differ.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	expected, err := os.ReadFile(args[0]) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return fmt.Errorf("diff: %w", err)
	}
	actual, err := os.ReadFile(args[1]) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return fmt.Errorf("diff: %w", err)
	}

	report := textdiff.Report(string(expected), string(actual),
		textdiff.RenderOptions{Color: colorEnabled(cfg)})
	if report == "" {
		return printf("files are identical\n")
	}

	if err := printf("%s", report); err != nil {
		return err
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("diff: %s and %s differ", args[0], args[1])
}
