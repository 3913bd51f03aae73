package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lintkit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lintkit",
	Short: "Test harness tooling for static-analysis components",
	Long:  `lintkit validates analyzers, code fixes and refactorings against annotated source snippets`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(markupCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to a lintkit.toml configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
