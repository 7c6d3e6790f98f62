package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dndml/internal/version"
)

// errReported is returned once diagnostics already explain the failure.
var errReported = errors.New("diagnostics reported")

var rootCmd = &cobra.Command{
	Use:               "dndml",
	Short:             "Character sheet tools for the DnD markup language",
	Long:              `dndml tokenizes, parses and renders .dnd character sheets and rolls dice`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
}

// main executes the root command and flushes profiles. Any error exits with status 1.
func main() {
	err := rootCmd.Execute()
	if stopErr := stopProfiling(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "failed to write profiles: %v\n", stopErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(rerollCmd)
	rootCmd.AddCommand(calcmodCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("path-mode", "auto", "how diagnostics show file paths (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String("config", "", "path to dndml.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// reported silences cobra's own error line when diagnostics were printed.
func reported(cmd *cobra.Command) error {
	cmd.SilenceErrors = true
	return errReported
}
