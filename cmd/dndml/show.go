package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dndml/internal/driver"
	"dndml/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <sheet.dnd|->",
	Short: "Render a character sheet as a stat block",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Int("width", 0, "maximum line width (0 = terminal width)")
}

func runShow(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	if width <= 0 {
		width = terminalWidth()
	}

	var result *driver.ParseResult
	if args[0] == "-" {
		content, err := readStdin(cmd)
		if err != nil {
			return err
		}
		result = driver.ParseBytes(stdinName, content, current.driverOptions())
	} else {
		var err error
		result, err = driver.Parse(args[0], current.driverOptions())
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	}

	if err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}
	if result.Doc == nil {
		return reported(cmd)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), ui.RenderSheet(result.Doc, width))
	return err
}

func terminalWidth() int {
	if !isTerminal(os.Stdout) {
		return 0
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
