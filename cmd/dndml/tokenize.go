package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dndml/internal/diagfmt"
	"dndml/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] sheet.dnd",
	Short: "Tokenize a character sheet",
	Long:  `Tokenize breaks a .dnd sheet into its tokens, including invalid ones`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	var result *driver.TokenizeResult
	if args[0] == "-" {
		content, readErr := readStdin(cmd)
		if readErr != nil {
			return readErr
		}
		result = driver.TokenizeBytes(stdinName, content, current.MaxDiagnostics)
	} else {
		result, err = driver.Tokenize(args[0], current.MaxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	if err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
