package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dndml/internal/diagfmt"
	"dndml/internal/driver"
	"dndml/internal/sheet"
	"dndml/internal/source"
	"dndml/internal/ui"
)

const stdinName = "<stdin>"

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <sheet.dnd|directory|->",
	Short: "Parse a character sheet or a directory of sheets",
	Long:  `Parse reads a .dnd sheet, every *.dnd file under a directory, or stdin ("-") and prints the parsed document`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree|yaml|dump)")
	parseCmd.Flags().String("diagnostics", "pretty", "diagnostics format on stderr (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().Bool("cache", false, "reuse parsed sheets from the on-disk cache")
	parseCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := stringFlag(cmd, "format", current.Format)
	if err != nil {
		return err
	}
	if !validSheetFormat(format) {
		return fmt.Errorf("unknown format: %s", format)
	}
	diagFormat, err := stringFlag(cmd, "diagnostics", "")
	if err != nil {
		return err
	}

	opts := current.driverOptions()
	if cmd.Flags().Changed("jobs") {
		opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		cache, cacheErr := driver.OpenDiskCache(current.CacheDir, "dndml")
		if cacheErr != nil {
			return fmt.Errorf("failed to open cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	path := args[0]
	if path == "-" {
		content, readErr := readStdin(cmd)
		if readErr != nil {
			return readErr
		}
		return finishSingle(cmd, driver.ParseBytes(stdinName, content, opts), format, diagFormat)
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		result, parseErr := driver.Parse(path, opts)
		if parseErr != nil {
			return fmt.Errorf("parsing failed: %w", parseErr)
		}
		return finishSingle(cmd, result, format, diagFormat)
	}

	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
	)
	if shouldUseTUI(mode) {
		fs, results, err = ui.RunParseDir(cmd.Context(), path, opts, cmd.ErrOrStderr())
	} else {
		fs, results, err = driver.ParseDir(cmd.Context(), path, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	return finishDir(cmd, fs, results, format, diagFormat)
}

func finishSingle(cmd *cobra.Command, result *driver.ParseResult, format, diagFormat string) error {
	if err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagFormat); err != nil {
		return err
	}
	if result.Doc == nil {
		return reported(cmd)
	}
	return writeSheet(cmd.OutOrStdout(), format, result.Doc, result.FileSet)
}

func finishDir(cmd *cobra.Command, fs *source.FileSet, results []driver.ParseDirResult, format, diagFormat string) error {
	failed := false
	for _, r := range results {
		if err := printDiagnostics(cmd.ErrOrStderr(), r.Bag, fs, diagFormat); err != nil {
			return err
		}
		if r.Doc == nil {
			failed = true
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json", "yaml":
		docs := make(map[string]*diagfmt.SheetOutput, len(results))
		for _, r := range results {
			name := displayPath(fs, r)
			if r.Doc == nil {
				docs[name] = nil
				continue
			}
			so := diagfmt.BuildSheetOutput(r.Doc, fs)
			docs[name] = &so
		}
		if err := encodeMap(out, format, docs); err != nil {
			return err
		}
	default:
		for idx, r := range results {
			if r.Doc == nil {
				continue
			}
			if !current.Quiet {
				fmt.Fprintf(out, "== %s ==\n", displayPath(fs, r)) //nolint:errcheck
			}
			if err := writeSheet(out, format, r.Doc, fs); err != nil {
				return err
			}
			if !current.Quiet && idx < len(results)-1 {
				fmt.Fprintln(out) //nolint:errcheck
			}
		}
	}

	if failed {
		return reported(cmd)
	}
	return nil
}

func writeSheet(w io.Writer, format string, doc *sheet.Document, fs *source.FileSet) error {
	switch format {
	case "pretty":
		return diagfmt.FormatSheetPretty(w, doc, fs)
	case "json":
		return diagfmt.FormatSheetJSON(w, doc, fs)
	case "yaml":
		return diagfmt.FormatSheetYAML(w, doc, fs)
	case "tree":
		return diagfmt.FormatSheetTree(w, doc)
	case "dump":
		return diagfmt.FormatSheetDump(w, doc)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func validSheetFormat(format string) bool {
	switch format {
	case "pretty", "json", "yaml", "tree", "dump":
		return true
	}
	return false
}

func encodeMap(w io.Writer, format string, docs map[string]*diagfmt.SheetOutput) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(docs)
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(docs); err != nil {
		return err
	}
	return encoder.Close()
}

func displayPath(fs *source.FileSet, r driver.ParseDirResult) string {
	if fs == nil {
		return r.Path
	}
	return fs.Get(r.FileID).FormatPath("relative", fs.BaseDir())
}

func readStdin(cmd *cobra.Command) ([]byte, error) {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return content, nil
}
