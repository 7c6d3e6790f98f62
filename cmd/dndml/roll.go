package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dndml/internal/dice"
	"dndml/internal/driver"
	"dndml/internal/sheet"
)

// newRoller is swapped in tests for a seeded roller.
var newRoller = func() *dice.Roller { return dice.NewRoller(nil) }

var rollCmd = &cobra.Command{
	Use:   "roll [flags] <NdF[+M]>",
	Short: "Roll dice",
	Long: `Roll dice given as NdF or NdF+M (for example 2d6+3), or the %dice value
of a sheet field with --sheet and --field section.field`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoll,
}

var rerollCmd = &cobra.Command{
	Use:   "reroll",
	Short: "Roll the previous dice again",
	Args:  cobra.NoArgs,
	RunE:  runReroll,
}

func init() {
	rollCmd.Flags().String("sheet", "", "sheet to take the dice from")
	rollCmd.Flags().String("field", "", "field holding the dice, as section.field")
	rollCmd.Flags().Bool("show-rolls", false, "print each die")
	rerollCmd.Flags().Bool("show-rolls", false, "print each die")
}

func runRoll(cmd *cobra.Command, args []string) error {
	sheetPath, _ := cmd.Flags().GetString("sheet")
	fieldPath, _ := cmd.Flags().GetString("field")

	var (
		n   dice.Notation
		err error
	)
	switch {
	case len(args) == 1 && (sheetPath != "" || fieldPath != ""):
		return errors.New("give either a notation or --sheet/--field, not both")
	case len(args) == 1:
		n, err = dice.ParseNotation(args[0])
	case sheetPath != "" && fieldPath != "":
		n, err = notationFromSheet(cmd, sheetPath, fieldPath)
	default:
		return errors.New("nothing to roll: give a notation like 2d6+3 or --sheet with --field")
	}
	if err != nil {
		return err
	}
	return rollAndSave(cmd, n)
}

func runReroll(cmd *cobra.Command, _ []string) error {
	store, err := rollStore()
	if err != nil {
		return err
	}
	last, err := store.Load()
	if err != nil {
		if errors.Is(err, dice.ErrNoLastRoll) {
			return errors.New("no previous roll to repeat; use 'dndml roll' first")
		}
		return err
	}
	return rollAndSave(cmd, last.Notation)
}

func rollAndSave(cmd *cobra.Command, n dice.Notation) error {
	r, err := newRoller().Roll(n)
	if err != nil {
		return err
	}
	showRolls, _ := cmd.Flags().GetBool("show-rolls")
	if err := printRoll(cmd.OutOrStdout(), r, showRolls); err != nil {
		return err
	}

	store, err := rollStore()
	if err != nil {
		return err
	}
	if err := store.Save(r); err != nil {
		return fmt.Errorf("failed to save last roll: %w", err)
	}
	return nil
}

func printRoll(w io.Writer, r dice.Roll, showRolls bool) error {
	if _, err := fmt.Fprintln(w, r.String()); err != nil {
		return err
	}
	if showRolls && len(r.Rolls) > 0 {
		parts := make([]string, len(r.Rolls))
		for i, v := range r.Rolls {
			parts[i] = fmt.Sprint(v)
		}
		_, err := fmt.Fprintf(w, "rolls: %s\n", strings.Join(parts, " "))
		return err
	}
	return nil
}

func rollStore() (*dice.Store, error) {
	if current.LastRoll != "" {
		return dice.NewStore(current.LastRoll), nil
	}
	path, err := dice.DefaultStorePath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate last-roll file: %w", err)
	}
	return dice.NewStore(path), nil
}

func notationFromSheet(cmd *cobra.Command, sheetPath, fieldPath string) (dice.Notation, error) {
	section, field, ok := strings.Cut(fieldPath, ".")
	if !ok || section == "" || field == "" {
		return dice.Notation{}, fmt.Errorf("--field must look like section.field, got %q", fieldPath)
	}

	result, err := driver.Parse(sheetPath, current.driverOptions())
	if err != nil {
		return dice.Notation{}, err
	}
	if result.Doc == nil {
		if err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
			return dice.Notation{}, err
		}
		return dice.Notation{}, reported(cmd)
	}

	f, ok := result.Doc.Lookup(section, field)
	if !ok {
		return dice.Notation{}, fmt.Errorf("%s: no field %s.%s", sheetPath, section, field)
	}
	d, ok := f.Value.(sheet.Dice)
	if !ok {
		return dice.Notation{}, fmt.Errorf("%s: field %s.%s is %s, not dice", sheetPath, section, field, f.Value.Kind())
	}
	n, err := dice.FromSheet(d)
	if err != nil {
		return dice.Notation{}, fmt.Errorf("%s: field %s.%s: %w", sheetPath, section, field, err)
	}
	return n, nil
}
