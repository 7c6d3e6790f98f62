package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dndml/internal/dice"
)

var calcmodCmd = &cobra.Command{
	Use:   "calcmod <score>",
	Short: "Compute the ability modifier for a score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", dice.ErrInvalidScore, args[0])
		}
		mod, err := dice.Modifier(score)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), dice.ModifierText(score, mod))
		return err
	},
}
