package dice

import (
	"errors"
	"fmt"
)

var ErrInvalidScore = errors.New("ability score must be a positive integer")

// Modifier returns the ability modifier for score: floor((score-10)/2).
func Modifier(score int) (int, error) {
	if score < 1 {
		return 0, ErrInvalidScore
	}
	// score >= 1, so the halving never needs to round toward -inf
	return score/2 - 5, nil
}

// ModifierText formats the calcmod answer.
func ModifierText(score, mod int) string {
	return fmt.Sprintf("Modifier for Ability score %d: %d", score, mod)
}
