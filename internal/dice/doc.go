// Package dice parses NdF+M notation, rolls it and remembers the last roll.
// It also computes ability modifiers from ability scores.
package dice
