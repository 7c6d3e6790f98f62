package dice

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"dndml/internal/sheet"
)

// MaxCount caps the number of dice in one roll.
const MaxCount = 10000

var (
	ErrInvalidNotation = errors.New("invalid dice notation")
	ErrInvalidDice     = errors.New("invalid dice")
	ErrIncompleteDice  = errors.New("dice value has NULL count or faces")
)

// Notation is a parsed NdF+M expression.
type Notation struct {
	Count    int
	Faces    int
	Modifier int
}

// String renders NdF+M, leaving out a zero modifier.
func (n Notation) String() string {
	if n.Modifier != 0 {
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Faces, n.Modifier)
	}
	return fmt.Sprintf("%dd%d", n.Count, n.Faces)
}

var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "D", Pattern: `[dD]`},
	{Name: "Plus", Pattern: `\+`},
})

// notationAST captures digits as text so leading zeros stay decimal.
type notationAST struct {
	Count    string  `parser:"@Int"`
	Faces    string  `parser:"D @Int"`
	Modifier *string `parser:"( Plus @Int )?"`
}

var notationParser = participle.MustBuild[notationAST](participle.Lexer(notationLexer))

// ParseNotation parses "NdF" or "NdF+M". Upper-case 'D' is accepted, the
// count is required and faces must be at least 1.
func ParseNotation(s string) (Notation, error) {
	ast, err := notationParser.ParseString("", s)
	if err != nil {
		return Notation{}, fmt.Errorf("%w: %q: %w", ErrInvalidNotation, s, err)
	}

	var n Notation
	if n.Count, err = strconv.Atoi(ast.Count); err != nil {
		return Notation{}, fmt.Errorf("%w: %s: count out of range", ErrInvalidDice, s)
	}
	if n.Faces, err = strconv.Atoi(ast.Faces); err != nil {
		return Notation{}, fmt.Errorf("%w: %s: faces out of range", ErrInvalidDice, s)
	}
	if ast.Modifier != nil {
		if n.Modifier, err = strconv.Atoi(*ast.Modifier); err != nil {
			return Notation{}, fmt.Errorf("%w: %s: modifier out of range", ErrInvalidDice, s)
		}
	}
	if err := n.Validate(); err != nil {
		return Notation{}, fmt.Errorf("%w: %s", err, s)
	}
	return n, nil
}

// Validate checks the ranges ParseNotation enforces. The highest possible
// total must fit in an int.
func (n Notation) Validate() error {
	switch {
	case n.Faces < 1:
		return fmt.Errorf("%w: faces must be at least 1", ErrInvalidDice)
	case n.Count < 0 || n.Count > MaxCount:
		return fmt.Errorf("%w: count must be between 0 and %d", ErrInvalidDice, MaxCount)
	case n.Modifier < 0:
		return fmt.Errorf("%w: negative modifier", ErrInvalidDice)
	case n.Count > 0 && n.Faces > (math.MaxInt-n.Modifier)/n.Count:
		return fmt.Errorf("%w: %s can exceed %d", ErrInvalidDice, n, math.MaxInt)
	}
	return nil
}

// FromSheet converts a '%dice' field value. A NULL modifier counts as zero.
func FromSheet(d sheet.Dice) (Notation, error) {
	if d.Count == nil || d.Faces == nil {
		return Notation{}, ErrIncompleteDice
	}
	n := Notation{Count: *d.Count, Faces: *d.Faces}
	if d.Modifier != nil {
		n.Modifier = *d.Modifier
	}
	if err := n.Validate(); err != nil {
		return Notation{}, err
	}
	return n, nil
}
