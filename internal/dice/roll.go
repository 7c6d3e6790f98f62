package dice

import (
	"fmt"
	"math/rand/v2"
)

// Roll is one rolled notation. Value is the sum of Rolls plus the modifier.
type Roll struct {
	Notation Notation `msgpack:"notation"`
	Rolls    []int    `msgpack:"rolls"`
	Value    int      `msgpack:"value"`
}

// String is the message shown to the user, e.g. "Result of rolling 2d6+3: 11".
func (r Roll) String() string {
	return fmt.Sprintf("Result of rolling %s: %d", r.Notation, r.Value)
}

// Roller rolls dice from its random source. Not safe for concurrent use.
type Roller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller over src; nil means a randomly seeded source.
func NewRoller(src rand.Source) *Roller {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Roller{rng: rand.New(src)} // #nosec G404 -- game dice, not secrets
}

// Roll rolls n after validating it.
func (r *Roller) Roll(n Notation) (Roll, error) {
	if err := n.Validate(); err != nil {
		return Roll{}, err
	}
	res := Roll{Notation: n, Rolls: make([]int, n.Count), Value: n.Modifier}
	for i := range res.Rolls {
		res.Rolls[i] = r.rng.IntN(n.Faces) + 1
		res.Value += res.Rolls[i]
	}
	return res, nil
}
