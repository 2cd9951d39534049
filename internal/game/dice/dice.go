// Package dice provides the randomness abstraction, dice-expression
// evaluation, and d20 contest resolution for the encounter engine.
package dice

import "fmt"

// RollResult holds the full audit trail for a single dice roll evaluation.
// Die values carry the sign of their term, so negative terms contribute
// negative entries.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "2d6+STR+1"
	Dice       []int  // individual signed die results
	Modifier   int    // net flat modifier: constants plus ability modifiers
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d6+1 → [4 5] +1 = 10"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// AbilityResolver maps an ability placeholder ("STR".."CHA") appearing in a
// dice expression to the acting character's ability modifier. The second
// return value reports whether the ability name is known.
type AbilityResolver func(ability string) (int, bool)
