package dice

import "fmt"

// Roll evaluates an Expression using the given Source. Ability placeholder
// terms are resolved through mods; passing a nil resolver makes any ability
// term an error.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: result.Total() == sum(result.Dice) + result.Modifier; die
// entries appear in term order with their term's sign applied.
func Roll(expr Expression, src Source, mods AbilityResolver) (RollResult, error) {
	result := RollResult{Expression: expr.Raw}
	for _, term := range expr.Terms {
		switch term.Kind {
		case TermDice:
			for i := 0; i < term.Count; i++ {
				result.Dice = append(result.Dice, term.Sign*(src.Intn(term.Sides)+1))
			}
		case TermConstant:
			result.Modifier += term.Sign * term.Value
		case TermAbility:
			if mods == nil {
				return RollResult{}, fmt.Errorf("dice: ability term %q in %q with no ability context", term.Ability, expr.Raw)
			}
			mod, ok := mods(term.Ability)
			if !ok {
				return RollResult{}, fmt.Errorf("dice: unknown ability %q in %q", term.Ability, expr.Raw)
			}
			result.Modifier += term.Sign * mod
		default:
			return RollResult{}, fmt.Errorf("dice: unknown term kind %d in %q", term.Kind, expr.Raw)
		}
	}
	return result, nil
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Precondition: expr must be a valid dice expression string; src must be non-nil.
// Postcondition: Returns a RollResult or a parse/roll error.
func RollExpr(expr string, src Source, mods AbilityResolver) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src, mods)
}
