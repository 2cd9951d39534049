package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// TermKind discriminates the three term types in a dice expression.
type TermKind int

const (
	// TermDice is an NdM dice term.
	TermDice TermKind = iota
	// TermConstant is a flat integer term.
	TermConstant
	// TermAbility is an ability placeholder term ("STR".."CHA") resolved to
	// the acting character's ability modifier at roll time.
	TermAbility
)

// Term is one signed term of a parsed dice expression.
type Term struct {
	Sign    int      // +1 or -1
	Kind    TermKind // discriminator for the fields below
	Count   int      // TermDice: number of dice
	Sides   int      // TermDice: faces per die
	Value   int      // TermConstant: flat value (always positive; sign is in Sign)
	Ability string   // TermAbility: upper-cased ability name
}

// Expression represents a parsed dice expression ready to be rolled.
//
// Invariant: len(Terms) >= 1; every dice term has Count >= 1 and Sides >= 1.
type Expression struct {
	Raw   string
	Terms []Term
}

// abilityNames is the set of recognised ability placeholder tokens.
var abilityNames = map[string]bool{
	"STR": true, "DEX": true, "CON": true,
	"INT": true, "WIS": true, "CHA": true,
}

// Parse parses a dice expression string into an Expression.
//
// Grammar: a sequence of signed terms, each either "NdM" (default N=1 and
// M=20 when omitted), an integer constant, or an ability placeholder.
// Supported forms: "d20", "2d6+3", "1d8+STR", "2d6+DEX-1".
//
// Precondition: expr must be a non-empty string.
// Postcondition: Returns an Expression with at least one term, or a
// descriptive error for any unknown token.
func Parse(expr string) (Expression, error) {
	raw := expr
	s := strings.ReplaceAll(expr, " ", "")
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}

	var terms []Term
	sign := 1
	i := 0
	for i < len(s) {
		switch s[i] {
		case '+':
			sign = 1
			i++
			continue
		case '-':
			sign = -1
			i++
			continue
		}

		// Scan one token up to the next sign.
		j := i
		for j < len(s) && s[j] != '+' && s[j] != '-' {
			j++
		}
		tok := s[i:j]
		i = j

		term, err := parseTerm(tok, raw)
		if err != nil {
			return Expression{}, err
		}
		term.Sign = sign
		sign = 1
		terms = append(terms, term)
	}

	if len(terms) == 0 {
		return Expression{}, fmt.Errorf("dice: no terms in expression %q", raw)
	}
	return Expression{Raw: raw, Terms: terms}, nil
}

// parseTerm parses a single unsigned token into a Term.
func parseTerm(tok, raw string) (Term, error) {
	if tok == "" {
		return Term{}, fmt.Errorf("dice: dangling sign in expression %q", raw)
	}

	upper := strings.ToUpper(tok)
	if abilityNames[upper] {
		return Term{Kind: TermAbility, Ability: upper}, nil
	}

	if n, err := strconv.Atoi(tok); err == nil {
		if n < 0 {
			return Term{}, fmt.Errorf("dice: negative constant %q in %q: use a '-' sign instead", tok, raw)
		}
		return Term{Kind: TermConstant, Value: n}, nil
	}

	lower := strings.ToLower(tok)
	dIdx := strings.IndexByte(lower, 'd')
	if dIdx < 0 {
		return Term{}, fmt.Errorf("dice: unknown term %q in expression %q", tok, raw)
	}

	count := 1
	if countStr := lower[:dIdx]; countStr != "" {
		c, err := strconv.Atoi(countStr)
		if err != nil {
			return Term{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if c < 1 {
			return Term{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", raw)
		}
		count = c
	}

	sides := 20
	if sidesStr := lower[dIdx+1:]; sidesStr != "" {
		m, err := strconv.Atoi(sidesStr)
		if err != nil {
			return Term{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
		}
		if m < 1 {
			return Term{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 1", raw)
		}
		sides = m
	}

	return Term{Kind: TermDice, Count: count, Sides: sides}, nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
