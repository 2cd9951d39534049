package dice

// Advantage selects which of the two d20 draws a check keeps.
type Advantage string

// Advantage states for d20 checks.
const (
	AdvantageNone         Advantage = "none"
	AdvantageAdvantage    Advantage = "advantage"
	AdvantageDisadvantage Advantage = "disadvantage"
)

// ParseAdvantage normalises an advantage string; empty means none.
//
// Postcondition: ok is false only for strings outside {"", "none",
// "advantage", "disadvantage"}.
func ParseAdvantage(s string) (Advantage, bool) {
	switch Advantage(s) {
	case "", AdvantageNone:
		return AdvantageNone, true
	case AdvantageAdvantage:
		return AdvantageAdvantage, true
	case AdvantageDisadvantage:
		return AdvantageDisadvantage, true
	default:
		return AdvantageNone, false
	}
}

// FromNet converts a net advantage count into an Advantage: positive is
// advantage, negative disadvantage, zero none.
func FromNet(net int) Advantage {
	switch {
	case net > 0:
		return AdvantageAdvantage
	case net < 0:
		return AdvantageDisadvantage
	default:
		return AdvantageNone
	}
}

// CheckResult is the outcome of a single d20 check.
type CheckResult struct {
	Rolls     [2]int    // both underlying d20 draws, in draw order
	Roll      int       // the kept die
	Modifier  int       // flat modifier added to the kept die
	Total     int       // Roll + Modifier
	Target    int       // DC or AC the total was compared against
	Advantage Advantage // advantage state the check was resolved under
	Success   bool      // Total >= Target
}

// D20Check draws two d20 values and resolves a check against target.
// Advantage keeps the max, disadvantage the min, and none keeps the first
// draw. Both dice are always drawn regardless of advantage so that a seeded
// Source replays identically whatever the advantage state.
//
// Precondition: src must be non-nil.
// Postcondition: Success == (Roll + modifier >= target); Roll is max(Rolls)
// under advantage and min(Rolls) under disadvantage.
func D20Check(target, modifier int, adv Advantage, src Source) CheckResult {
	r1 := src.Intn(20) + 1
	r2 := src.Intn(20) + 1

	kept := r1
	switch adv {
	case AdvantageAdvantage:
		kept = max(r1, r2)
	case AdvantageDisadvantage:
		kept = min(r1, r2)
	}

	total := kept + modifier
	return CheckResult{
		Rolls:     [2]int{r1, r2},
		Roll:      kept,
		Modifier:  modifier,
		Total:     total,
		Target:    target,
		Advantage: adv,
		Success:   total >= target,
	}
}
