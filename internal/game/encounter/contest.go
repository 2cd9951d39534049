package encounter

import (
	"fmt"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/dice"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/grid"
)

// contestOutcome holds both sides of an opposed ability check. The attacker
// wins ties.
type contestOutcome struct {
	attackerCheck dice.CheckResult
	defenderCheck dice.CheckResult
	defenderSkill string
	attackerWins  bool
}

// rollContestLocked rolls athletics for the attacker against the defender's
// better of athletics and acrobatics.
func (w *World) rollContestLocked(attacker, defender string) contestOutcome {
	atkMod, _, _ := w.skillModifier(attacker, "athletics")
	defAthletics, _, _ := w.skillModifier(defender, "athletics")
	defAcrobatics, _, _ := w.skillModifier(defender, "acrobatics")

	defMod, defSkill := defAthletics, "athletics"
	if defAcrobatics > defAthletics {
		defMod, defSkill = defAcrobatics, "acrobatics"
	}

	atk := w.roller.D20Check(0, atkMod, dice.AdvantageNone)
	def := w.roller.D20Check(0, defMod, dice.AdvantageNone)
	return contestOutcome{
		attackerCheck: atk,
		defenderCheck: def,
		defenderSkill: defSkill,
		attackerWins:  atk.Total >= def.Total,
	}
}

func (c contestOutcome) meta(attacker, defender string) map[string]any {
	return map[string]any{
		"attacker":       attacker,
		"defender":       defender,
		"attacker_roll":  c.attackerCheck.Roll,
		"attacker_total": c.attackerCheck.Total,
		"defender_roll":  c.defenderCheck.Roll,
		"defender_total": c.defenderCheck.Total,
		"defender_skill": c.defenderSkill,
		"attacker_wins":  c.attackerWins,
	}
}

func (c contestOutcome) traceLine(attacker, defender, verb string) string {
	outcome := "resists"
	if c.attackerWins {
		outcome = "is overpowered"
	}
	return fmt.Sprintf("%s tries to %s %s: athletics %d vs %s %d - %s %s",
		attacker, verb, defender, c.attackerCheck.Total, c.defenderSkill,
		c.defenderCheck.Total, defender, outcome)
}

// Grapple runs an opposed check; on an attacker win the defender gains the
// grappled condition. A lost contest is still a successful operation, with
// attacker_wins=false in the metadata.
func (w *World) Grapple(attacker, defender string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	outcome := w.rollContestLocked(attacker, defender)
	meta := outcome.meta(attacker, defender)
	trace := []string{outcome.traceLine(attacker, defender, "grapple")}
	if outcome.attackerWins {
		w.conditionsFor(defender).Apply(condition.Grappled)
		trace = append(trace, fmt.Sprintf("%s is grappled", defender))
	}
	return success(meta, trace...)
}

// ShoveProne and ShovePush select what a winning shove does to the defender.
const (
	ShoveProne = "prone"
	ShovePush  = "push"
)

// Shove runs an opposed check; on an attacker win the defender is either
// knocked prone or pushed until they are one range band farther from the
// attacker. Pushing requires both positions and costs the defender nothing.
func (w *World) Shove(attacker, defender, mode string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if mode != ShoveProne && mode != ShovePush {
		return failure(ErrInvalidInput, map[string]any{"mode": mode},
			fmt.Sprintf("unknown shove mode %q", mode))
	}
	var attackerPos, defenderPos grid.Point
	if mode == ShovePush {
		var ok bool
		if attackerPos, ok = w.positions[attacker]; !ok {
			return failure(ErrPositionUnknown, map[string]any{"attacker": attacker},
				fmt.Sprintf("%s's position is unknown; cannot push", attacker))
		}
		if defenderPos, ok = w.positions[defender]; !ok {
			return failure(ErrPositionUnknown, map[string]any{"defender": defender},
				fmt.Sprintf("%s's position is unknown; cannot be pushed", defender))
		}
	}

	outcome := w.rollContestLocked(attacker, defender)
	meta := outcome.meta(attacker, defender)
	meta["mode"] = mode
	trace := []string{outcome.traceLine(attacker, defender, "shove")}
	if !outcome.attackerWins {
		return success(meta, trace...)
	}

	switch mode {
	case ShoveProne:
		w.conditionsFor(defender).Apply(condition.Prone)
		trace = append(trace, fmt.Sprintf("%s is knocked prone", defender))
	case ShovePush:
		newPos, pushed := pushAway(attackerPos, defenderPos)
		w.positions[defender] = newPos
		w.refreshBands(defender)
		meta["pushed_steps"] = pushed
		meta["position"] = map[string]any{"x": newPos.X, "y": newPos.Y}
		trace = append(trace, fmt.Sprintf("%s is shoved %d steps back to (%d,%d)",
			defender, pushed, newPos.X, newPos.Y))
	}
	return success(meta, trace...)
}

// pushAway moves def directly away from atk until the range band between
// them grows by one. A defender already at long range moves a single step.
func pushAway(atk, def grid.Point) (grid.Point, int) {
	start := grid.BandFor(grid.Distance(atk, def))
	dx, dy := awayDirection(atk, def)
	pushed := 0
	for {
		def = grid.Point{X: def.X + dx, Y: def.Y + dy}
		pushed++
		band := grid.BandFor(grid.Distance(atk, def))
		if band != start || start == grid.BandLong {
			return def, pushed
		}
	}
}

// awayDirection picks the single-step direction from atk through def,
// preferring the axis with the larger separation. Overlapping points push
// along +x.
func awayDirection(atk, def grid.Point) (int, int) {
	dx, dy := def.X-atk.X, def.Y-atk.Y
	if dx == 0 && dy == 0 {
		return 1, 0
	}
	if abs(dx) >= abs(dy) {
		return sign(dx), 0
	}
	return 0, sign(dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
