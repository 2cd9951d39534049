package encounter

import (
	"fmt"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/grid"
)

// SetGuard declares protector as guarding protectee. A protector guards at
// most one protectee (redeclaring moves the guard); multiple protectors may
// guard the same protectee. Declaration order is retained as the
// deterministic tie-break for equidistant guardians.
func (w *World) SetGuard(protector, protectee string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.guards {
		if w.guards[i].protector == protector {
			w.guards[i].protectee = protectee
			return success(map[string]any{"protector": protector, "protected": protectee},
				fmt.Sprintf("%s now guards %s", protector, protectee))
		}
	}
	w.guards = append(w.guards, guardEntry{protector: protector, protectee: protectee})
	return success(map[string]any{"protector": protector, "protected": protectee},
		fmt.Sprintf("%s stands guard over %s", protector, protectee))
}

// ClearGuard removes protector's guard declaration, if any.
func (w *World) ClearGuard(protector string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.guards {
		if w.guards[i].protector == protector {
			protectee := w.guards[i].protectee
			w.guards = append(w.guards[:i], w.guards[i+1:]...)
			return success(map[string]any{"protector": protector, "protected": protectee},
				fmt.Sprintf("%s stops guarding %s", protector, protectee))
		}
	}
	return failure(ErrNotFound, map[string]any{"protector": protector},
		fmt.Sprintf("%s is not guarding anyone", protector))
}

// electProtector finds the guard who steps in front of an attack aimed at
// defender, or "" when no guard is eligible. A protector is eligible iff
// they guard the defender, are alive with an unused reaction this turn, and
// stand adjacent to the defender (distance <= 1, i.e. engaged). Among
// eligible protectors the one closest to the attacker is chosen; ties keep
// the earliest declaration.
func (w *World) electProtector(attacker, defender string) string {
	attackerPos, ok := w.positions[attacker]
	if !ok {
		return ""
	}
	defenderPos, ok := w.positions[defender]
	if !ok {
		return ""
	}

	best := ""
	bestDist := 0
	for _, g := range w.guards {
		if g.protectee != defender || g.protector == attacker {
			continue
		}
		if !w.alive(g.protector) {
			continue
		}
		if !w.ensureTurn(g.protector).ReactionAvailable {
			continue
		}
		p, ok := w.positions[g.protector]
		if !ok || grid.Distance(p, defenderPos) > 1 {
			continue
		}
		d := grid.Distance(p, attackerPos)
		if best == "" || d < bestDist {
			best = g.protector
			bestDist = d
		}
	}
	return best
}
