package encounter

import (
	"fmt"
	"sort"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/grid"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/sheet"
)

// RollInitiative starts combat with the given participants (all positioned
// or defined characters when none are named). Dead names are filtered out
// before rolling. Each participant rolls d20 + DEX modifier; the order sorts
// by score descending, tie-broken by DEX modifier descending and then name
// ascending, so the ordering is a deterministic total order.
//
// Postcondition: in_combat is true, round == 1, turn_idx == 0, and the first
// actor's turn tokens are reset. All-dead participant sets fail softly.
func (w *World) RollInitiative(participants ...string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	names := participants
	if len(names) == 0 {
		names = sortedNames(w.positions)
		if len(names) == 0 {
			names = w.sheets.Names()
			sort.Strings(names)
		}
	}

	var living []string
	for _, name := range names {
		if w.alive(name) {
			living = append(living, name)
		}
	}
	if len(living) == 0 {
		return failure(ErrNoLivingActors, nil, "no living participants to roll initiative for")
	}

	scores := make(map[string]int, len(living))
	dexMods := make(map[string]int, len(living))
	trace := []string{"initiative order:"}
	for _, name := range living {
		s := w.sheets.Ensure(name)
		mod := sheet.Modifier(s.Abilities.Dexterity)
		check := w.roller.D20Check(0, mod, "none")
		scores[name] = check.Total
		dexMods[name] = mod
	}

	order := make([]string, len(living))
	copy(order, living)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		if dexMods[a] != dexMods[b] {
			return dexMods[a] > dexMods[b]
		}
		return a < b
	})

	w.inCombat = true
	w.round = 1
	w.turnIdx = 0
	w.order = order
	w.scores = scores
	w.resetTurn(order[0])

	for i, name := range order {
		trace = append(trace, fmt.Sprintf("  %d. %s (%d)", i+1, name, scores[name]))
	}
	trace = append(trace, fmt.Sprintf("round 1 begins; %s acts first", order[0]))

	return success(map[string]any{
		"order":  append([]string(nil), order...),
		"scores": copyIntMap(scores),
		"round":  1,
		"actor":  order[0],
	}, trace...)
}

// NextTurn advances to the next living actor in initiative order, resetting
// their turn tokens and clearing any transient dodge stance from their prior
// turn. Wrapping past the end of the order increments the round. When combat
// is not active the call fails softly; when no living actor remains the
// state is left unchanged and the failure is reported without crashing.
func (w *World) NextTurn() Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.inCombat || len(w.order) == 0 {
		return failure(ErrNotInCombat, nil, "not in combat")
	}

	n := len(w.order)
	for step := 1; step <= n; step++ {
		idx := (w.turnIdx + step) % n
		name := w.order[idx]
		if !w.alive(name) {
			continue
		}
		// Crossing the end of the order exactly once per full wrap.
		if w.turnIdx+step >= n {
			w.round++
		}
		w.turnIdx = idx
		w.conditionsFor(name).Remove(condition.Dodge)
		t := w.resetTurn(name)
		return success(map[string]any{
			"actor":    name,
			"round":    w.round,
			"turn_idx": w.turnIdx,
			"state":    t.asMeta(),
		}, fmt.Sprintf("round %d: %s acts", w.round, name))
	}

	return failure(ErrNoLivingActors, nil, "no living actor remains in the initiative order")
}

// EndCombat leaves combat mode and clears the ephemeral battlefield state:
// initiative, turn tokens, range bands, cover, conditions, and the trigger
// queue. Character sheets, inventory, relations, and objectives survive.
func (w *World) EndCombat() Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.inCombat = false
	w.round = 0
	w.turnIdx = 0
	w.order = nil
	w.scores = make(map[string]int)
	w.turns = make(map[string]*turnState)
	w.bands = make(map[pairKey]grid.Band)
	w.cover = make(map[string]condition.Cover)
	w.conditions = make(map[string]*condition.Set)
	w.triggers = nil

	return success(nil, "combat ends; the field state is cleared")
}

// InCombat reports whether a combat session is active.
func (w *World) InCombat() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inCombat
}

// CurrentActor returns the actor whose turn it is, or a soft failure when
// combat is not active.
func (w *World) CurrentActor() Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.inCombat || len(w.order) == 0 {
		return failure(ErrNotInCombat, nil, "not in combat")
	}
	name := w.order[w.turnIdx]
	return success(map[string]any{
		"actor":    name,
		"round":    w.round,
		"turn_idx": w.turnIdx,
	}, fmt.Sprintf("round %d: it is %s's turn", w.round, name))
}

// copyIntMap returns a shallow copy of m for inclusion in result metadata.
func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
