package encounter

import (
	"fmt"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
)

// SetCondition applies a condition tag to name. Unknown tags are an
// invalid-input no-op. The engine enforces no exclusivity between tags;
// callers must avoid contradictory combinations.
func (w *World) SetCondition(name string, tag condition.Tag) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !condition.Known(tag) {
		return failure(ErrInvalidInput, map[string]any{"name": name, "condition": string(tag)},
			fmt.Sprintf("unknown condition %q", tag))
	}
	w.conditionsFor(name).Apply(tag)
	return success(map[string]any{"name": name, "condition": string(tag)},
		fmt.Sprintf("%s is now %s", name, tag))
}

// ClearCondition removes a condition tag from name. Unknown tags are an
// invalid-input no-op; removing an absent tag succeeds.
func (w *World) ClearCondition(name string, tag condition.Tag) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !condition.Known(tag) {
		return failure(ErrInvalidInput, map[string]any{"name": name, "condition": string(tag)},
			fmt.Sprintf("unknown condition %q", tag))
	}
	w.conditionsFor(name).Remove(tag)
	return success(map[string]any{"name": name, "condition": string(tag)},
		fmt.Sprintf("%s is no longer %s", name, tag))
}

// HasCondition reports whether name currently has the tag.
func (w *World) HasCondition(name string, tag condition.Tag) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conditions[name].Has(tag)
}

// SetCover records name's current cover level. Unknown levels are an
// invalid-input no-op.
func (w *World) SetCover(name, level string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := condition.ParseCover(level)
	if !ok {
		return failure(ErrInvalidInput, map[string]any{"name": name, "cover": level},
			fmt.Sprintf("unknown cover level %q", level))
	}
	w.cover[name] = c
	return success(map[string]any{"name": name, "cover": string(c)},
		fmt.Sprintf("%s has %s cover", name, c))
}

// CoverBonus returns the AC bonus granted by name's current cover and
// whether the cover blocks targeting entirely. Callers resolving ranged
// attacks consult this before rolling.
func (w *World) CoverBonus(name string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.cover[name]
	if !ok {
		c = condition.CoverNone
	}
	bonus, blocked := c.Bonus()
	return success(map[string]any{
		"name":    name,
		"cover":   string(c),
		"bonus":   bonus,
		"blocked": blocked,
	}, fmt.Sprintf("%s: %s cover (+%d AC%s)", name, c, bonus, blockedSuffix(blocked)))
}

func blockedSuffix(blocked bool) string {
	if blocked {
		return ", untargetable"
	}
	return ""
}
