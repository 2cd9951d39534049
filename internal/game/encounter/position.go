package encounter

import (
	"fmt"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/grid"
)

// SetPosition places name at (x, y), creating the position on first write.
// Every position write refreshes the cached range bands between name and all
// other positioned actors.
func (w *World) SetPosition(name string, x, y int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.positions[name] = grid.Point{X: x, Y: y}
	w.refreshBands(name)
	return success(map[string]any{
		"name":     name,
		"position": []int{x, y},
	}, fmt.Sprintf("%s is now at (%d, %d)", name, x, y))
}

// GetPosition returns name's position. Absence means "unknown" and is a
// non-fatal failure, not a default of (0, 0).
func (w *World) GetPosition(name string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.positions[name]
	if !ok {
		return failure(ErrPositionUnknown, map[string]any{"name": name},
			fmt.Sprintf("%s's position is unknown", name))
	}
	return success(map[string]any{
		"name":     name,
		"position": []int{p.X, p.Y},
	}, fmt.Sprintf("%s is at (%d, %d)", name, p.X, p.Y))
}

// MoveTowards walks name up to steps grid steps toward target, consuming
// movement budget one step at a time. Movement stops early when the budget
// runs out, in which case the result reports a partial failure with the
// distance actually covered. Leaving engaged range of any living actor
// without the disengage stance enqueues an opportunity-attack trigger.
func (w *World) MoveTowards(name string, target grid.Point, steps int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	from, ok := w.positions[name]
	if !ok {
		return failure(ErrPositionUnknown, map[string]any{"name": name},
			fmt.Sprintf("%s's position is unknown; cannot move", name))
	}
	if steps < 0 {
		steps = 0
	}

	t := w.ensureTurn(name)
	want := min(steps, grid.Distance(from, target))
	allowed := min(want, t.MoveLeft)

	// Bands before the move, for opportunity-attack detection.
	engagedBefore := w.engagedWith(name)

	pos := from
	for i := 0; i < allowed; i++ {
		pos = grid.StepToward(pos, target)
	}
	w.positions[name] = pos
	t.MoveLeft -= allowed
	w.refreshBands(name)

	if !t.Disengage {
		for _, other := range engagedBefore {
			if band, ok := w.bandBetween(name, other); ok && band != grid.BandEngaged && w.alive(other) {
				w.enqueueTrigger("opportunity_attack", map[string]any{
					"attacker": other,
					"target":   name,
				})
			}
		}
	}

	meta := map[string]any{
		"name":      name,
		"from":      []int{from.X, from.Y},
		"position":  []int{pos.X, pos.Y},
		"moved":     allowed,
		"remaining": grid.Distance(pos, target),
		"move_left": t.MoveLeft,
	}
	if allowed < want {
		return failure(ErrResourceExhausted, meta,
			fmt.Sprintf("%s moves %d of %d steps toward (%d, %d) and runs out of movement at (%d, %d)",
				name, allowed, want, target.X, target.Y, pos.X, pos.Y))
	}
	return success(meta,
		fmt.Sprintf("%s moves %d steps to (%d, %d); %d steps from target, %d movement left",
			name, allowed, pos.X, pos.Y, grid.Distance(pos, target), t.MoveLeft))
}

// engagedWith returns the names currently in engaged band with name, in
// sorted order for deterministic trigger enqueueing.
func (w *World) engagedWith(name string) []string {
	var out []string
	for _, other := range sortedNames(w.positions) {
		if other == name {
			continue
		}
		if band, ok := w.bandBetween(name, other); ok && band == grid.BandEngaged {
			out = append(out, other)
		}
	}
	return out
}

// RangeBand returns the cached range band between two positioned actors.
func (w *World) RangeBand(a, b string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	band, ok := w.bandBetween(a, b)
	if !ok {
		return failure(ErrPositionUnknown, map[string]any{"a": a, "b": b},
			fmt.Sprintf("no range band cached between %s and %s", a, b))
	}
	return success(map[string]any{"a": a, "b": b, "band": string(band)},
		fmt.Sprintf("%s and %s are at %s range", a, b, band))
}
