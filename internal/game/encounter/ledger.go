package encounter

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/grid"
)

// Objective statuses.
const (
	ObjectivePending = "pending"
	ObjectiveDone    = "done"
	ObjectiveBlocked = "blocked"
)

// Effect kinds understood by scheduled events.
const (
	EffectObjectiveDone    = "objective_done"
	EffectObjectiveBlocked = "objective_blocked"
	EffectRelation         = "relation"
	EffectGrant            = "grant"
	EffectDamage           = "damage"
	EffectHeal             = "heal"
)

// Effect is one consequence of a scheduled event firing. Target names the
// objective or character it acts on; Other is the second party of a relation
// change; Item and Amount carry the grant/relation/damage/heal payload.
type Effect struct {
	Kind   string `yaml:"kind"`
	Target string `yaml:"target"`
	Other  string `yaml:"other,omitempty"`
	Item   string `yaml:"item,omitempty"`
	Amount int    `yaml:"amount,omitempty"`
}

// SetRelation stores a's opinion of b as an absolute value. The store does
// not clamp; callers keep values in their chosen scale.
func (w *World) SetRelation(a, b string, value int, reason string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.relations[relKey{a: a, b: b}] = value
	line := fmt.Sprintf("%s now regards %s at %d", a, b, value)
	if reason != "" {
		line += " (" + reason + ")"
	}
	return success(map[string]any{"a": a, "b": b, "value": value}, line)
}

// ChangeRelation shifts a's opinion of b by delta.
func (w *World) ChangeRelation(a, b string, delta int, reason string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	k := relKey{a: a, b: b}
	w.relations[k] += delta
	line := fmt.Sprintf("%s's regard for %s shifts %+d to %d", a, b, delta, w.relations[k])
	if reason != "" {
		line += " (" + reason + ")"
	}
	return success(map[string]any{"a": a, "b": b, "delta": delta, "value": w.relations[k]}, line)
}

// GrantItem adds n of item to target's inventory, creating the counter at
// zero first.
func (w *World) GrantItem(target, item string, n int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.grantItemLocked(target, item, n)
}

func (w *World) grantItemLocked(target, item string, n int) Result {
	if w.inventory[target] == nil {
		w.inventory[target] = make(map[string]int)
	}
	w.inventory[target][item] += n
	count := w.inventory[target][item]
	return success(map[string]any{"target": target, "item": item, "count": count},
		fmt.Sprintf("%s receives %d× %s (now %d)", target, n, item, count))
}

// ItemCount reports how many of item target carries.
func (w *World) ItemCount(target, item string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inventory[target][item]
}

// ensureObjectiveLocked lists the objective as pending if it is not already
// known. Completing or blocking an unlisted objective goes through here.
func (w *World) ensureObjectiveLocked(name string) {
	if _, ok := w.objectiveStatus[name]; ok {
		return
	}
	w.objectives = append(w.objectives, name)
	w.objectiveStatus[name] = ObjectivePending
}

// AddObjective lists a new pending objective with an optional note.
func (w *World) AddObjective(name, note string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ensureObjectiveLocked(name)
	if note != "" {
		w.objectiveNotes[name] = note
	}
	return success(map[string]any{"objective": name, "status": w.objectiveStatus[name]},
		fmt.Sprintf("objective added: %s", name))
}

// CompleteObjective marks the objective done, listing it first if needed.
func (w *World) CompleteObjective(name, note string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.setObjectiveStatusLocked(name, ObjectiveDone, note)
}

// BlockObjective marks the objective blocked, listing it first if needed.
func (w *World) BlockObjective(name, note string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.setObjectiveStatusLocked(name, ObjectiveBlocked, note)
}

func (w *World) setObjectiveStatusLocked(name, status, note string) Result {
	w.ensureObjectiveLocked(name)
	w.objectiveStatus[name] = status
	if note != "" {
		w.objectiveNotes[name] = note
	}
	return success(map[string]any{"objective": name, "status": status},
		fmt.Sprintf("objective %s: %s", status, name))
}

// SetObjectivePosition pins an objective to a grid location.
func (w *World) SetObjectivePosition(name string, x, y int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ensureObjectiveLocked(name)
	w.objectivePos[name] = grid.Point{X: x, Y: y}
	return success(map[string]any{"objective": name, "x": x, "y": y},
		fmt.Sprintf("objective %s is at (%d,%d)", name, x, y))
}

// SetScene updates the current location description, listing any named
// objectives as pending in one call.
func (w *World) SetScene(location string, objectives ...string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.location = location
	for _, obj := range objectives {
		w.ensureObjectiveLocked(obj)
	}
	meta := map[string]any{"location": location}
	if len(objectives) > 0 {
		meta["objectives"] = append([]string(nil), objectives...)
	}
	return success(meta, fmt.Sprintf("scene: %s", location))
}

// SetWeather updates the current weather.
func (w *World) SetWeather(weather string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.weather = weather
	return success(map[string]any{"weather": weather},
		fmt.Sprintf("the weather turns %s", weather))
}

// SetTension updates the scene's tension descriptor.
func (w *World) SetTension(tension string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tension = tension
	return success(map[string]any{"tension": tension},
		fmt.Sprintf("tension: %s", tension))
}

// AddSceneDetail appends a free-form detail to the scene.
func (w *World) AddSceneDetail(detail string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sceneDetails = append(w.sceneDetails, detail)
	return success(map[string]any{"detail": detail},
		fmt.Sprintf("scene detail: %s", detail))
}

// AddMark records a named mark on the world (a rumor, a clue, a standing
// note). Re-marking a name overwrites its note.
func (w *World) AddMark(name, note string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.marks[name] = note
	return success(map[string]any{"mark": name, "note": note},
		fmt.Sprintf("mark: %s - %s", name, note))
}

// RegisterHiddenEnemy places an enemy on the grid already hidden. The sheet
// is created if missing, so a definition should usually come first.
func (w *World) RegisterHiddenEnemy(name string, x, y int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sheets.Ensure(name)
	w.positions[name] = grid.Point{X: x, Y: y}
	w.refreshBands(name)
	w.conditionsFor(name).Apply(condition.Hidden)
	return success(map[string]any{"name": name, "x": x, "y": y, "hidden": true},
		fmt.Sprintf("%s lurks unseen at (%d,%d)", name, x, y))
}

// ScheduleEvent inserts a timed event, keeping the list sorted by trigger
// time. Events sharing a trigger time fire in insertion order.
func (w *World) ScheduleEvent(name string, atMin int, note string, effects []Effect) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	ev := scheduledEvent{name: name, atMin: atMin, note: note, effects: append([]Effect(nil), effects...)}
	idx := sort.Search(len(w.events), func(i int) bool { return w.events[i].atMin > atMin })
	w.events = append(w.events, scheduledEvent{})
	copy(w.events[idx+1:], w.events[idx:])
	w.events[idx] = ev

	return success(map[string]any{"event": name, "at": clockString(atMin), "effects": len(ev.effects)},
		fmt.Sprintf("event scheduled: %s at %s", name, clockString(atMin)))
}

// AdvanceTime moves the clock forward and fires every scheduled event whose
// trigger time has passed, applying its effects in order.
func (w *World) AdvanceTime(minutes int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if minutes < 0 {
		return failure(ErrInvalidInput, map[string]any{"minutes": minutes},
			"time only moves forward")
	}
	w.timeMin += minutes
	trace := []string{fmt.Sprintf("time advances %d minutes to %s", minutes, clockString(w.timeMin))}

	var fired []string
	for len(w.events) > 0 && w.events[0].atMin <= w.timeMin {
		ev := w.events[0]
		w.events = w.events[1:]
		fired = append(fired, ev.name)
		line := fmt.Sprintf("event fires: %s", ev.name)
		if ev.note != "" {
			line += " - " + ev.note
		}
		trace = append(trace, line)
		for _, eff := range ev.effects {
			trace = append(trace, w.applyEffectLocked(ev.name, eff)...)
		}
	}

	meta := map[string]any{"time": clockString(w.timeMin), "time_min": w.timeMin}
	if fired != nil {
		meta["fired"] = fired
	}
	return success(meta, trace...)
}

// applyEffectLocked applies one event effect. Unknown kinds are reported in
// the trace and skipped; an event never aborts the clock.
func (w *World) applyEffectLocked(event string, eff Effect) []string {
	switch eff.Kind {
	case EffectObjectiveDone:
		return w.setObjectiveStatusLocked(eff.Target, ObjectiveDone, "").Trace
	case EffectObjectiveBlocked:
		return w.setObjectiveStatusLocked(eff.Target, ObjectiveBlocked, "").Trace
	case EffectRelation:
		k := relKey{a: eff.Target, b: eff.Other}
		w.relations[k] += eff.Amount
		return []string{fmt.Sprintf("%s's regard for %s shifts %+d to %d",
			eff.Target, eff.Other, eff.Amount, w.relations[k])}
	case EffectGrant:
		return w.grantItemLocked(eff.Target, eff.Item, eff.Amount).Trace
	case EffectDamage:
		return w.damageLocked(eff.Target, eff.Amount).Trace
	case EffectHeal:
		return w.healLocked(eff.Target, eff.Amount).Trace
	default:
		w.logger.Warn("unknown event effect kind",
			zap.String("event", event), zap.String("kind", eff.Kind))
		return []string{fmt.Sprintf("event %s: unknown effect kind %q skipped", event, eff.Kind)}
	}
}

// clockString renders minutes-since-midnight as HH:MM, wrapping at midnight.
func clockString(minutes int) string {
	m := minutes % (24 * 60)
	if m < 0 {
		m += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
