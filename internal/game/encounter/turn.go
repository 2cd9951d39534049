package encounter

import (
	"fmt"
	"math"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
)

// turnState is one actor's per-turn resource budget and stance flags.
//
// Invariant: within a turn the four budget fields only ever move toward
// "spent"; resetTurn is the only operation that replenishes them.
type turnState struct {
	MoveLeft          int
	ActionUsed        bool
	BonusUsed         bool
	ReactionAvailable bool
	Disengage         bool
	Dodge             bool
	HelpTarget        string
	Ready             string
}

// asMeta renders the turn state for result metadata and snapshots.
func (t *turnState) asMeta() map[string]any {
	return map[string]any{
		"move_left":          t.MoveLeft,
		"action_used":        t.ActionUsed,
		"bonus_used":         t.BonusUsed,
		"reaction_available": t.ReactionAvailable,
		"disengage":          t.Disengage,
		"dodge":              t.Dodge,
		"help_target":        t.HelpTarget,
		"ready":              t.Ready,
	}
}

// resetTurn replaces name's turn state with a fresh budget: full movement,
// action and bonus unspent, reaction available, stance flags cleared.
func (w *World) resetTurn(name string) *turnState {
	s := w.sheets.Ensure(name)
	t := &turnState{MoveLeft: s.Speed, ReactionAvailable: true}
	w.turns[name] = t
	return t
}

// ensureTurn returns name's current turn state, creating a fresh one when
// the actor has not acted yet this round.
func (w *World) ensureTurn(name string) *turnState {
	if t, ok := w.turns[name]; ok {
		return t
	}
	return w.resetTurn(name)
}

// ResetActorTurn resets only the named actor's turn tokens, independent of
// combat mode. This is the primitive the orchestrator uses for
// everyone-acts-once-per-round play outside strict initiative.
//
// Postcondition: the actor's budget is fully replenished and any transient
// dodge condition from their prior turn is cleared.
func (w *World) ResetActorTurn(name string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.conditionsFor(name).Remove(condition.Dodge)
	t := w.resetTurn(name)
	return success(
		map[string]any{"name": name, "state": t.asMeta()},
		fmt.Sprintf("%s readies for a new turn (movement %d, action and bonus available)", name, t.MoveLeft),
	)
}

// Action kinds accepted by UseAction.
const (
	ActionKindAction   = "action"
	ActionKindBonus    = "bonus"
	ActionKindReaction = "reaction"
)

// UseAction spends the named actor's action, bonus action, or reaction.
//
// Postcondition: a resource is never spent twice in the same turn window;
// the second attempt fails with ErrAlreadyUsed and changes nothing.
func (w *World) UseAction(name, kind string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.useActionLocked(name, kind)
}

// useActionLocked is UseAction without locking, for composition inside other
// operations that already hold the mutex.
func (w *World) useActionLocked(name, kind string) Result {
	t := w.ensureTurn(name)
	meta := map[string]any{"name": name, "kind": kind}
	switch kind {
	case ActionKindAction:
		if t.ActionUsed {
			return failure(ErrAlreadyUsed, meta, fmt.Sprintf("%s has already used their action this turn", name))
		}
		t.ActionUsed = true
	case ActionKindBonus:
		if t.BonusUsed {
			return failure(ErrAlreadyUsed, meta, fmt.Sprintf("%s has already used their bonus action this turn", name))
		}
		t.BonusUsed = true
	case ActionKindReaction:
		if !t.ReactionAvailable {
			return failure(ErrAlreadyUsed, meta, fmt.Sprintf("%s has no reaction left this turn", name))
		}
		t.ReactionAvailable = false
	default:
		return failure(ErrInvalidInput, meta, fmt.Sprintf("unknown action kind %q", kind))
	}
	meta["state"] = t.asMeta()
	return success(meta, fmt.Sprintf("%s uses their %s", name, kind))
}

// ConsumeMovement spends steps of the actor's movement budget. Fractional
// step counts are rounded up. When the request exceeds the remaining budget
// the budget is consumed entirely and the result reports the shortfall as a
// partial failure rather than silently moving the full distance.
//
// Postcondition: move_left only decreases; over-budget requests leave it 0.
func (w *World) ConsumeMovement(name string, steps float64) Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.consumeMovementLocked(name, steps)
}

// consumeMovementLocked is ConsumeMovement without locking.
func (w *World) consumeMovementLocked(name string, steps float64) Result {
	t := w.ensureTurn(name)
	need := int(math.Ceil(steps))
	if need < 0 {
		need = 0
	}
	meta := map[string]any{"name": name, "requested": need}
	if need > t.MoveLeft {
		consumed := t.MoveLeft
		t.MoveLeft = 0
		meta["consumed"] = consumed
		meta["move_left"] = 0
		return failure(ErrResourceExhausted, meta,
			fmt.Sprintf("%s needs %d steps but had only %d movement left; budget exhausted", name, need, consumed))
	}
	t.MoveLeft -= need
	meta["consumed"] = need
	meta["move_left"] = t.MoveLeft
	return success(meta, fmt.Sprintf("%s spends %d movement (%d left)", name, need, t.MoveLeft))
}

// Dodge spends the actor's action to take the dodge stance: attacks against
// them suffer disadvantage until their next turn reset.
func (w *World) Dodge(name string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	res := w.useActionLocked(name, ActionKindAction)
	if !res.OK {
		return res
	}
	w.turns[name].Dodge = true
	w.conditionsFor(name).Apply(condition.Dodge)
	return success(map[string]any{"name": name, "dodge": true},
		fmt.Sprintf("%s takes the dodge stance", name))
}

// Disengage spends the actor's action so that leaving engaged range this
// turn provokes no opportunity attack.
func (w *World) Disengage(name string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	res := w.useActionLocked(name, ActionKindAction)
	if !res.OK {
		return res
	}
	w.turns[name].Disengage = true
	return success(map[string]any{"name": name, "disengage": true},
		fmt.Sprintf("%s disengages and can withdraw safely this turn", name))
}

// Help spends the actor's action to aid target, recording the assist on the
// helper's turn state for the orchestrator to consume.
func (w *World) Help(name, target string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	res := w.useActionLocked(name, ActionKindAction)
	if !res.OK {
		return res
	}
	w.turns[name].HelpTarget = target
	return success(map[string]any{"name": name, "help_target": target},
		fmt.Sprintf("%s moves to help %s", name, target))
}

// Ready spends the actor's action to ready a described reaction.
func (w *World) Ready(name, note string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	res := w.useActionLocked(name, ActionKindAction)
	if !res.OK {
		return res
	}
	w.turns[name].Ready = note
	return success(map[string]any{"name": name, "ready": note},
		fmt.Sprintf("%s readies: %s", name, note))
}

// TurnState returns the actor's current turn state, or a not-found failure
// if the actor has no state this round.
func (w *World) TurnState(name string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.turns[name]
	if !ok {
		return failure(ErrNotFound, map[string]any{"name": name},
			fmt.Sprintf("%s has no turn state yet", name))
	}
	return success(map[string]any{"name": name, "state": t.asMeta()},
		fmt.Sprintf("%s turn state", name))
}
