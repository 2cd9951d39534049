// Package encounter implements the authoritative world simulation engine:
// the ledger of characters, positions, relations, and objectives, plus the
// turn economy, combat resolution, and guard redirection built on top of it.
//
// Every mutating operation returns a Result instead of an error: gameplay
// failures (unknown names, spent resources, out-of-reach attacks) are
// ordinary values that the orchestrator branches on, and nothing raises a
// fault across the engine boundary.
package encounter

// Error kinds carried in Result.ErrorType. They follow the engine's failure
// taxonomy: not-found, resource-exhausted, precondition-failed, and
// invalid-input are all recoverable.
const (
	ErrNotFound          = "not_found"
	ErrPositionUnknown   = "position_unknown"
	ErrResourceExhausted = "resource_exhausted"
	ErrAlreadyUsed       = "already_used"
	ErrOutOfReach        = "out_of_reach"
	ErrWeaponNotFound    = "weapon_not_found"
	ErrWeaponNotOwned    = "weapon_not_owned"
	ErrNotInCombat       = "not_in_combat"
	ErrNoLivingActors    = "no_living_actors"
	ErrInvalidInput      = "invalid_input"
)

// Result is the uniform return value of every engine operation: an ordered
// human-readable trace plus structured metadata with an explicit success
// indicator.
type Result struct {
	// OK reports whether the operation succeeded.
	OK bool
	// ErrorType tags the failure kind when OK is false; empty on success.
	ErrorType string
	// Trace holds ordered human-readable lines describing what happened.
	Trace []string
	// Meta carries the structured key-value outcome for the orchestrator.
	Meta map[string]any
}

// success builds an OK Result with the given metadata and trace lines.
func success(meta map[string]any, trace ...string) Result {
	if meta == nil {
		meta = map[string]any{}
	}
	meta["ok"] = true
	return Result{OK: true, Trace: trace, Meta: meta}
}

// failure builds a failed Result tagged with errType.
func failure(errType string, meta map[string]any, trace ...string) Result {
	if meta == nil {
		meta = map[string]any{}
	}
	meta["ok"] = false
	meta["error_type"] = errType
	return Result{ErrorType: errType, Trace: trace, Meta: meta}
}
