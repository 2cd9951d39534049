package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// guardedTrio sets up attacker Cole with a longsword, defender Brin, and Ash
// declared as Brin's guard.
func guardedTrio(w *World) {
	defineFighter(w, "Ash")
	defineFighter(w, "Brin")
	defineFighter(w, "Cole")
	w.DefineWeapons(testWeapons()...)
	w.GrantItem("Cole", "longsword", 1)
	w.SetPosition("Ash", 1, 0)
	w.SetPosition("Brin", 0, 0)
	w.SetPosition("Cole", 1, 1)
	w.SetGuard("Ash", "Brin")
}

func TestGuardRedirectsAttack(t *testing.T) {
	w := scriptedWorld(15, 0, 4)
	guardedTrio(w)

	res := w.AttackWithWeapon("Cole", "Brin", "longsword")
	require.True(t, res.OK)
	assert.Equal(t, "Ash", res.Meta["defender"])

	guard, ok := res.Meta["guard"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ash", guard["protector"])
	assert.Equal(t, "Brin", guard["protected"])

	// The intercept consumed Ash's reaction and the hit landed on Ash.
	state := w.TurnState("Ash")
	require.True(t, state.OK)
	assert.Equal(t, false, state.Meta["state"].(map[string]any)["reaction_available"])
	assert.Less(t, hpOf(t, w, "Ash"), 20)
	assert.Equal(t, 20, hpOf(t, w, "Brin"))
}

func TestGuardSpentReactionDoesNotRedirect(t *testing.T) {
	w := seededWorld(1)
	guardedTrio(w)
	require.True(t, w.UseAction("Ash", ActionKindReaction).OK)

	res := w.AttackWithWeapon("Cole", "Brin", "longsword")
	assert.Equal(t, "Brin", res.Meta["defender"])
	_, redirected := res.Meta["guard"]
	assert.False(t, redirected)
	// Cole stands 2 steps from Brin, so without the intercept the swing
	// falls short.
	assert.False(t, res.OK)
	assert.Equal(t, ErrOutOfReach, res.ErrorType)
}

func TestGuardNonAdjacentProtectorIneligible(t *testing.T) {
	w := seededWorld(1)
	guardedTrio(w)
	w.SetPosition("Ash", 5, 5)

	res := w.AttackWithWeapon("Cole", "Brin", "longsword")
	assert.Equal(t, "Brin", res.Meta["defender"])
	_, redirected := res.Meta["guard"]
	assert.False(t, redirected)
}

func TestGuardDeadProtectorIneligible(t *testing.T) {
	w := seededWorld(1)
	guardedTrio(w)
	w.Damage("Ash", 100)

	res := w.AttackWithWeapon("Cole", "Brin", "longsword")
	assert.Equal(t, "Brin", res.Meta["defender"])
}

func TestGuardClosestProtectorWins(t *testing.T) {
	w := scriptedWorld(15, 0, 3)
	defineFighter(w, "Ash")
	defineFighter(w, "Brin")
	defineFighter(w, "Cole")
	defineFighter(w, "Dara")
	w.DefineWeapons(testWeapons()...)
	w.GrantItem("Cole", "shortbow", 1)
	w.SetPosition("Brin", 0, 0)
	w.SetPosition("Ash", 1, 0)
	w.SetPosition("Dara", -1, 0)
	w.SetPosition("Cole", 10, 0)
	w.SetGuard("Dara", "Brin")
	w.SetGuard("Ash", "Brin")

	// Ash stands 9 steps from the archer, Dara 11; the closer guard steps in.
	res := w.AttackWithWeapon("Cole", "Brin", "shortbow")
	require.True(t, res.OK)
	assert.Equal(t, "Ash", res.Meta["defender"])
}

func TestGuardEquidistantTieKeepsDeclarationOrder(t *testing.T) {
	w := scriptedWorld(15, 0, 3)
	defineFighter(w, "Ash")
	defineFighter(w, "Brin")
	defineFighter(w, "Cole")
	defineFighter(w, "Dara")
	w.DefineWeapons(testWeapons()...)
	w.GrantItem("Cole", "shortbow", 1)
	w.SetPosition("Brin", 0, 0)
	w.SetPosition("Ash", 0, 1)
	w.SetPosition("Dara", 1, 0)
	w.SetPosition("Cole", 5, 5)
	// Both guards stand 9 steps from the archer; Dara declared first.
	w.SetGuard("Dara", "Brin")
	w.SetGuard("Ash", "Brin")

	res := w.AttackWithWeapon("Cole", "Brin", "shortbow")
	require.True(t, res.OK)
	assert.Equal(t, "Dara", res.Meta["defender"])
}

func TestGuardAttackerCannotInterceptThemselves(t *testing.T) {
	w := scriptedWorld(15, 0, 3)
	defineFighter(w, "Ash")
	defineFighter(w, "Brin")
	w.DefineWeapons(testWeapons()...)
	w.GrantItem("Ash", "longsword", 1)
	w.SetPosition("Ash", 1, 0)
	w.SetPosition("Brin", 0, 0)
	w.SetGuard("Ash", "Brin")

	res := w.AttackWithWeapon("Ash", "Brin", "longsword")
	require.True(t, res.OK)
	assert.Equal(t, "Brin", res.Meta["defender"])
}

func TestSetGuardRedeclareMovesGuard(t *testing.T) {
	w := seededWorld(1)
	res := w.SetGuard("Ash", "Brin")
	require.True(t, res.OK)
	res = w.SetGuard("Ash", "Cole")
	require.True(t, res.OK)
	assert.Equal(t, "Cole", res.Meta["protected"])

	snap := w.Snapshot()
	combat := snap["combat"].(map[string]any)
	guards := combat["guards"].([]map[string]string)
	require.Len(t, guards, 1)
	assert.Equal(t, "Cole", guards[0]["protected"])
}

func TestClearGuard(t *testing.T) {
	w := seededWorld(1)
	w.SetGuard("Ash", "Brin")
	require.True(t, w.ClearGuard("Ash").OK)

	res := w.ClearGuard("Ash")
	assert.False(t, res.OK)
	assert.Equal(t, ErrNotFound, res.ErrorType)
}
