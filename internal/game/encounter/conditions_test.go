package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
)

func TestSetAndClearCondition(t *testing.T) {
	w := seededWorld(1)
	defineFighter(w, "Ash")

	require.True(t, w.SetCondition("Ash", condition.Prone).OK)
	assert.True(t, w.HasCondition("Ash", condition.Prone))

	require.True(t, w.ClearCondition("Ash", condition.Prone).OK)
	assert.False(t, w.HasCondition("Ash", condition.Prone))
}

func TestClearAbsentConditionSucceeds(t *testing.T) {
	w := seededWorld(1)
	res := w.ClearCondition("Ash", condition.Hidden)
	assert.True(t, res.OK)
}

func TestSetConditionUnknownTag(t *testing.T) {
	w := seededWorld(1)

	res := w.SetCondition("Ash", condition.Tag("cursed"))
	assert.False(t, res.OK)
	assert.Equal(t, ErrInvalidInput, res.ErrorType)
	assert.False(t, w.HasCondition("Ash", condition.Tag("cursed")))

	res = w.ClearCondition("Ash", condition.Tag("cursed"))
	assert.False(t, res.OK)
	assert.Equal(t, ErrInvalidInput, res.ErrorType)
}

func TestSetCoverAndBonus(t *testing.T) {
	w := seededWorld(1)

	require.True(t, w.SetCover("Ash", "half").OK)
	res := w.CoverBonus("Ash")
	require.True(t, res.OK)
	assert.Equal(t, "half", res.Meta["cover"])
	assert.Equal(t, 2, res.Meta["bonus"])
	assert.Equal(t, false, res.Meta["blocked"])

	require.True(t, w.SetCover("Ash", "three_quarters").OK)
	res = w.CoverBonus("Ash")
	assert.Equal(t, 5, res.Meta["bonus"])

	require.True(t, w.SetCover("Ash", "total").OK)
	res = w.CoverBonus("Ash")
	assert.Equal(t, 0, res.Meta["bonus"])
	assert.Equal(t, true, res.Meta["blocked"])
}

func TestCoverBonusDefaultsToNone(t *testing.T) {
	w := seededWorld(1)

	res := w.CoverBonus("Ash")
	require.True(t, res.OK)
	assert.Equal(t, "none", res.Meta["cover"])
	assert.Equal(t, 0, res.Meta["bonus"])
	assert.Equal(t, false, res.Meta["blocked"])
}

func TestSetCoverUnknownLevel(t *testing.T) {
	w := seededWorld(1)

	res := w.SetCover("Ash", "foxhole")
	assert.False(t, res.OK)
	assert.Equal(t, ErrInvalidInput, res.ErrorType)
}
