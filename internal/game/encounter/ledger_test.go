package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
)

func TestRelationsAreDirected(t *testing.T) {
	w := seededWorld(1)
	w.SetRelation("Ash", "Brin", 40, "saved her life")
	w.SetRelation("Brin", "Ash", -10, "still suspicious")

	snap := w.Snapshot()
	relations := snap["relations"].(map[string]int)
	assert.Equal(t, 40, relations["Ash->Brin"])
	assert.Equal(t, -10, relations["Brin->Ash"])
}

func TestChangeRelationAccumulates(t *testing.T) {
	w := seededWorld(1)
	w.ChangeRelation("Ash", "Brin", 10, "")
	res := w.ChangeRelation("Ash", "Brin", -25, "an insult")
	require.True(t, res.OK)
	assert.Equal(t, -15, res.Meta["value"])
}

func TestGrantItemAndCount(t *testing.T) {
	w := seededWorld(1)
	res := w.GrantItem("Ash", "torch", 3)
	require.True(t, res.OK)
	assert.Equal(t, 3, res.Meta["count"])

	w.GrantItem("Ash", "torch", 2)
	assert.Equal(t, 5, w.ItemCount("Ash", "torch"))
	assert.Equal(t, 0, w.ItemCount("Ash", "rope"))
	assert.Equal(t, 0, w.ItemCount("Brin", "torch"))
}

func TestObjectiveLifecycle(t *testing.T) {
	w := seededWorld(1)
	require.True(t, w.AddObjective("find the ledger", "it names the smugglers").OK)

	res := w.CompleteObjective("find the ledger", "")
	require.True(t, res.OK)
	assert.Equal(t, ObjectiveDone, res.Meta["status"])

	res = w.BlockObjective("cross the bridge", "the bridge is out")
	require.True(t, res.OK)
	assert.Equal(t, ObjectiveBlocked, res.Meta["status"])

	snap := w.Snapshot()
	objectives := snap["objectives"].([]map[string]any)
	require.Len(t, objectives, 2)
	assert.Equal(t, "find the ledger", objectives[0]["name"])
	assert.Equal(t, ObjectiveDone, objectives[0]["status"])
	assert.Equal(t, "it names the smugglers", objectives[0]["note"])
	assert.Equal(t, "cross the bridge", objectives[1]["name"])
	assert.Equal(t, ObjectiveBlocked, objectives[1]["status"])
}

func TestCompleteUnlistedObjectiveAddsIt(t *testing.T) {
	w := seededWorld(1)
	res := w.CompleteObjective("improvise", "")
	require.True(t, res.OK)

	snap := w.Snapshot()
	objectives := snap["objectives"].([]map[string]any)
	require.Len(t, objectives, 1)
	assert.Equal(t, ObjectiveDone, objectives[0]["status"])
}

func TestSetObjectivePosition(t *testing.T) {
	w := seededWorld(1)
	require.True(t, w.SetObjectivePosition("the shrine", 4, -2).OK)

	snap := w.Snapshot()
	objectives := snap["objectives"].([]map[string]any)
	require.Len(t, objectives, 1)
	pos := objectives[0]["position"].(map[string]int)
	assert.Equal(t, 4, pos["x"])
	assert.Equal(t, -2, pos["y"])
	assert.Equal(t, ObjectivePending, objectives[0]["status"])
}

func TestSceneStateWrites(t *testing.T) {
	w := seededWorld(1)
	w.SetScene("the flooded market")
	w.SetWeather("driving rain")
	w.SetTension("uneasy")
	w.AddSceneDetail("stalls abandoned mid-trade")
	w.AddSceneDetail("a bell tolls somewhere north")
	w.AddMark("bell", "tolls every quarter hour")
	w.AddMark("bell", "stopped at the third toll")

	snap := w.Snapshot()
	assert.Equal(t, "the flooded market", snap["location"])
	assert.Equal(t, "driving rain", snap["weather"])
	assert.Equal(t, "uneasy", snap["tension"])
	assert.Equal(t, []string{"stalls abandoned mid-trade", "a bell tolls somewhere north"},
		snap["scene_details"])
	marks := snap["marks"].(map[string]string)
	assert.Equal(t, "stopped at the third toll", marks["bell"])
}

func TestSetSceneListsObjectives(t *testing.T) {
	w := seededWorld(1)
	res := w.SetScene("the old mill", "search the loft", "find the miller")
	require.True(t, res.OK)
	assert.Equal(t, []string{"search the loft", "find the miller"}, res.Meta["objectives"])

	snap := w.Snapshot()
	objectives := snap["objectives"].([]map[string]any)
	require.Len(t, objectives, 2)
	assert.Equal(t, ObjectivePending, objectives[0]["status"])
	assert.Equal(t, ObjectivePending, objectives[1]["status"])
}

func TestRegisterHiddenEnemy(t *testing.T) {
	w := seededWorld(1)
	defineFighter(w, "Ash")
	w.SetPosition("Ash", 0, 0)

	res := w.RegisterHiddenEnemy("Skulker", 3, 0)
	require.True(t, res.OK)
	assert.True(t, w.HasCondition("Skulker", condition.Hidden))
	assert.Equal(t, []int{3, 0}, w.GetPosition("Skulker").Meta["position"])
	// Placement refreshed the band cache against everyone positioned.
	assert.Equal(t, "near", w.RangeBand("Ash", "Skulker").Meta["band"])
}

func TestAdvanceTimeRejectsNegative(t *testing.T) {
	w := seededWorld(1)
	res := w.AdvanceTime(-5)
	assert.False(t, res.OK)
	assert.Equal(t, ErrInvalidInput, res.ErrorType)
	assert.Equal(t, "08:00", w.Snapshot()["time"])
}

func TestAdvanceTimeMovesClock(t *testing.T) {
	w := seededWorld(1)
	res := w.AdvanceTime(95)
	require.True(t, res.OK)
	assert.Equal(t, "09:35", res.Meta["time"])
	_, anyFired := res.Meta["fired"]
	assert.False(t, anyFired)
}

func TestClockWrapsAtMidnight(t *testing.T) {
	w := seededWorld(1)
	w.AdvanceTime(17 * 60) // 08:00 + 17h = 01:00 next day
	assert.Equal(t, "01:00", w.Snapshot()["time"])
}

func TestScheduledEventsFireInOrder(t *testing.T) {
	w := seededWorld(1)
	// Scheduled out of order; the patrol is due first.
	w.ScheduleEvent("reinforcements", 10*60, "", nil)
	w.ScheduleEvent("patrol passes", 9*60, "two guards", nil)

	res := w.AdvanceTime(3 * 60)
	require.True(t, res.OK)
	assert.Equal(t, []string{"patrol passes", "reinforcements"}, res.Meta["fired"])

	// Fired events are gone.
	assert.Empty(t, w.Snapshot()["events"])
}

func TestScheduledEventFiresOnce(t *testing.T) {
	w := seededWorld(1)
	w.ScheduleEvent("dawn bell", 9*60, "", nil)

	res := w.AdvanceTime(2 * 60)
	assert.Equal(t, []string{"dawn bell"}, res.Meta["fired"])

	res = w.AdvanceTime(60)
	_, anyFired := res.Meta["fired"]
	assert.False(t, anyFired)
}

func TestSameTimeEventsKeepInsertionOrder(t *testing.T) {
	w := seededWorld(1)
	w.ScheduleEvent("first", 9*60, "", nil)
	w.ScheduleEvent("second", 9*60, "", nil)

	res := w.AdvanceTime(60)
	assert.Equal(t, []string{"first", "second"}, res.Meta["fired"])
}

func TestEventEffectsApply(t *testing.T) {
	w := seededWorld(1)
	defineFighter(w, "Ash")
	w.AddObjective("hold the gate", "")

	w.ScheduleEvent("the gate falls", 9*60, "", []Effect{
		{Kind: EffectObjectiveBlocked, Target: "hold the gate"},
		{Kind: EffectRelation, Target: "Ash", Other: "Brin", Amount: -20},
		{Kind: EffectGrant, Target: "Ash", Item: "gate key", Amount: 1},
		{Kind: EffectDamage, Target: "Ash", Amount: 7},
	})

	res := w.AdvanceTime(60)
	require.True(t, res.OK)

	snap := w.Snapshot()
	objectives := snap["objectives"].([]map[string]any)
	assert.Equal(t, ObjectiveBlocked, objectives[0]["status"])
	assert.Equal(t, -20, snap["relations"].(map[string]int)["Ash->Brin"])
	assert.Equal(t, 1, w.ItemCount("Ash", "gate key"))
	assert.Equal(t, 13, hpOf(t, w, "Ash"))
}

func TestEventHealEffect(t *testing.T) {
	w := seededWorld(1)
	defineFighter(w, "Ash")
	w.Damage("Ash", 10)

	w.ScheduleEvent("the medic arrives", 9*60, "", []Effect{
		{Kind: EffectHeal, Target: "Ash", Amount: 4},
	})
	w.AdvanceTime(60)
	assert.Equal(t, 14, hpOf(t, w, "Ash"))
}

func TestUnknownEffectKindSkipped(t *testing.T) {
	w := seededWorld(1)
	w.ScheduleEvent("strange omen", 9*60, "", []Effect{
		{Kind: "eclipse", Target: "sky"},
	})

	res := w.AdvanceTime(60)
	require.True(t, res.OK)
	assert.Equal(t, []string{"strange omen"}, res.Meta["fired"])
	assert.Contains(t, res.Trace, `event strange omen: unknown effect kind "eclipse" skipped`)
}
