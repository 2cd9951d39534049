package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
)

func TestSnapshotShape(t *testing.T) {
	w := seededWorld(1)
	defineFighter(w, "Ash")
	defineFighter(w, "Brin")
	w.SetPosition("Ash", 0, 0)
	w.SetPosition("Brin", 3, 0)
	w.GrantItem("Ash", "torch", 2)
	w.SetCondition("Brin", condition.Prone)
	require.True(t, w.RollInitiative().OK)

	snap := w.Snapshot()
	assert.Equal(t, w.ID().String(), snap["encounter_id"])

	characters := snap["characters"].(map[string]any)
	ash := characters["Ash"].(map[string]any)
	assert.Equal(t, 3, ash["level"])
	assert.Equal(t, 12, ash["ac"])
	assert.Equal(t, 20, ash["hp"])
	assert.Equal(t, false, ash["dead"])
	assert.Equal(t, 16, ash["abilities"].(map[string]int)["STR"])

	brin := characters["Brin"].(map[string]any)
	assert.Equal(t, []string{"prone"}, brin["conditions"])

	positions := snap["positions"].(map[string]any)
	assert.Equal(t, map[string]int{"x": 3, "y": 0}, positions["Brin"])

	inventory := snap["inventory"].(map[string]map[string]int)
	assert.Equal(t, 2, inventory["Ash"]["torch"])

	combat := snap["combat"].(map[string]any)
	assert.Equal(t, true, combat["in_combat"])
	assert.Equal(t, 1, combat["round"])
	order := combat["order"].([]string)
	assert.Len(t, order, 2)
	scores := combat["scores"].(map[string]int)
	assert.Contains(t, scores, "Ash")
	assert.Contains(t, scores, "Brin")

	bands := combat["range_bands"].(map[string]string)
	assert.Equal(t, "near", bands["Ash|Brin"])

	turnStates := combat["turn_state"].(map[string]any)
	first := turnStates[order[0]].(map[string]any)
	assert.Equal(t, true, first["reaction_available"])
}

func TestSnapshotIsPureCopy(t *testing.T) {
	w := seededWorld(1)
	defineFighter(w, "Ash")
	w.SetPosition("Ash", 1, 1)
	w.GrantItem("Ash", "torch", 2)
	w.AddMark("door", "locked")
	w.SetRelation("Ash", "Brin", 10, "")
	w.AddSceneDetail("dust everywhere")

	snap := w.Snapshot()
	snap["weather"] = "hail"
	snap["marks"].(map[string]string)["door"] = "open"
	snap["relations"].(map[string]int)["Ash->Brin"] = -99
	snap["inventory"].(map[string]map[string]int)["Ash"]["torch"] = 0
	snap["positions"].(map[string]any)["Ash"].(map[string]int)["x"] = 50
	snap["scene_details"].([]string)[0] = "spotless"
	snap["characters"].(map[string]any)["Ash"].(map[string]any)["hp"] = 1

	fresh := w.Snapshot()
	assert.Equal(t, "sunny", fresh["weather"])
	assert.Equal(t, "locked", fresh["marks"].(map[string]string)["door"])
	assert.Equal(t, 10, fresh["relations"].(map[string]int)["Ash->Brin"])
	assert.Equal(t, 2, w.ItemCount("Ash", "torch"))
	assert.Equal(t, []int{1, 1}, w.GetPosition("Ash").Meta["position"])
	assert.Equal(t, []string{"dust everywhere"}, fresh["scene_details"])
	assert.Equal(t, 20, hpOf(t, w, "Ash"))
}

func TestSnapshotEventsAndClock(t *testing.T) {
	w := seededWorld(1)
	w.ScheduleEvent("patrol", 9*60+30, "two guards", nil)

	snap := w.Snapshot()
	assert.Equal(t, "08:00", snap["time"])
	assert.Equal(t, 8*60, snap["time_min"])

	events := snap["events"].([]map[string]any)
	require.Len(t, events, 1)
	assert.Equal(t, "patrol", events[0]["name"])
	assert.Equal(t, "09:30", events[0]["at"])
	assert.Equal(t, "two guards", events[0]["note"])
}
