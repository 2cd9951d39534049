package encounter

import "fmt"

// Snapshot produces a nested, serializable view of the whole world for
// external consumption. It is a pure read: everything nested is a copy, and
// mutating the returned map never touches engine state.
func (w *World) Snapshot() map[string]any {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := map[string]any{
		"encounter_id": w.id.String(),
		"time":         clockString(w.timeMin),
		"time_min":     w.timeMin,
		"weather":      w.weather,
		"location":     w.location,
		"tension":      w.tension,
	}

	details := append([]string(nil), w.sceneDetails...)
	snap["scene_details"] = details

	marks := make(map[string]string, len(w.marks))
	for k, v := range w.marks {
		marks[k] = v
	}
	snap["marks"] = marks

	relations := make(map[string]int, len(w.relations))
	for k, v := range w.relations {
		relations[fmt.Sprintf("%s->%s", k.a, k.b)] = v
	}
	snap["relations"] = relations

	inventory := make(map[string]map[string]int, len(w.inventory))
	for owner, items := range w.inventory {
		inventory[owner] = copyIntMap(items)
	}
	snap["inventory"] = inventory

	characters := make(map[string]any, w.sheets.Len())
	for _, name := range w.sheets.Names() {
		s, _ := w.sheets.Get(name)
		tags := w.conditions[name].All()
		conds := make([]string, 0, len(tags))
		for _, t := range tags {
			conds = append(conds, string(t))
		}
		characters[name] = map[string]any{
			"level":  s.Level,
			"ac":     s.AC,
			"hp":     s.HP,
			"max_hp": s.MaxHP,
			"speed":  s.Speed,
			"reach":  s.Reach,
			"dead":   s.Dead(),
			"abilities": map[string]int{
				"STR": s.Abilities.Strength,
				"DEX": s.Abilities.Dexterity,
				"CON": s.Abilities.Constitution,
				"INT": s.Abilities.Intelligence,
				"WIS": s.Abilities.Wisdom,
				"CHA": s.Abilities.Charisma,
			},
			"conditions": conds,
		}
	}
	snap["characters"] = characters

	positions := make(map[string]any, len(w.positions))
	for name, p := range w.positions {
		positions[name] = map[string]int{"x": p.X, "y": p.Y}
	}
	snap["positions"] = positions

	objectives := make([]map[string]any, 0, len(w.objectives))
	for _, name := range w.objectives {
		obj := map[string]any{
			"name":   name,
			"status": w.objectiveStatus[name],
		}
		if note, ok := w.objectiveNotes[name]; ok {
			obj["note"] = note
		}
		if p, ok := w.objectivePos[name]; ok {
			obj["position"] = map[string]int{"x": p.X, "y": p.Y}
		}
		objectives = append(objectives, obj)
	}
	snap["objectives"] = objectives

	events := make([]map[string]any, 0, len(w.events))
	for _, ev := range w.events {
		events = append(events, map[string]any{
			"name": ev.name,
			"at":   clockString(ev.atMin),
			"note": ev.note,
		})
	}
	snap["events"] = events

	combat := map[string]any{
		"in_combat": w.inCombat,
		"round":     w.round,
		"turn_idx":  w.turnIdx,
		"order":     append([]string(nil), w.order...),
		"scores":    copyIntMap(w.scores),
	}
	turnStates := make(map[string]any, len(w.turns))
	for name, t := range w.turns {
		turnStates[name] = t.asMeta()
	}
	combat["turn_state"] = turnStates

	bands := make(map[string]string, len(w.bands))
	for k, b := range w.bands {
		bands[fmt.Sprintf("%s|%s", k.a, k.b)] = string(b)
	}
	combat["range_bands"] = bands

	guards := make([]map[string]string, 0, len(w.guards))
	for _, g := range w.guards {
		guards = append(guards, map[string]string{
			"protector": g.protector,
			"protected": g.protectee,
		})
	}
	combat["guards"] = guards
	snap["combat"] = combat

	return snap
}
