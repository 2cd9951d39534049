package encounter

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/sheet"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/weapon"
)

// DefineCharacter upserts a character stat block. The operation is
// idempotent; redefining an existing character resets current HP to max,
// mirroring "sheet defined/updated" rather than "healed".
//
// Postcondition: the character is addressable by every other operation.
func (w *World) DefineCharacter(def sheet.Definition) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	if def.Name == "" {
		return failure(ErrInvalidInput, nil, "character name must not be empty")
	}
	s := w.sheets.Define(def)
	w.logger.Debug("character defined",
		zap.String("name", s.Name), zap.Int("level", s.Level), zap.Int("max_hp", s.MaxHP))
	return success(map[string]any{
		"name":   s.Name,
		"level":  s.Level,
		"ac":     s.AC,
		"hp":     s.HP,
		"max_hp": s.MaxHP,
		"speed":  s.Speed,
		"reach":  s.Reach,
	}, fmt.Sprintf("%s's sheet set: level %d, AC %d, HP %d/%d", s.Name, s.Level, s.AC, s.HP, s.MaxHP))
}

// StatBlock returns a read-only view of the named character's sheet, or a
// not-found failure.
func (w *World) StatBlock(name string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.sheets.Get(name)
	if !ok {
		return failure(ErrNotFound, map[string]any{"name": name},
			fmt.Sprintf("no sheet defined for %s", name))
	}
	skills := s.ProficientSkills()
	saves := s.ProficientSaves()
	sort.Strings(skills)
	sort.Strings(saves)
	return success(map[string]any{
		"name":              s.Name,
		"level":             s.Level,
		"ac":                s.AC,
		"hp":                s.HP,
		"max_hp":            s.MaxHP,
		"speed":             s.Speed,
		"reach":             s.Reach,
		"proficiency_bonus": sheet.ProficiencyBonus(s.Level),
		"proficient_skills": skills,
		"proficient_saves":  saves,
		"dead":              s.Dead(),
		"abilities": map[string]int{
			"STR": s.Abilities.Strength,
			"DEX": s.Abilities.Dexterity,
			"CON": s.Abilities.Constitution,
			"INT": s.Abilities.Intelligence,
			"WIS": s.Abilities.Wisdom,
			"CHA": s.Abilities.Charisma,
		},
	}, fmt.Sprintf("%s: level %d, AC %d, HP %d/%d", s.Name, s.Level, s.AC, s.HP, s.MaxHP))
}

// Damage applies amount damage to name, flooring HP at 0. Undefined names
// get a zeroed sheet first (the permissive demo policy).
func (w *World) Damage(name string, amount int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.damageLocked(name, amount)
}

// damageLocked is Damage without locking.
func (w *World) damageLocked(name string, amount int) Result {
	before := 0
	if s, ok := w.sheets.Get(name); ok {
		before = s.HP
	}
	out := w.sheets.ApplyDamage(name, amount)
	trace := fmt.Sprintf("%s takes %d damage; HP %d → %d", name, max(amount, 0), before, out.HP)
	if out.Dead {
		trace += " - they fall"
	}
	return success(map[string]any{
		"name":      name,
		"amount":    max(amount, 0),
		"hp_before": before,
		"hp":        out.HP,
		"dead":      out.Dead,
	}, trace)
}

// Heal restores amount HP to name, capping at max HP. Undefined names get a
// zeroed sheet first (whose max HP of 0 makes the heal a no-op).
func (w *World) Heal(name string, amount int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.healLocked(name, amount)
}

// healLocked is Heal without locking.
func (w *World) healLocked(name string, amount int) Result {
	before := 0
	if s, ok := w.sheets.Get(name); ok {
		before = s.HP
	}
	hp := w.sheets.ApplyHeal(name, amount)
	return success(map[string]any{
		"name":      name,
		"amount":    max(amount, 0),
		"hp_before": before,
		"hp":        hp,
	}, fmt.Sprintf("%s recovers %d HP; HP %d → %d", name, max(amount, 0), before, hp))
}

// DefineWeapons upserts a batch of weapon definitions into the global table.
// Invalid definitions are reported per ID without aborting the batch.
func (w *World) DefineWeapons(defs ...*weapon.Def) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	var registered []string
	var rejected []string
	var trace []string
	for _, def := range defs {
		if err := w.weapons.Register(def); err != nil {
			rejected = append(rejected, def.ID)
			trace = append(trace, fmt.Sprintf("rejected weapon %q: %v", def.ID, err))
			continue
		}
		registered = append(registered, def.ID)
		trace = append(trace, fmt.Sprintf("weapon %q: reach %d, %s, %s", def.ID, def.ReachSteps, def.Ability, def.DamageExpr))
	}
	if len(registered) == 0 && len(rejected) > 0 {
		return failure(ErrInvalidInput, map[string]any{"rejected": rejected}, trace...)
	}
	return success(map[string]any{"registered": registered, "rejected": rejected}, trace...)
}
