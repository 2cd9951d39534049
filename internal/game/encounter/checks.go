package encounter

import (
	"fmt"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/dice"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/sheet"
)

// skillModifier computes name's bonus for a skill check: the governing
// ability modifier plus the proficiency bonus when the sheet is proficient.
func (w *World) skillModifier(name, skill string) (int, string, bool) {
	ability, ok := sheet.SkillAbility(skill)
	if !ok {
		return 0, "", false
	}
	s := w.sheets.Ensure(name)
	mod, _ := s.AbilityModifier(ability)
	if s.ProficientInSkill(skill) {
		mod += sheet.ProficiencyBonus(s.Level)
	}
	return mod, ability, true
}

// SkillCheck rolls a skill check for name against dc. Advantage is
// caller-asserted; conditions do not alter skill checks.
func (w *World) SkillCheck(name, skill string, dc int, advantage string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	adv, ok := dice.ParseAdvantage(advantage)
	if !ok {
		return failure(ErrInvalidInput, map[string]any{"advantage": advantage},
			fmt.Sprintf("unknown advantage %q", advantage))
	}
	mod, ability, ok := w.skillModifier(name, skill)
	if !ok {
		return failure(ErrInvalidInput, map[string]any{"skill": skill},
			fmt.Sprintf("unknown skill %q", skill))
	}

	check := w.roller.D20Check(dc, mod, adv)
	return success(map[string]any{
		"name":      name,
		"skill":     skill,
		"ability":   ability,
		"modifier":  mod,
		"roll":      check.Roll,
		"rolls":     []int{check.Rolls[0], check.Rolls[1]},
		"total":     check.Total,
		"dc":        dc,
		"advantage": string(adv),
		"success":   check.Success,
	}, fmt.Sprintf("%s %s check: %d%+d = %d vs DC %d - %s",
		name, skill, check.Roll, mod, check.Total, dc, passFail(check.Success)))
}

// SavingThrow rolls a saving throw for name with the given ability against dc.
func (w *World) SavingThrow(name, ability string, dc int, advantage string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	adv, ok := dice.ParseAdvantage(advantage)
	if !ok {
		return failure(ErrInvalidInput, map[string]any{"advantage": advantage},
			fmt.Sprintf("unknown advantage %q", advantage))
	}
	s := w.sheets.Ensure(name)
	mod, ok := s.AbilityModifier(ability)
	if !ok {
		return failure(ErrInvalidInput, map[string]any{"ability": ability},
			fmt.Sprintf("unknown ability %q", ability))
	}
	if s.ProficientInSave(ability) {
		mod += sheet.ProficiencyBonus(s.Level)
	}

	check := w.roller.D20Check(dc, mod, adv)
	return success(map[string]any{
		"name":      name,
		"ability":   ability,
		"modifier":  mod,
		"roll":      check.Roll,
		"rolls":     []int{check.Rolls[0], check.Rolls[1]},
		"total":     check.Total,
		"dc":        dc,
		"advantage": string(adv),
		"success":   check.Success,
	}, fmt.Sprintf("%s %s save: %d%+d = %d vs DC %d - %s",
		name, ability, check.Roll, mod, check.Total, dc, passFail(check.Success)))
}

// RollDice rolls an arbitrary dice expression. Ability placeholders resolve
// against actor's sheet; with an empty actor they are an input error.
func (w *World) RollDice(expr, actor string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	var resolver dice.AbilityResolver
	if actor != "" {
		resolver = w.abilityResolver(actor)
	}
	res, err := w.roller.RollExpr(expr, resolver)
	if err != nil {
		return failure(ErrInvalidInput, map[string]any{"expression": expr}, err.Error())
	}
	return success(map[string]any{
		"expression": expr,
		"dice":       append([]int(nil), res.Dice...),
		"modifier":   res.Modifier,
		"total":      res.Total(),
	}, res.String())
}

func passFail(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
