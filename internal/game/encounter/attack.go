package encounter

import (
	"fmt"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/dice"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/grid"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/sheet"
)

// AttackParams carries the caller-supplied fields for a simple (non-weapon)
// attack. Zero values fall back to an unarmed STR strike.
type AttackParams struct {
	Attacker string
	Defender string
	// Ability is the governing ability for the attack roll ("STR".."CHA");
	// empty means STR.
	Ability string
	// Proficient adds the attacker's proficiency bonus to the attack roll.
	Proficient bool
	// TargetAC overrides the defender's armor class when non-nil.
	TargetAC *int
	// DamageExpr is the damage dice expression; empty means "1d4+STR".
	// Ability placeholders resolve against the attacker's modifiers.
	DamageExpr string
	// Advantage is the caller-asserted advantage state; it combines with
	// the advantage implied by conditions.
	Advantage string
	// AutoMove lets the attacker spend remaining movement to close the
	// reach shortfall before the attack is rolled.
	AutoMove bool
}

// Attack resolves a simple attack from params.Attacker against
// params.Defender. If auto-move is requested and reach is insufficient, the
// attacker first walks toward the defender up to the shortfall or their
// remaining movement, whichever is smaller, and reach is re-checked. An
// attack still out of reach is a miss-like failure tagged reach_ok=false
// with no attack roll performed; movement already spent stays spent.
func (w *World) Attack(params AttackParams) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	ability := params.Ability
	if ability == "" {
		ability = sheet.STR
	}
	damageExpr := params.DamageExpr
	if damageExpr == "" {
		damageExpr = "1d4+STR"
	}
	adv, ok := dice.ParseAdvantage(params.Advantage)
	if !ok {
		return failure(ErrInvalidInput, map[string]any{"advantage": params.Advantage},
			fmt.Sprintf("unknown advantage %q", params.Advantage))
	}
	if _, ok := sheet.DefaultAbilities().Score(ability); !ok {
		return failure(ErrInvalidInput, map[string]any{"ability": ability},
			fmt.Sprintf("unknown ability %q", ability))
	}

	attacker := w.sheets.Ensure(params.Attacker)
	meta := map[string]any{
		"attacker": params.Attacker,
		"defender": params.Defender,
		"ability":  ability,
	}
	var trace []string

	attackerPos, ok := w.positions[params.Attacker]
	if !ok {
		return failure(ErrPositionUnknown, meta,
			fmt.Sprintf("%s's position is unknown; cannot attack", params.Attacker))
	}
	defenderPos, ok := w.positions[params.Defender]
	if !ok {
		return failure(ErrPositionUnknown, meta,
			fmt.Sprintf("%s's position is unknown; cannot be attacked", params.Defender))
	}

	dist := grid.Distance(attackerPos, defenderPos)
	reach := attacker.Reach
	if dist > reach && params.AutoMove {
		shortfall := dist - reach
		budget := w.ensureTurn(params.Attacker).MoveLeft
		moved := w.moveTowardLocked(params.Attacker, defenderPos, min(shortfall, budget))
		if moved > 0 {
			attackerPos = w.positions[params.Attacker]
			dist = grid.Distance(attackerPos, defenderPos)
			meta["auto_moved"] = moved
			trace = append(trace, fmt.Sprintf("%s closes %d steps toward %s", params.Attacker, moved, params.Defender))
		}
	}
	if dist > reach {
		meta["reach_ok"] = false
		meta["hit"] = false
		meta["distance"] = dist
		meta["reach"] = reach
		trace = append(trace, fmt.Sprintf("%s cannot reach %s (%d steps away, reach %d)",
			params.Attacker, params.Defender, dist, reach))
		return failure(ErrOutOfReach, meta, trace...)
	}
	meta["reach_ok"] = true

	return w.rollAttackLocked(rollAttackArgs{
		attacker:   params.Attacker,
		defender:   params.Defender,
		ability:    ability,
		proficient: params.Proficient,
		targetAC:   params.TargetAC,
		damageExpr: damageExpr,
		advParam:   adv,
	}, meta, trace)
}

// moveTowardLocked walks name up to steps grid steps toward target,
// consuming movement budget and refreshing bands. It mirrors MoveTowards
// without the result plumbing and returns the steps actually taken.
func (w *World) moveTowardLocked(name string, target grid.Point, steps int) int {
	pos, ok := w.positions[name]
	if !ok || steps <= 0 {
		return 0
	}
	t := w.ensureTurn(name)
	allowed := min(steps, t.MoveLeft, grid.Distance(pos, target))
	if allowed <= 0 {
		return 0
	}
	engagedBefore := w.engagedWith(name)
	for i := 0; i < allowed; i++ {
		pos = grid.StepToward(pos, target)
	}
	w.positions[name] = pos
	t.MoveLeft -= allowed
	w.refreshBands(name)
	if !t.Disengage {
		for _, other := range engagedBefore {
			if band, ok := w.bandBetween(name, other); ok && band != grid.BandEngaged && w.alive(other) {
				w.enqueueTrigger("opportunity_attack", map[string]any{
					"attacker": other,
					"target":   name,
				})
			}
		}
	}
	return allowed
}

// rollAttackArgs bundles the resolved inputs shared by simple and weapon
// attacks once reach and redirection are settled.
type rollAttackArgs struct {
	attacker   string
	defender   string
	ability    string
	proficient bool
	targetAC   *int
	damageExpr string
	advParam   dice.Advantage
}

// advantageNet converts a caller-asserted advantage state to its net
// contribution.
func advantageNet(adv dice.Advantage) int {
	switch adv {
	case dice.AdvantageAdvantage:
		return 1
	case dice.AdvantageDisadvantage:
		return -1
	default:
		return 0
	}
}

// rollAttackLocked performs the attack roll and, on a hit, the damage roll
// and application. Net advantage folds the caller-asserted state together
// with conditions: attacker hidden +1, defender prone +1, defender dodging -1.
func (w *World) rollAttackLocked(args rollAttackArgs, meta map[string]any, trace []string) Result {
	attacker := w.sheets.Ensure(args.attacker)
	defender := w.sheets.Ensure(args.defender)

	net := condition.NetAdvantage(w.conditions[args.attacker], w.conditions[args.defender]) +
		advantageNet(args.advParam)
	adv := dice.FromNet(net)

	ac := defender.AC
	if args.targetAC != nil {
		ac = *args.targetAC
	}

	mod, _ := attacker.AbilityModifier(args.ability)
	if args.proficient {
		mod += sheet.ProficiencyBonus(attacker.Level)
	}

	check := w.roller.D20Check(ac, mod, adv)
	meta["roll"] = check.Roll
	meta["rolls"] = []int{check.Rolls[0], check.Rolls[1]}
	meta["total"] = check.Total
	meta["target_ac"] = ac
	meta["advantage"] = string(adv)
	meta["hit"] = check.Success

	advNote := ""
	if adv != dice.AdvantageNone {
		advNote = fmt.Sprintf(" with %s", adv)
	}
	if !check.Success {
		trace = append(trace, fmt.Sprintf("%s attacks %s%s: %d%+d = %d vs AC %d - miss",
			args.attacker, args.defender, advNote, check.Roll, mod, check.Total, ac))
		return success(meta, trace...)
	}
	trace = append(trace, fmt.Sprintf("%s attacks %s%s: %d%+d = %d vs AC %d - hit",
		args.attacker, args.defender, advNote, check.Roll, mod, check.Total, ac))

	dmgRoll, err := w.roller.RollExpr(args.damageExpr, w.abilityResolver(args.attacker))
	if err != nil {
		meta["damage_expr"] = args.damageExpr
		trace = append(trace, fmt.Sprintf("invalid damage expression %q: %v", args.damageExpr, err))
		return failure(ErrInvalidInput, meta, trace...)
	}
	dmg := max(dmgRoll.Total(), 0)
	meta["damage_dice"] = append([]int(nil), dmgRoll.Dice...)
	meta["damage_total"] = dmg

	hpBefore := defender.HP
	out := w.sheets.ApplyDamage(args.defender, dmg)
	meta["hp_before"] = hpBefore
	meta["hp_after"] = out.HP
	meta["defender_dead"] = out.Dead

	line := fmt.Sprintf("%s takes %d damage (%s); HP %d → %d",
		args.defender, dmg, dmgRoll.String(), hpBefore, out.HP)
	if out.Dead {
		line += " - they fall"
	}
	trace = append(trace, line)
	return success(meta, trace...)
}

// AttackWithWeapon resolves an attack using a weapon definition from the
// attacker's inventory. Reach, governing ability, damage expression, and
// default proficiency come from the weapon table, never from the caller.
// There is no implicit disarmed attack and no auto-move.
//
// Before resolution the engine checks for an eligible protector of the
// defender; if one exists, they become the new defender, their reaction is
// consumed, and the result metadata carries {protector, protected}.
func (w *World) AttackWithWeapon(attackerName, defenderName, weaponID string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	meta := map[string]any{
		"attacker":  attackerName,
		"defender":  defenderName,
		"weapon_id": weaponID,
	}

	def, ok := w.weapons.Get(weaponID)
	if !ok {
		return failure(ErrWeaponNotFound, meta, fmt.Sprintf("unknown weapon %q", weaponID))
	}
	if w.inventory[attackerName][weaponID] <= 0 {
		return failure(ErrWeaponNotOwned, meta,
			fmt.Sprintf("%s does not carry a %s", attackerName, weaponID))
	}

	var trace []string

	// Guard redirection happens before the reach check: the protector steps
	// in front, and the attack is then resolved against them.
	if protector := w.electProtector(attackerName, defenderName); protector != "" {
		w.ensureTurn(protector).ReactionAvailable = false
		meta["guard"] = map[string]any{"protector": protector, "protected": defenderName}
		meta["defender"] = protector
		trace = append(trace, fmt.Sprintf("%s steps in front of %s, drawing the attack", protector, defenderName))
		defenderName = protector
	}

	attackerPos, ok := w.positions[attackerName]
	if !ok {
		return failure(ErrPositionUnknown, meta,
			fmt.Sprintf("%s's position is unknown; cannot attack", attackerName))
	}
	defenderPos, ok := w.positions[defenderName]
	if !ok {
		return failure(ErrPositionUnknown, meta,
			fmt.Sprintf("%s's position is unknown; cannot be attacked", defenderName))
	}

	dist := grid.Distance(attackerPos, defenderPos)
	if dist > def.ReachSteps {
		meta["reach_ok"] = false
		meta["hit"] = false
		meta["distance"] = dist
		meta["reach"] = def.ReachSteps
		trace = append(trace, fmt.Sprintf("%s cannot reach %s with the %s (%d steps away, reach %d)",
			attackerName, defenderName, weaponID, dist, def.ReachSteps))
		return failure(ErrOutOfReach, meta, trace...)
	}
	meta["reach_ok"] = true

	return w.rollAttackLocked(rollAttackArgs{
		attacker:   attackerName,
		defender:   defenderName,
		ability:    def.Ability,
		proficient: def.ProficientDefault,
		damageExpr: def.DamageExpr,
		advParam:   dice.AdvantageNone,
	}, meta, trace)
}
