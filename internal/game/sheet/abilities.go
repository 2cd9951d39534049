// Package sheet provides the authoritative character stat-block store and
// the derived-modifier math used by every downstream check.
package sheet

import "strings"

// Ability identifiers as used in proficiency lists, save names, and damage
// expressions.
const (
	STR = "STR"
	DEX = "DEX"
	CON = "CON"
	INT = "INT"
	WIS = "WIS"
	CHA = "CHA"
)

// Abilities holds the six ability score values for a character.
type Abilities struct {
	Strength     int `yaml:"str"`
	Dexterity    int `yaml:"dex"`
	Constitution int `yaml:"con"`
	Intelligence int `yaml:"int"`
	Wisdom       int `yaml:"wis"`
	Charisma     int `yaml:"cha"`
}

// DefaultAbilities returns the flat baseline stat line (all 10s).
func DefaultAbilities() Abilities {
	return Abilities{10, 10, 10, 10, 10, 10}
}

// Score returns the score for the named ability ("STR".."CHA",
// case-insensitive) and whether the name is recognised.
func (a Abilities) Score(name string) (int, bool) {
	switch strings.ToUpper(name) {
	case STR:
		return a.Strength, true
	case DEX:
		return a.Dexterity, true
	case CON:
		return a.Constitution, true
	case INT:
		return a.Intelligence, true
	case WIS:
		return a.Wisdom, true
	case CHA:
		return a.Charisma, true
	default:
		return 0, false
	}
}

// Modifier computes the standard ability modifier: floor((score - 10) / 2).
// Floor division, so Modifier(8) == -1 and Modifier(7) == -2.
//
// Postcondition: monotonic non-decreasing in score; Modifier(10) == 0.
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// ProficiencyBonus returns the level-derived proficiency bonus:
// 2 + (level-1)/4.
//
// Precondition: level >= 1.
// Postcondition: Returns >= 2.
func ProficiencyBonus(level int) int {
	return 2 + (level-1)/4
}

// skillAbilities maps each standard skill to its governing ability.
var skillAbilities = map[string]string{
	"athletics":       STR,
	"acrobatics":      DEX,
	"sleight_of_hand": DEX,
	"stealth":         DEX,
	"arcana":          INT,
	"history":         INT,
	"investigation":   INT,
	"nature":          INT,
	"religion":        INT,
	"animal_handling": WIS,
	"insight":         WIS,
	"medicine":        WIS,
	"perception":      WIS,
	"survival":        WIS,
	"deception":       CHA,
	"intimidation":    CHA,
	"performance":     CHA,
	"persuasion":      CHA,
}

// SkillAbility returns the governing ability for a skill name
// (case-insensitive) and whether the skill is recognised.
func SkillAbility(skill string) (string, bool) {
	ab, ok := skillAbilities[strings.ToLower(skill)]
	return ab, ok
}
