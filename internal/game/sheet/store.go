package sheet

import (
	"strings"

	"go.uber.org/zap"
)

// Sheet is one character's authoritative stat block.
//
// Invariant: 0 <= HP <= MaxHP at all times.
type Sheet struct {
	Name      string
	Level     int
	AC        int
	Abilities Abilities
	MaxHP     int
	HP        int
	// Speed is the movement budget in grid steps per turn.
	Speed int
	// Reach is the melee range in exact grid steps, distinct from bands.
	Reach int

	proficientSkills map[string]bool
	proficientSaves  map[string]bool
}

// ProficientInSkill reports whether the sheet is proficient in the named
// skill (case-insensitive).
func (s *Sheet) ProficientInSkill(skill string) bool {
	return s.proficientSkills[strings.ToLower(skill)]
}

// ProficientInSave reports whether the sheet is proficient in saves for the
// named ability (case-insensitive).
func (s *Sheet) ProficientInSave(ability string) bool {
	return s.proficientSaves[strings.ToUpper(ability)]
}

// ProficientSkills returns the proficient skill names in unspecified order.
func (s *Sheet) ProficientSkills() []string {
	out := make([]string, 0, len(s.proficientSkills))
	for k := range s.proficientSkills {
		out = append(out, k)
	}
	return out
}

// ProficientSaves returns the proficient save ability names in unspecified order.
func (s *Sheet) ProficientSaves() []string {
	out := make([]string, 0, len(s.proficientSaves))
	for k := range s.proficientSaves {
		out = append(out, k)
	}
	return out
}

// AbilityModifier returns the modifier for the named ability and whether the
// name was recognised.
func (s *Sheet) AbilityModifier(ability string) (int, bool) {
	score, ok := s.Abilities.Score(ability)
	if !ok {
		return 0, false
	}
	return Modifier(score), true
}

// Dead reports whether the character is at 0 HP. Dead characters remain
// addressable; they are never removed from the store.
func (s *Sheet) Dead() bool {
	return s.HP <= 0
}

// Definition carries the caller-supplied fields for Define. Zero Speed and
// Reach fall back to the engine defaults (6 steps, 1 step).
type Definition struct {
	Name             string    `yaml:"name"`
	Level            int       `yaml:"level"`
	AC               int       `yaml:"ac"`
	Abilities        Abilities `yaml:"abilities"`
	MaxHP            int       `yaml:"max_hp"`
	ProficientSkills []string  `yaml:"proficient_skills"`
	ProficientSaves  []string  `yaml:"proficient_saves"`
	Speed            int       `yaml:"move_speed"`
	Reach            int       `yaml:"reach"`
}

// Engine defaults applied when a Definition leaves Speed or Reach unset.
const (
	DefaultSpeed = 6
	DefaultReach = 1
)

// Store holds all character sheets keyed by name. It is not safe for
// concurrent use; the owning world serialises access.
type Store struct {
	sheets map[string]*Sheet
	logger *zap.Logger
}

// NewStore creates an empty Store. A nil logger is replaced with zap.NewNop().
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{sheets: make(map[string]*Sheet), logger: logger}
}

// Define upserts the sheet for def.Name. Redefinition resets HP to MaxHP:
// this mirrors "sheet defined/updated", not "healed".
//
// Precondition: def.Name must be non-empty; def.Level >= 1 (0 is coerced to 1).
// Postcondition: Get(def.Name) returns a sheet with HP == MaxHP.
func (st *Store) Define(def Definition) *Sheet {
	level := def.Level
	if level < 1 {
		level = 1
	}
	speed := def.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}
	reach := def.Reach
	if reach <= 0 {
		reach = DefaultReach
	}

	s := &Sheet{
		Name:             def.Name,
		Level:            level,
		AC:               def.AC,
		Abilities:        def.Abilities,
		MaxHP:            def.MaxHP,
		HP:               def.MaxHP,
		Speed:            speed,
		Reach:            reach,
		proficientSkills: make(map[string]bool, len(def.ProficientSkills)),
		proficientSaves:  make(map[string]bool, len(def.ProficientSaves)),
	}
	for _, sk := range def.ProficientSkills {
		s.proficientSkills[strings.ToLower(sk)] = true
	}
	for _, sv := range def.ProficientSaves {
		s.proficientSaves[strings.ToUpper(sv)] = true
	}
	st.sheets[def.Name] = s
	return s
}

// Get returns the sheet for name, or (nil, false) if not defined.
func (st *Store) Get(name string) (*Sheet, bool) {
	s, ok := st.sheets[name]
	return s, ok
}

// Ensure returns the sheet for name, creating a zeroed placeholder when the
// name is undefined. The placeholder has a flat 10 stat line, 0 HP, and the
// default speed and reach. Creation is logged at warn because it usually
// indicates a configuration gap rather than intent.
//
// Postcondition: Returns a non-nil sheet; Get(name) succeeds afterwards.
func (st *Store) Ensure(name string) *Sheet {
	if s, ok := st.sheets[name]; ok {
		return s
	}
	st.logger.Warn("auto-creating zeroed sheet for undefined character",
		zap.String("name", name),
	)
	s := &Sheet{
		Name:             name,
		Level:            1,
		AC:               10,
		Abilities:        DefaultAbilities(),
		Speed:            DefaultSpeed,
		Reach:            DefaultReach,
		proficientSkills: make(map[string]bool),
		proficientSaves:  make(map[string]bool),
	}
	st.sheets[name] = s
	return s
}

// DamageOutcome reports the effect of ApplyDamage.
type DamageOutcome struct {
	HP int
	// Dead is true when this application brought HP to 0.
	Dead bool
}

// ApplyDamage reduces name's HP by amount (negative amounts are clamped to
// 0), flooring HP at 0. Undefined names get a zeroed sheet first.
//
// Postcondition: resulting HP >= 0; Dead is true iff HP reached 0 from above.
func (st *Store) ApplyDamage(name string, amount int) DamageOutcome {
	s := st.Ensure(name)
	if amount < 0 {
		amount = 0
	}
	wasAlive := s.HP > 0
	s.HP -= amount
	if s.HP < 0 {
		s.HP = 0
	}
	return DamageOutcome{HP: s.HP, Dead: wasAlive && s.HP == 0}
}

// ApplyHeal raises name's HP by amount (negative amounts are clamped to 0),
// capping at MaxHP. Undefined names get a zeroed sheet first.
//
// Postcondition: resulting HP <= MaxHP.
func (st *Store) ApplyHeal(name string, amount int) int {
	s := st.Ensure(name)
	if amount < 0 {
		amount = 0
	}
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	return s.HP
}

// Names returns all defined character names in unspecified order.
func (st *Store) Names() []string {
	out := make([]string, 0, len(st.sheets))
	for name := range st.sheets {
		out = append(out, name)
	}
	return out
}

// Len returns the number of defined sheets.
func (st *Store) Len() int {
	return len(st.sheets)
}
