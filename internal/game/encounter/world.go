package encounter

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/condition"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/dice"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/grid"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/sheet"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/weapon"
)

// pairKey is an unordered character pair used to index the range-band cache.
type pairKey struct {
	a, b string
}

// newPairKey normalises the pair so that (a,b) and (b,a) hit the same entry.
func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// relKey is a directed character pair: a's opinion of b.
type relKey struct {
	a, b string
}

// guardEntry records one declared protection relation.
type guardEntry struct {
	protector string
	protectee string
}

// Trigger is one queued reaction opportunity. The engine only enqueues and
// dequeues; resolving a trigger is the caller's responsibility.
type Trigger struct {
	Kind    string
	Payload map[string]any
}

// scheduledEvent is a timed world event ordered by trigger time.
type scheduledEvent struct {
	name    string
	atMin   int
	note    string
	effects []Effect
}

// World is the owned, injectable world instance. All engine operations hang
// off it; there is no package-level singleton.
//
// A single mutex guards all state: the entire ledger, sheet store, and turn
// economy form one unit of mutual exclusion, and no operation is safe to
// interleave with another mutating operation on the same instance.
type World struct {
	mu     sync.Mutex
	id     uuid.UUID
	logger *zap.Logger
	roller *dice.Roller

	sheets  *sheet.Store
	weapons *weapon.Registry

	positions  map[string]grid.Point
	bands      map[pairKey]grid.Band
	conditions map[string]*condition.Set
	cover      map[string]condition.Cover
	relations  map[relKey]int
	inventory  map[string]map[string]int
	guards     []guardEntry
	turns      map[string]*turnState

	inCombat bool
	round    int
	turnIdx  int
	order    []string
	scores   map[string]int

	triggers []Trigger

	timeMin      int
	weather      string
	location     string
	tension      string
	sceneDetails []string
	marks        map[string]string

	objectives      []string
	objectiveStatus map[string]string
	objectiveNotes  map[string]string
	objectivePos    map[string]grid.Point

	events []scheduledEvent
}

// Default scene values for a freshly created world.
const (
	defaultTimeMin = 8 * 60 // 08:00
	defaultWeather = "sunny"
)

// NewWorld creates an empty world. A nil src falls back to crypto-backed
// randomness; a nil logger falls back to zap.NewNop(). Tests inject a
// seeded source for determinism.
//
// Postcondition: Returns a ready world with a fresh encounter ID.
func NewWorld(src dice.Source, logger *zap.Logger) *World {
	if src == nil {
		src = dice.NewCryptoSource()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	logger = logger.With(zap.String("encounter_id", id.String()))
	return &World{
		id:              id,
		logger:          logger,
		roller:          dice.NewLoggedRoller(src, logger),
		sheets:          sheet.NewStore(logger),
		weapons:         weapon.NewRegistry(),
		positions:       make(map[string]grid.Point),
		bands:           make(map[pairKey]grid.Band),
		conditions:      make(map[string]*condition.Set),
		cover:           make(map[string]condition.Cover),
		relations:       make(map[relKey]int),
		inventory:       make(map[string]map[string]int),
		turns:           make(map[string]*turnState),
		scores:          make(map[string]int),
		marks:           make(map[string]string),
		objectiveStatus: make(map[string]string),
		objectiveNotes:  make(map[string]string),
		objectivePos:    make(map[string]grid.Point),
		timeMin:         defaultTimeMin,
		weather:         defaultWeather,
	}
}

// ID returns the encounter's correlation ID.
func (w *World) ID() uuid.UUID {
	return w.id
}

// conditionsFor returns the condition set for name, creating it on demand.
func (w *World) conditionsFor(name string) *condition.Set {
	s, ok := w.conditions[name]
	if !ok {
		s = condition.NewSet()
		w.conditions[name] = s
	}
	return s
}

// abilityResolver returns a dice.AbilityResolver bound to name's sheet, for
// evaluating ability placeholders in damage expressions.
func (w *World) abilityResolver(name string) dice.AbilityResolver {
	s := w.sheets.Ensure(name)
	return func(ability string) (int, bool) {
		return s.AbilityModifier(ability)
	}
}

// alive reports whether name has a sheet with HP above 0.
func (w *World) alive(name string) bool {
	s, ok := w.sheets.Get(name)
	return ok && !s.Dead()
}

// refreshBands recomputes the cached range band between name and every other
// positioned actor. Every position write must call this.
func (w *World) refreshBands(name string) {
	p, ok := w.positions[name]
	if !ok {
		return
	}
	for other, q := range w.positions {
		if other == name {
			continue
		}
		w.bands[newPairKey(name, other)] = grid.BandFor(grid.Distance(p, q))
	}
}

// bandBetween returns the cached band for the pair, or (Band(""), false)
// when either side has no known position.
func (w *World) bandBetween(a, b string) (grid.Band, bool) {
	band, ok := w.bands[newPairKey(a, b)]
	return band, ok
}

// sortedNames returns the keys of m in lexical order. Trace output and
// iteration-dependent choices use this for determinism.
func sortedNames[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
