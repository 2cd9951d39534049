// Package condition tracks per-character condition tags and the advantage
// and cover arithmetic they feed into attack resolution.
package condition

import "sort"

// Tag is a condition tag applied to a character.
type Tag string

// Condition tags known to the engine. The engine enforces no exclusivity
// between tags; callers must avoid contradictory combinations.
const (
	Hidden   Tag = "hidden"
	Prone    Tag = "prone"
	Dodge    Tag = "dodge"
	Grappled Tag = "grappled"
)

// knownTags is the set of tags the engine recognises.
var knownTags = map[Tag]bool{
	Hidden:   true,
	Prone:    true,
	Dodge:    true,
	Grappled: true,
}

// Known reports whether t is a tag the engine recognises.
func Known(t Tag) bool {
	return knownTags[t]
}

// Set tracks the conditions currently applied to one character.
// It is not safe for concurrent use; the owning world serialises access.
type Set struct {
	tags map[Tag]bool
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{tags: make(map[Tag]bool)}
}

// Apply adds t to the set. Re-applying an active tag is a no-op.
//
// Postcondition: Has(t) is true.
func (s *Set) Apply(t Tag) {
	s.tags[t] = true
}

// Remove deletes t from the set. Removing an absent tag is a no-op.
//
// Postcondition: Has(t) is false.
func (s *Set) Remove(t Tag) {
	delete(s.tags, t)
}

// Has reports whether t is currently active. A nil Set has no tags.
func (s *Set) Has(t Tag) bool {
	return s != nil && s.tags[t]
}

// All returns the active tags sorted lexically.
func (s *Set) All() []Tag {
	if s == nil {
		return nil
	}
	out := make([]Tag, 0, len(s.tags))
	for t := range s.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of active tags.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tags)
}

// NetAdvantage computes the attack-roll advantage balance from the attacker
// and defender condition sets: +1 if the attacker is hidden, +1 if the
// defender is prone, -1 if the defender is dodging. Either set may be nil.
//
// Postcondition: positive means advantage, negative disadvantage, zero none.
func NetAdvantage(attacker, defender *Set) int {
	net := 0
	if attacker.Has(Hidden) {
		net++
	}
	if defender.Has(Prone) {
		net++
	}
	if defender.Has(Dodge) {
		net--
	}
	return net
}
