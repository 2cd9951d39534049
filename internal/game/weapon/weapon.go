// Package weapon provides the global read-mostly weapon definition table
// used by weapon-based attacks.
package weapon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/dice"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/sheet"
)

// Def defines the static properties of a weapon loaded from YAML or injected
// by the orchestrator.
type Def struct {
	ID string `yaml:"id"`
	// ReachSteps is the attack range in exact grid steps.
	ReachSteps int `yaml:"reach_steps"`
	// Ability is the governing ability for attack and damage ("STR".."CHA").
	Ability string `yaml:"ability"`
	// DamageExpr is the damage dice expression, e.g. "1d8+STR".
	DamageExpr string `yaml:"damage_expr"`
	// ProficientDefault marks the weapon as usable with proficiency by anyone.
	ProficientDefault bool `yaml:"proficient_default"`
}

// Validate checks that the Def satisfies its invariants, including that the
// damage expression parses.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.ReachSteps < 1 {
		errs = append(errs, errors.New("ReachSteps must be >= 1"))
	}
	if _, ok := sheet.DefaultAbilities().Score(d.Ability); !ok {
		errs = append(errs, fmt.Errorf("Ability must be one of STR, DEX, CON, INT, WIS, CHA; got %q", d.Ability))
	}
	if d.DamageExpr == "" {
		errs = append(errs, errors.New("DamageExpr must not be empty"))
	} else if _, err := dice.Parse(d.DamageExpr); err != nil {
		errs = append(errs, fmt.Errorf("DamageExpr: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// Registry holds all weapon definitions indexed by ID.
// It is not safe for concurrent use; the owning world serialises access.
type Registry struct {
	defs map[string]*Def
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal index is initialised.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Def)}
}

// Register upserts d into the registry. Re-registering an ID replaces the
// previous definition; the table is read-mostly and redefinition mirrors
// "config reloaded", not an error.
//
// Precondition: d must not be nil and must validate.
// Postcondition: Get(d.ID) returns d.
func (r *Registry) Register(d *Def) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("weapon: Registry.Register %q: %w", d.ID, err)
	}
	r.defs[d.ID] = d
	return nil
}

// Get returns the Def for the given id and whether it was found.
func (r *Registry) Get(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// IDs returns all registered weapon IDs in unspecified order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.defs))
	for id := range r.defs {
		out = append(out, id)
	}
	return out
}

// Len returns the number of registered weapons.
func (r *Registry) Len() int {
	return len(r.defs)
}

// LoadDir reads all *.yaml files from dir, parses each as a Def, validates
// it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Defs or the first encountered error.
func LoadDir(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("weapon: LoadDir: cannot read directory %q: %w", dir, err)
	}

	var defs []*Def
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("weapon: LoadDir: cannot read file %q: %w", path, err)
		}
		var d Def
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("weapon: LoadDir: cannot parse file %q: %w", path, err)
		}
		d.Ability = strings.ToUpper(d.Ability)
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("weapon: LoadDir: invalid weapon in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}
