package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Validate checks that the Definition satisfies its invariants.
//
// Postcondition: returns nil iff the definition is usable by Define.
func (d *Definition) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if d.AC < 0 {
		errs = append(errs, errors.New("AC must be >= 0"))
	}
	if d.MaxHP < 1 {
		errs = append(errs, errors.New("MaxHP must be >= 1"))
	}
	if d.Speed < 0 {
		errs = append(errs, errors.New("Speed must be >= 0"))
	}
	if d.Reach < 0 {
		errs = append(errs, errors.New("Reach must be >= 0"))
	}
	for _, skill := range d.ProficientSkills {
		if _, ok := SkillAbility(skill); !ok {
			errs = append(errs, fmt.Errorf("unknown skill %q", skill))
		}
	}
	for _, save := range d.ProficientSaves {
		if _, ok := DefaultAbilities().Score(save); !ok {
			errs = append(errs, fmt.Errorf("unknown save ability %q", save))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("character validation failed: %v", errs)
	}
	return nil
}

// LoadDir reads all *.yaml files from dir, parses each as a Definition,
// validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Definitions or the first encountered error.
func LoadDir(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sheet: LoadDir: cannot read directory %q: %w", dir, err)
	}

	var defs []Definition
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("sheet: LoadDir: cannot read file %q: %w", path, err)
		}
		var d Definition
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("sheet: LoadDir: cannot parse file %q: %w", path, err)
		}
		if d.Abilities == (Abilities{}) {
			d.Abilities = DefaultAbilities()
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("sheet: LoadDir: invalid character in %q: %w", path, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}
