package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDef(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "brakka.yaml", `
name: Brakka
level: 3
ac: 16
max_hp: 28
abilities:
  str: 16
  dex: 12
  con: 14
  int: 8
  wis: 10
  cha: 10
proficient_skills:
  - athletics
proficient_saves:
  - STR
`)
	writeDef(t, dir, "notes.txt", "not yaml, skipped")

	defs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "Brakka", defs[0].Name)
	assert.Equal(t, 16, defs[0].Abilities.Strength)
}

func TestLoadDirDefaultsAbilities(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "mook.yaml", `
name: Mook
ac: 10
max_hp: 5
`)

	defs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, DefaultAbilities(), defs[0].Abilities)
}

func TestLoadDirRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "broken.yaml", `
name: ""
max_hp: 0
`)

	_, err := LoadDir(dir)
	assert.Error(t, err)
}

func TestLoadDirRejectsUnknownSkill(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "bad.yaml", `
name: Bad
ac: 10
max_hp: 5
proficient_skills:
  - juggling
`)

	_, err := LoadDir(dir)
	assert.Error(t, err)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir("/nonexistent/characters")
	assert.Error(t, err)
}
