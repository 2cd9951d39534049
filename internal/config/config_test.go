package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Content: ContentConfig{
			WeaponsDir:    "content/weapons",
			CharactersDir: "content/characters",
		},
		Sim: SimConfig{
			Seed:      42,
			MaxRounds: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
content:
  weapons_dir: testdata/weapons
  characters_dir: testdata/characters
sim:
  seed: 1234
  max_rounds: 10
logging:
  level: debug
  format: console
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testdata/weapons", cfg.Content.WeaponsDir)
	assert.Equal(t, int64(1234), cfg.Sim.Seed)
	assert.Equal(t, 10, cfg.Sim.MaxRounds)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: warn
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "content/weapons", cfg.Content.WeaponsDir)
	assert.Equal(t, 20, cfg.Sim.MaxRounds)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestValidateContentDirsEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Content.WeaponsDir = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Content.CharactersDir = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateMaxRounds(t *testing.T) {
	cfg := validConfig()
	cfg.Sim.MaxRounds = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

// Property-based tests

func TestPropertyValidMaxRounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rounds := rapid.IntRange(1, 10000).Draw(t, "max_rounds")
		cfg := validConfig()
		cfg.Sim.MaxRounds = rounds
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid max_rounds %d rejected: %v", rounds, err)
		}
	})
}

func TestPropertyAnySeedIsValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		cfg := validConfig()
		cfg.Sim.Seed = seed
		if err := cfg.Validate(); err != nil {
			t.Fatalf("seed %d rejected: %v", seed, err)
		}
	})
}
