package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	//** Arrange
	t.Chdir(t.TempDir())

	//** Act
	cfg, err := Load("")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, FileDriver, cfg.Store.Driver)
	assert.Equal(t, "timetable.json", cfg.Store.File)
	assert.Equal(t, uint64(0), cfg.Generator.Seed)
	assert.Equal(t, 100, cfg.Generator.MaxAttempts)
	assert.Equal(t, LabFirstOrdering, cfg.Generator.Ordering)
	assert.Equal(t, "SPAS", cfg.Generator.LongSessionSchool)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	//** Arrange
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
log:
  level: debug
generator:
  seed: 42
  ordering: most-constrained
store:
  driver: postgres
  dsn: postgres://localhost/timetable
`), 0666))
	t.Setenv("TIMETABLE_GENERATOR_MAX_ATTEMPTS", "250")

	//** Act
	cfg, err := Load(file)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.Equal(t, MostConstrainedOrdering, cfg.Generator.Ordering)
	assert.Equal(t, 250, cfg.Generator.MaxAttempts)
	assert.Equal(t, PostgresDriver, cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/timetable", cfg.Store.DSN)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Log:       LogConfig{Level: "info", Format: "json"},
			Store:     StoreConfig{Driver: FileDriver, File: "timetable.json"},
			Generator: GeneratorConfig{MaxAttempts: 100, Ordering: LabFirstOrdering, LongSessionSchool: "SPAS"},
		}
	}

	scenarios := map[string]func(cfg *Config){
		"unknown driver":       func(cfg *Config) { cfg.Store.Driver = "sqlite" },
		"missing file":         func(cfg *Config) { cfg.Store.File = "" },
		"missing dsn":          func(cfg *Config) { cfg.Store.Driver = PostgresDriver },
		"non-positive budget":  func(cfg *Config) { cfg.Generator.MaxAttempts = 0 },
		"unknown ordering":     func(cfg *Config) { cfg.Generator.Ordering = "random" },
		"missing long session": func(cfg *Config) { cfg.Generator.LongSessionSchool = "" },
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	for name, mutate := range scenarios {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
