package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	FileDriver     = "file"
	PostgresDriver = "postgres"

	LabFirstOrdering        = "lab-first"
	MostConstrainedOrdering = "most-constrained"
)

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	File   string `mapstructure:"file"` // JSON document used by the file driver
	DSN    string `mapstructure:"dsn"`  // Connection string used by the postgres driver
}

type GeneratorConfig struct {
	Seed              uint64 `mapstructure:"seed"` // 0 picks a time-based seed
	MaxAttempts       int    `mapstructure:"max_attempts"`
	Ordering          string `mapstructure:"ordering"`
	LongSessionSchool string `mapstructure:"long_session_school"`
}

type MetricsConfig struct {
	File string `mapstructure:"file"` // Prometheus text file written after each run; empty disables it
}

// Load reads configuration with precedence environment > file > defaults.
// An empty path looks for config.yaml in ./config and the working directory
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("store.driver", FileDriver)
	v.SetDefault("store.file", "timetable.json")
	v.SetDefault("store.dsn", "")

	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.max_attempts", 100)
	v.SetDefault("generator.ordering", LabFirstOrdering)
	v.SetDefault("generator.long_session_school", "SPAS")

	v.SetDefault("metrics.file", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains([]string{FileDriver, PostgresDriver}, c.Store.Driver) {
		return fmt.Errorf("invalid config: store.driver must be \"file\" or \"postgres\": %v", c.Store.Driver)
	} else if c.Store.Driver == FileDriver && c.Store.File == "" {
		return fmt.Errorf("invalid config: store.file is required by the file driver")
	} else if c.Store.Driver == PostgresDriver && c.Store.DSN == "" {
		return fmt.Errorf("invalid config: store.dsn is required by the postgres driver")
	}
	if c.Generator.MaxAttempts <= 0 {
		return fmt.Errorf("invalid config: generator.max_attempts must be positive: %v", c.Generator.MaxAttempts)
	}
	if !slices.Contains([]string{LabFirstOrdering, MostConstrainedOrdering}, c.Generator.Ordering) {
		return fmt.Errorf("invalid config: generator.ordering must be \"lab-first\" or \"most-constrained\": %v", c.Generator.Ordering)
	}
	if c.Generator.LongSessionSchool == "" {
		return fmt.Errorf("invalid config: generator.long_session_school cannot be empty")
	}
	return nil
}
