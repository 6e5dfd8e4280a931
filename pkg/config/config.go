package config

import (
	"context"
	"time"
)

// Config represents the complete configuration of the actionschema tool.
type Config struct {
	Generate GenerateConfig `koanf:"generate" validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

// GenerateConfig controls discovery and output of action schemas.
type GenerateConfig struct {
	Root      string   `koanf:"root"       validate:"required"                    env:"ACTIONSCHEMA_ROOT"       flag:"root"`
	Include   []string `koanf:"include"    validate:"required,min=1,dive,required" env:"ACTIONSCHEMA_INCLUDE"    flag:"include"`
	Exclude   []string `koanf:"exclude"    validate:"dive,required"               env:"ACTIONSCHEMA_EXCLUDE"    flag:"exclude"`
	OutputDir string   `koanf:"output_dir" validate:"required"                    env:"ACTIONSCHEMA_OUTPUT_DIR" flag:"output"`
	Format    string   `koanf:"format"     validate:"oneof=json yaml"             env:"ACTIONSCHEMA_FORMAT"     flag:"format"`
	Pretty    bool     `koanf:"pretty"                                            env:"ACTIONSCHEMA_PRETTY"     flag:"pretty"`
	Check     bool     `koanf:"check"                                             env:"ACTIONSCHEMA_CHECK"      flag:"check"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error disabled" env:"ACTIONSCHEMA_LOG_LEVEL"  flag:"log-level"`
	JSON   bool   `koanf:"json"                                                   env:"ACTIONSCHEMA_LOG_JSON"   flag:"log-json"`
	Source bool   `koanf:"source"                                                 env:"ACTIONSCHEMA_LOG_SOURCE" flag:"log-source"`
}

// Service defines the configuration management interface.
type Service interface {
	// Load reads configuration from defaults, the given sources and the environment.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type that provided a configuration key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Root:      ".",
			Include:   []string{"**/*.action.yaml", "**/*.action.yml", "**/*.action.json"},
			Exclude:   []string{},
			OutputDir: "schemas",
			Format:    "json",
			Pretty:    true,
			Check:     false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
