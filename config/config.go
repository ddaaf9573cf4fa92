// Package config loads and validates the superfastgen configuration.
//
// Configuration is resolved from superfastgen.yaml, environment variables
// (SUPERFASTGEN_*), and built-in defaults, in that order of precedence.
// The resolved Config value object is passed explicitly into the pipeline
// and the regeneration coordinator; no component reads configuration
// ambiently.
package config

// Config is the resolved configuration value object for a generator run
type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

// GenerateConfig controls which generators run and where they read/write
type GenerateConfig struct {
	// Input is the directory scanned for .dart source files
	Input string `mapstructure:"input"`
	// Output is the directory generated companions are written to.
	// Companion files are placed next to their sources when Output equals
	// Input, matching the build_runner convention.
	Output string `mapstructure:"output"`

	// Per-generator toggles
	Freezed  bool `mapstructure:"freezed"`
	JSON     bool `mapstructure:"json"`
	Riverpod bool `mapstructure:"riverpod"`
	Provider bool `mapstructure:"provider"`

	// DeleteConflictingOutputs removes stale generated files before a run
	DeleteConflictingOutputs bool `mapstructure:"delete_conflicting_outputs"`
}

// WatchConfig controls the regeneration coordinator
type WatchConfig struct {
	// DebounceMs is the coalescing window for change notifications on one path
	DebounceMs int `mapstructure:"debounce_ms"`
	// Workers bounds the batch-run worker pool
	Workers int `mapstructure:"workers"`
}

// Variant identifies one of the three generation families
type Variant string

const (
	VariantImmutable Variant = "freezed"
	VariantJSONCodec Variant = "json"
	VariantProvider  Variant = "provider"
)

// EnabledVariants returns the generation variants this config enables
func (c *Config) EnabledVariants() map[Variant]bool {
	return map[Variant]bool{
		VariantImmutable: c.Generate.Freezed,
		VariantJSONCodec: c.Generate.JSON,
		VariantProvider:  c.Generate.Riverpod || c.Generate.Provider,
	}
}
