package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/superfastgen/superfastgen/errors"
)

// ConfigFileName is the project-level configuration file superfastgen reads
const ConfigFileName = "superfastgen.yaml"

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the superfastgen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// Reset clears the cached configuration (useful for testing and for
// config-changed regeneration events)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
	v.SetConfigType("yaml")

	// Search the working directory, then the Flutter project root if one is
	// discoverable from here
	v.AddConfigPath(".")
	if root, err := FindProjectRoot(mustGetwd()); err == nil {
		v.AddConfigPath(root)
	}

	v.SetEnvPrefix("SUPERFASTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Missing config file is fine; defaults and env cover everything
	_ = v.ReadInConfig()

	viperInstance = v
	return v
}

// SetDefaults applies the built-in defaults to a Viper instance
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.input", "lib")
	v.SetDefault("generate.output", "lib")
	v.SetDefault("generate.freezed", true)
	v.SetDefault("generate.json", true)
	v.SetDefault("generate.riverpod", true)
	v.SetDefault("generate.provider", true)
	v.SetDefault("generate.delete_conflicting_outputs", false)
	v.SetDefault("watch.debounce_ms", 300)
	v.SetDefault("watch.workers", 4)
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
