package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	content := `generate:
  input: app/lib
  output: app/lib
  freezed: true
  json: false
  riverpod: true
watch:
  debounce_ms: 150
  workers: 2
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "app/lib", cfg.Generate.Input)
	assert.True(t, cfg.Generate.Freezed)
	assert.False(t, cfg.Generate.JSON)
	assert.Equal(t, 150, cfg.Watch.DebounceMs)
	assert.Equal(t, 2, cfg.Watch.Workers)

	// Unset keys fall back to defaults
	assert.True(t, cfg.Generate.Provider)
	assert.False(t, cfg.Generate.DeleteConflictingOutputs)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnabledVariants(t *testing.T) {
	cfg := &Config{Generate: GenerateConfig{Freezed: true, JSON: false, Riverpod: false, Provider: true}}
	enabled := cfg.EnabledVariants()
	assert.True(t, enabled[VariantImmutable])
	assert.False(t, enabled[VariantJSONCodec])
	assert.True(t, enabled[VariantProvider])
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "models"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pubspec.yaml"), []byte("name: aminomi\n"), 0644))

	found, err := FindProjectRoot(filepath.Join(root, "lib", "models"))
	require.NoError(t, err)
	assert.Equal(t, root, found)

	pubspec, err := ReadPubspec(found)
	require.NoError(t, err)
	assert.Equal(t, "aminomi", pubspec.Name)
}

func TestFindProjectRootMissing(t *testing.T) {
	_, err := FindProjectRoot(t.TempDir())
	assert.Error(t, err)
}
