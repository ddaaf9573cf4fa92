package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/superfastgen/superfastgen/errors"
)

// Pubspec holds the fields superfastgen reads from a pubspec.yaml
type Pubspec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// FindProjectRoot walks up from start looking for a Flutter project root,
// identified by a pubspec.yaml next to a lib/ directory.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(err, "resolving start directory")
	}

	for {
		pubspec := filepath.Join(dir, "pubspec.yaml")
		lib := filepath.Join(dir, "lib")
		if fileExists(pubspec) && dirExists(lib) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrapf(errors.ErrNoProject, "searched upward from %s", start)
		}
		dir = parent
	}
}

// ReadPubspec parses the pubspec.yaml at the given project root
func ReadPubspec(root string) (*Pubspec, error) {
	data, err := os.ReadFile(filepath.Join(root, "pubspec.yaml"))
	if err != nil {
		return nil, errors.Wrap(err, "reading pubspec.yaml")
	}

	var p Pubspec
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "parsing pubspec.yaml")
	}
	return &p, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
