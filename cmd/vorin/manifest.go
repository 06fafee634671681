package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// manifestFileName and lockFileName are this project's analogues of
// composer.json/composer.lock, adapted from the teacher's JSON-based
// cmd/hey/composer.go into YAML since gopkg.in/yaml.v3 was already an
// indirect dependency that nothing in the tree imported.
const (
	manifestFileName = "vorin.yaml"
	lockFileName     = "vorin.lock"
)

// Manifest is the project/package manifest read and written by the
// init/require/install/update/validate subcommands.
type Manifest struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Require     map[string]string `yaml:"require,omitempty"`
	RequireDev  map[string]string `yaml:"require-dev,omitempty"`
}

// Lockfile pins the exact constraint each manifest entry resolved to, the
// same role composer.lock plays for composer.json.
type Lockfile struct {
	Resolved map[string]string `yaml:"resolved"`
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

func loadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l := &Lockfile{}
	if err := yaml.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return l, nil
}

func (l *Lockfile) save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

func defaultManifestName() string {
	dir, err := os.Getwd()
	if err != nil {
		return "vorin-project"
	}
	return filepath.Base(dir)
}
