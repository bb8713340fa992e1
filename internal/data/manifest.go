package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ActorSpec declares one actor to spawn at boot.
type ActorSpec struct {
	Name       string          `yaml:"name"`
	Components []ComponentSpec `yaml:"components"`
}

// ComponentSpec declares one component attachment. Params carries the
// numeric fields the component constructor needs; Script names the Lua
// update function for behavior components.
type ComponentSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params"`
	Script string             `yaml:"script"`
}

type manifestFile struct {
	Actors []ActorSpec `yaml:"actors"`
}

// Manifest holds the scene content declared in YAML.
type Manifest struct {
	Actors []ActorSpec
}

// LoadManifest reads a scene manifest from YAML.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var file manifestFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	for i, a := range file.Actors {
		if a.Name == "" {
			return nil, fmt.Errorf("manifest %s: actor %d has no name", path, i)
		}
		for _, c := range a.Components {
			if c.Type == "" {
				return nil, fmt.Errorf("manifest %s: actor %q has a component without a type", path, a.Name)
			}
		}
	}
	return &Manifest{Actors: file.Actors}, nil
}

// Count reports the number of declared actors.
func (m *Manifest) Count() int {
	return len(m.Actors)
}
