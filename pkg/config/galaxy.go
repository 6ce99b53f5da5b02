// pkg/config/galaxy.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// galaxyFile is the on-disk shape of a galaxy template. Galaxy content is
// authored separately from the tuning config, so it uses YAML rather than
// the JSON tuning file format.
type galaxyFile struct {
	Bodies []galaxyBody `yaml:"bodies"`
}

type galaxyBody struct {
	Name      string  `yaml:"name"`
	Position  [3]float64 `yaml:"position"`
	Radius    float64 `yaml:"radius"`
	MaxHealth float64 `yaml:"maxHealth"`
}

// LoadGalaxy reads a YAML galaxy template and returns its bodies in file
// order. Body order is load-bearing: target cycling walks the registry in
// insertion order.
func LoadGalaxy(path string) ([]BodyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read galaxy file: %w", err)
	}

	var file galaxyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse galaxy file: %w", err)
	}
	if len(file.Bodies) == 0 {
		return nil, fmt.Errorf("galaxy file %s declares no bodies", path)
	}

	bodies := make([]BodyConfig, 0, len(file.Bodies))
	for i, b := range file.Bodies {
		if b.Name == "" {
			return nil, fmt.Errorf("galaxy body %d has no name", i)
		}
		if b.Radius <= 0 {
			return nil, fmt.Errorf("galaxy body %q: radius must be positive", b.Name)
		}
		if b.MaxHealth <= 0 {
			return nil, fmt.Errorf("galaxy body %q: maxHealth must be positive", b.Name)
		}
		bodies = append(bodies, BodyConfig{
			Name:      b.Name,
			X:         b.Position[0],
			Y:         b.Position[1],
			Z:         b.Position[2],
			Radius:    b.Radius,
			MaxHealth: b.MaxHealth,
		})
	}
	return bodies, nil
}
