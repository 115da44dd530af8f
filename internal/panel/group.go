package panel

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/driftwall/driftwall/internal/errors"
)

// Group is the set of panels displayed together. A profile names one
// group; the renderer owns at most one at a time.
type Group struct {
	Name   string  `yaml:"name"`
	Panels []Panel `yaml:"panels"`
}

// Validate checks every panel in the group.
func (g *Group) Validate() error {
	if len(g.Panels) == 0 {
		return fmt.Errorf("group %q has no panels", g.Name)
	}
	for i := range g.Panels {
		if err := g.Panels[i].Validate(); err != nil {
			return fmt.Errorf("group %q panel %d: %w", g.Name, i, err)
		}
	}
	return nil
}

// Step advances every panel by one frame and returns the indices of
// panels that finished their cycle and want a fresh image.
func (g *Group) Step() []int {
	var want []int
	for i := range g.Panels {
		if g.Panels[i].Step() {
			want = append(want, i)
		}
	}
	return want
}

// LoadGroup reads and validates a panel group from a YAML file.
func LoadGroup(fs afero.Fs, path string) (*Group, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.NewProfileError("failed to read panel group", err)
	}

	var group Group
	if err := yaml.Unmarshal(data, &group); err != nil {
		return nil, errors.NewProfileError("failed to parse panel group", err)
	}
	if group.Name == "" {
		group.Name = filepath.Base(path)
	}
	if err := group.Validate(); err != nil {
		return nil, errors.NewProfileError("invalid panel group", err)
	}
	return &group, nil
}

// SaveGroup writes a panel group to a YAML file.
func SaveGroup(fs afero.Fs, path string, group *Group) error {
	if err := group.Validate(); err != nil {
		return errors.NewProfileError("invalid panel group", err)
	}

	data, err := yaml.Marshal(group)
	if err != nil {
		return errors.NewProfileError("failed to serialize panel group", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.NewProfileError("failed to write panel group", err)
	}
	return nil
}
