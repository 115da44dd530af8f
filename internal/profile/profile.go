// Package profile persists named wallpaper layouts. A profile describes
// a panel group (geometries, playlists, timings); applying one replaces
// the renderer's current group.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/panel"
)

// Profile is a named panel layout.
type Profile struct {
	Name   string        `yaml:"name"`
	Panels []panel.Panel `yaml:"panels"`
}

// Validate checks the profile's static configuration.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.NewValidationError("profile has no name").WithField("name")
	}
	if strings.ContainsAny(p.Name, "/\\") {
		return errors.NewValidationError("profile name contains path separators").
			WithField("name").WithValue(p.Name)
	}
	if len(p.Panels) == 0 {
		return errors.NewValidationError("profile has no panels").WithField("panels")
	}
	for i := range p.Panels {
		if err := p.Panels[i].Validate(); err != nil {
			return fmt.Errorf("profile %q panel %d: %w", p.Name, i, err)
		}
	}
	return nil
}

// Group builds the panel group this profile describes. Playback state is
// reset; images arrive from the loader.
func (p *Profile) Group() *panel.Group {
	panels := make([]panel.Panel, len(p.Panels))
	copy(panels, p.Panels)
	for i := range panels {
		panels[i].State.Progress = 0
		panels[i].Cur = nil
		panels[i].Next = nil
	}
	return &panel.Group{Name: p.Name, Panels: panels}
}

// Manager loads and saves profiles under a single directory, one YAML
// file per profile.
type Manager struct {
	fs  afero.Fs
	dir string
}

// NewManager creates a manager over dir, creating it if needed.
func NewManager(fs afero.Fs, dir string) (*Manager, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.NewProfileError("failed to create profiles dir", err)
	}
	return &Manager{fs: fs, dir: dir}, nil
}

// Dir returns the directory the manager persists profiles under.
func (m *Manager) Dir() string {
	return m.dir
}

// Load reads the named profile.
func (m *Manager) Load(name string) (*Profile, error) {
	data, err := afero.ReadFile(m.fs, m.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewProfileError("profile missing", errors.ErrProfileNotFound).WithProfile(name)
		}
		return nil, errors.NewProfileError("failed to read profile", err).WithProfile(name)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.NewProfileError("failed to parse profile", errors.ErrProfileCorrupted).WithProfile(name)
	}
	if p.Name == "" {
		p.Name = name
	}
	if err := p.Validate(); err != nil {
		return nil, errors.NewProfileError("invalid profile", err).WithProfile(name)
	}
	return &p, nil
}

// Save writes the profile, overwriting any previous version.
func (m *Manager) Save(p *Profile) error {
	if err := p.Validate(); err != nil {
		return errors.NewProfileError("invalid profile", err).WithProfile(p.Name)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.NewProfileError("failed to serialize profile", err).WithProfile(p.Name)
	}
	if err := afero.WriteFile(m.fs, m.path(p.Name), data, 0644); err != nil {
		return errors.NewProfileError("failed to write profile", err).WithProfile(p.Name)
	}
	return nil
}

// Create saves a new profile, refusing to overwrite an existing one.
func (m *Manager) Create(p *Profile) error {
	if exists, _ := afero.Exists(m.fs, m.path(p.Name)); exists {
		return errors.NewProfileError("profile already exists", errors.ErrProfileExists).WithProfile(p.Name)
	}
	return m.Save(p)
}

// Delete removes the named profile.
func (m *Manager) Delete(name string) error {
	err := m.fs.Remove(m.path(name))
	if os.IsNotExist(err) {
		return errors.NewProfileError("profile missing", errors.ErrProfileNotFound).WithProfile(name)
	}
	if err != nil {
		return errors.NewProfileError("failed to delete profile", err).WithProfile(name)
	}
	return nil
}

// List returns the names of all stored profiles, sorted.
func (m *Manager) List() ([]string, error) {
	entries, err := afero.ReadDir(m.fs, m.dir)
	if err != nil {
		return nil, errors.NewProfileError("failed to read profiles dir", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name+".yaml")
}
