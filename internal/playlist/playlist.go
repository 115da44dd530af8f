// Package playlist manages the ordered sets of images driftwall cycles
// through. A playlist is a named list of items (files, directories, glob
// filters) persisted as YAML; scanning resolves it to concrete paths, and
// a Player hands those out one at a time, reshuffling each cycle.
package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/driftwall/driftwall/internal/errors"
)

// ItemKind discriminates playlist item types.
type ItemKind string

const (
	// KindFile is a single image file.
	KindFile ItemKind = "file"
	// KindDirectory is a directory of images, optionally recursive.
	KindDirectory ItemKind = "directory"
)

// Item is one entry of a playlist.
type Item struct {
	Kind      ItemKind `yaml:"kind"`
	Path      string   `yaml:"path"`
	Recursive bool     `yaml:"recursive,omitempty"`
	Enabled   bool     `yaml:"enabled"`
}

// Playlist is a named set of items with optional glob filters applied
// during scanning.
type Playlist struct {
	Name     string   `yaml:"name"`
	Items    []Item   `yaml:"items"`
	Patterns []string `yaml:"patterns,omitempty"`
}

// Validate checks the playlist's static configuration.
func (p *Playlist) Validate() error {
	if p.Name == "" {
		return errors.NewValidationError("playlist has no name").WithField("name")
	}
	for i, item := range p.Items {
		switch item.Kind {
		case KindFile, KindDirectory:
		default:
			return errors.NewValidationError("unknown item kind").
				WithField(fmt.Sprintf("items[%d].kind", i)).WithValue(item.Kind)
		}
		if item.Path == "" {
			return errors.NewValidationError("item has no path").
				WithField(fmt.Sprintf("items[%d].path", i))
		}
	}
	for _, pattern := range p.Patterns {
		if _, err := glob.Compile(pattern); err != nil {
			return errors.NewValidationError("invalid glob pattern").
				WithField("patterns").WithValue(pattern)
		}
	}
	return nil
}

// Load reads and validates a playlist from a YAML file.
func Load(fs afero.Fs, path string) (*Playlist, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewPlaylistError("playlist file missing", errors.ErrPlaylistNotFound).WithPath(path)
		}
		return nil, errors.NewPlaylistError("failed to read playlist", err).WithPath(path)
	}

	var pl Playlist
	if err := yaml.Unmarshal(data, &pl); err != nil {
		return nil, errors.NewPlaylistError("failed to parse playlist", errors.ErrPlaylistCorrupted).WithPath(path)
	}
	if pl.Name == "" {
		pl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := pl.Validate(); err != nil {
		return nil, errors.NewPlaylistError("invalid playlist", err).WithPlaylist(pl.Name)
	}
	return &pl, nil
}

// Save writes a playlist to a YAML file.
func Save(fs afero.Fs, path string, pl *Playlist) error {
	if err := pl.Validate(); err != nil {
		return errors.NewPlaylistError("invalid playlist", err).WithPlaylist(pl.Name)
	}

	data, err := yaml.Marshal(pl)
	if err != nil {
		return errors.NewPlaylistError("failed to serialize playlist", err).WithPlaylist(pl.Name)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.NewPlaylistError("failed to write playlist", err).WithPath(path)
	}
	return nil
}

// LoadDir loads every *.yaml playlist in dir, keyed by name. Unparseable
// files are skipped and reported in the returned error list; callers log
// and keep going.
func LoadDir(fs afero.Fs, dir string) (map[string]*Playlist, []error) {
	entries, err := afero.ReadDir(fs, dir)
	if os.IsNotExist(err) {
		return map[string]*Playlist{}, nil
	}
	if err != nil {
		return nil, []error{errors.NewPlaylistError("failed to read playlists dir", err).WithPath(dir)}
	}

	playlists := make(map[string]*Playlist)
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		pl, err := Load(fs, filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		playlists[pl.Name] = pl
	}
	return playlists, errs
}

// Scan resolves the playlist to concrete file paths: enabled file items
// directly, enabled directory items by walking, everything filtered
// through the playlist's glob patterns (match on base name).
func (p *Playlist) Scan(fs afero.Fs) ([]string, error) {
	globs := make([]glob.Glob, 0, len(p.Patterns))
	for _, pattern := range p.Patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewPlaylistError("invalid pattern", err).WithPlaylist(p.Name)
		}
		globs = append(globs, g)
	}

	match := func(path string) bool {
		if len(globs) == 0 {
			return true
		}
		base := filepath.Base(path)
		for _, g := range globs {
			if g.Match(base) {
				return true
			}
		}
		return false
	}

	var paths []string
	for _, item := range p.Items {
		if !item.Enabled {
			continue
		}
		switch item.Kind {
		case KindFile:
			if match(item.Path) {
				paths = append(paths, item.Path)
			}
		case KindDirectory:
			found, err := scanDir(fs, item.Path, item.Recursive, match)
			if err != nil {
				return nil, errors.NewPlaylistError("failed to scan directory", err).
					WithPlaylist(p.Name).WithPath(item.Path)
			}
			paths = append(paths, found...)
		}
	}
	return paths, nil
}

func scanDir(fs afero.Fs, dir string, recursive bool, match func(string) bool) ([]string, error) {
	var paths []string
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if !recursive {
				continue
			}
			sub, err := scanDir(fs, full, true, match)
			if err != nil {
				return nil, err
			}
			paths = append(paths, sub...)
			continue
		}
		if match(full) {
			paths = append(paths, full)
		}
	}
	return paths, nil
}
