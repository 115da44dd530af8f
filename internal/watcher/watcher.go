// Package watcher keeps the playlist cache in sync with the filesystem.
// It watches every directory a playlist draws from and, after a debounce
// window, rescans the affected playlists and swaps the refreshed path
// sets into the players.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/event"
	"github.com/driftwall/driftwall/internal/locker"
	"github.com/driftwall/driftwall/internal/logging"
	"github.com/driftwall/driftwall/internal/playlist"
	"github.com/driftwall/driftwall/internal/shared"
)

// Notifier is the filesystem event source. The real one wraps fsnotify;
// tests push events by hand.
type Notifier interface {
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Add(path string) error
	Close() error
}

type fsnotifyNotifier struct {
	w *fsnotify.Watcher
}

// NewNotifier creates a Notifier backed by fsnotify.
func NewNotifier() (Notifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewWatchError("failed to create filesystem watcher", err)
	}
	return &fsnotifyNotifier{w: w}, nil
}

func (n *fsnotifyNotifier) Events() <-chan fsnotify.Event { return n.w.Events }
func (n *fsnotifyNotifier) Errors() <-chan error          { return n.w.Errors }
func (n *fsnotifyNotifier) Add(path string) error         { return n.w.Add(path) }
func (n *fsnotifyNotifier) Close() error                  { return n.w.Close() }

// Service is the playlist refresh service.
type Service struct {
	bundle   *shared.Bundle
	bus      *event.Bus
	log      *logging.Logger
	fs       afero.Fs
	notifier Notifier
	debounce time.Duration
}

// Option configures the service.
type Option func(*Service)

// WithDebounce sets the quiet period after the last event before a
// rescan runs. Defaults to 500ms.
func WithDebounce(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewService creates the watcher service.
func NewService(bundle *shared.Bundle, notifier Notifier, bus *event.Bus, log *logging.Logger, fs afero.Fs, opts ...Option) *Service {
	s := &Service{
		bundle:   bundle,
		bus:      bus,
		log:      log.WithTask("watcher"),
		fs:       fs,
		notifier: notifier,
		debounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WatchPlaylistRoots registers every directory the loaded playlists draw
// from. Directory items are walked so nested changes surface too;
// fsnotify only watches directories, not trees.
func (s *Service) WatchPlaylistRoots() error {
	roots := s.collectRoots()
	for _, root := range roots {
		if err := s.watchTree(root); err != nil {
			s.log.Warn("failed to watch playlist root", "path", root, "error", err)
		}
	}
	s.log.Info("watching playlist roots", "count", len(roots))
	return nil
}

func (s *Service) collectRoots() []string {
	tok := locker.Initial[shared.Initial]()
	guard, _ := s.bundle.Playlists.RLock(tok)
	defer guard.Unlock()

	seen := make(map[string]bool)
	var roots []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}

	for _, pl := range guard.Value().ByName {
		for _, item := range pl.Items {
			if !item.Enabled {
				continue
			}
			switch item.Kind {
			case playlist.KindFile:
				add(filepath.Dir(item.Path))
			case playlist.KindDirectory:
				add(item.Path)
			}
		}
	}
	return roots
}

func (s *Service) watchTree(root string) error {
	if err := s.notifier.Add(root); err != nil {
		return errors.NewWatchError("failed to watch directory", err).WithPath(root)
	}
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if entry.IsDir() {
			_ = s.watchTree(filepath.Join(root, entry.Name()))
		}
	}
	return nil
}

// Run processes filesystem events until ctx is cancelled. Editors fire
// bursts of events per save, so changes collect until the debounce
// window goes quiet, then one rescan covers the whole burst.
func (s *Service) Run(ctx context.Context) error {
	defer s.notifier.Close()

	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	pending := make(map[string]fsnotify.Event)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-s.notifier.Events():
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[ev.Name] = ev
			debounceTimer.Reset(s.debounce)

			// New directories need their own watch.
			if ev.Op&fsnotify.Create != 0 {
				if info, err := s.fs.Stat(ev.Name); err == nil && info.IsDir() {
					_ = s.watchTree(ev.Name)
				}
			}

		case <-debounceTimer.C:
			events := pending
			pending = make(map[string]fsnotify.Event)
			for _, ev := range events {
				s.bus.Publish(event.NewPathChangedEvent(ev.Name, opString(ev.Op)))
			}
			s.Refresh()

		case err, ok := <-s.notifier.Errors():
			if !ok {
				return nil
			}
			s.log.Warn("filesystem watcher error", "error", err)
		}
	}
}

// Refresh rescans every playlist and swaps the refreshed path sets into
// the players. Players whose playlist vanished are left untouched.
func (s *Service) Refresh() {
	tok := locker.Initial[shared.Initial]()
	plGuard, tok1 := s.bundle.Playlists.RLock(tok)
	playerGuard, _ := s.bundle.Player.Lock(tok1)
	defer func() {
		playerGuard.Unlock()
		plGuard.Unlock()
	}()

	for name, pl := range plGuard.Value().ByName {
		player, ok := playerGuard.Value().ByPlaylist[name]
		if !ok {
			continue
		}
		paths, err := pl.Scan(s.fs)
		if err != nil {
			s.log.Warn("failed to rescan playlist", "playlist", name, "error", err)
			continue
		}
		player.Replace(paths)
		s.bus.Publish(event.NewPlaylistReloadedEvent(name, len(paths)))
		s.log.Debug("playlist refreshed", "playlist", name, "items", len(paths))
	}
}

func opString(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	default:
		return "chmod"
	}
}
