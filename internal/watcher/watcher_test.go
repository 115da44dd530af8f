package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/event"
	"github.com/driftwall/driftwall/internal/locker"
	"github.com/driftwall/driftwall/internal/logging"
	"github.com/driftwall/driftwall/internal/playlist"
	"github.com/driftwall/driftwall/internal/shared"
)

type fakeNotifier struct {
	events chan fsnotify.Event
	errs   chan error
	added  []string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		events: make(chan fsnotify.Event, 16),
		errs:   make(chan error, 1),
	}
}

func (f *fakeNotifier) Events() <-chan fsnotify.Event { return f.events }
func (f *fakeNotifier) Errors() <-chan error          { return f.errs }
func (f *fakeNotifier) Add(path string) error {
	f.added = append(f.added, path)
	return nil
}
func (f *fakeNotifier) Close() error { return nil }

// seedBundle installs a playlist over /img and a player with its initial
// scan.
func seedBundle(t *testing.T, b *shared.Bundle, fs afero.Fs) {
	t.Helper()

	pl := &playlist.Playlist{
		Name:  "nature",
		Items: []playlist.Item{{Kind: playlist.KindDirectory, Path: "/img", Enabled: true}},
	}
	paths, err := pl.Scan(fs)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	tok := locker.Initial[shared.Initial]()
	plGuard, tok1 := b.Playlists.Lock(tok)
	plGuard.Value().ByName["nature"] = pl
	playerGuard, _ := b.Player.Lock(tok1)
	playerGuard.Value().ByPlaylist["nature"] = playlist.NewPlayer(paths, playlist.WithShuffle(false))
	playerGuard.Unlock()
	plGuard.Unlock()
}

func playerLen(t *testing.T, b *shared.Bundle) int {
	t.Helper()
	tok := locker.Initial[shared.Initial]()
	plGuard, tok1 := b.Playlists.RLock(tok)
	playerGuard, _ := b.Player.RLock(tok1)
	n := playerGuard.Value().ByPlaylist["nature"].Len()
	playerGuard.Unlock()
	plGuard.Unlock()
	return n
}

func TestWatchPlaylistRootsAddsDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/img/nested/a.png", []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	b, err := shared.New()
	if err != nil {
		t.Fatalf("shared.New() failed: %v", err)
	}
	seedBundle(t, b, fs)

	n := newFakeNotifier()
	s := NewService(b, n, event.NewBus(), logging.NopLogger(), fs)

	if err := s.WatchPlaylistRoots(); err != nil {
		t.Fatalf("WatchPlaylistRoots() failed: %v", err)
	}

	want := map[string]bool{"/img": true, "/img/nested": true}
	for _, path := range n.added {
		delete(want, path)
	}
	if len(want) != 0 {
		t.Errorf("unwatched roots: %v (watched %v)", want, n.added)
	}
}

func TestRefreshPicksUpNewFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/img/a.png", []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	b, err := shared.New()
	if err != nil {
		t.Fatalf("shared.New() failed: %v", err)
	}
	seedBundle(t, b, fs)

	if got := playerLen(t, b); got != 1 {
		t.Fatalf("initial player len = %d, want 1", got)
	}

	if err := afero.WriteFile(fs, "/img/b.png", []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	bus := event.NewBus()
	var reloaded []event.PlaylistReloadedEvent
	bus.Subscribe("playlist.reloaded", func(e event.Event) {
		reloaded = append(reloaded, e.(event.PlaylistReloadedEvent))
	})

	s := NewService(b, newFakeNotifier(), bus, logging.NopLogger(), fs)
	s.Refresh()

	if got := playerLen(t, b); got != 2 {
		t.Errorf("player len after refresh = %d, want 2", got)
	}
	if len(reloaded) != 1 || reloaded[0].Items != 2 {
		t.Errorf("reloaded events = %+v, want one with 2 items", reloaded)
	}
}

func TestRunDebouncesEventBursts(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/img/a.png", []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	b, err := shared.New()
	if err != nil {
		t.Fatalf("shared.New() failed: %v", err)
	}
	seedBundle(t, b, fs)

	bus := event.NewBus()
	changed := make(chan event.PathChangedEvent, 16)
	bus.Subscribe("watch.path_changed", func(e event.Event) {
		changed <- e.(event.PathChangedEvent)
	})

	n := newFakeNotifier()
	s := NewService(b, n, bus, logging.NopLogger(), fs, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()

	// A burst of writes to the same file collapses into one change.
	for i := 0; i < 5; i++ {
		n.events <- fsnotify.Event{Name: "/img/a.png", Op: fsnotify.Write}
	}

	select {
	case ev := <-changed:
		if ev.Path != "/img/a.png" || ev.Op != "write" {
			t.Errorf("event = %+v, want write on /img/a.png", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no path change published after debounce")
	}

	select {
	case ev := <-changed:
		t.Errorf("burst produced a second event: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestRunStopsWhenEventsChannelCloses(t *testing.T) {
	fs := afero.NewMemMapFs()
	b, err := shared.New()
	if err != nil {
		t.Fatalf("shared.New() failed: %v", err)
	}

	n := newFakeNotifier()
	s := NewService(b, n, event.NewBus(), logging.NopLogger(), fs)

	done := make(chan error, 1)
	go func() {
		done <- s.Run(context.Background())
	}()

	close(n.events)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil on closed channel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after events channel closed")
	}
}
