// Package app wires the driftwall services together: it seeds the shared
// resource bundle from the configured playlists, applies profiles, and
// supervises the render, load, and watch tasks.
package app

import (
	"context"
	"time"

	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/config"
	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/event"
	"github.com/driftwall/driftwall/internal/imgload"
	"github.com/driftwall/driftwall/internal/locker"
	"github.com/driftwall/driftwall/internal/logging"
	"github.com/driftwall/driftwall/internal/playlist"
	"github.com/driftwall/driftwall/internal/profile"
	"github.com/driftwall/driftwall/internal/renderer"
	"github.com/driftwall/driftwall/internal/shared"
	"github.com/driftwall/driftwall/internal/task"
	"github.com/driftwall/driftwall/internal/watcher"
)

// App is the assembled application.
type App struct {
	cfg    *config.Config
	log    *logging.Logger
	bus    *event.Bus
	fs     afero.Fs
	bundle *shared.Bundle

	profiles *profile.Manager
	loader   *imgload.Service
	renderer *renderer.Service
	watcher  *watcher.Service
}

// New assembles the application. The decoder, presenter, and notifier
// are the platform-facing collaborators; the check command and tests
// pass stubs.
func New(cfg *config.Config, log *logging.Logger, fs afero.Fs,
	decoder imgload.Decoder, presenter renderer.Presenter, notifier watcher.Notifier) (*App, error) {

	bundle, err := shared.New()
	if err != nil {
		return nil, err
	}
	bus := event.NewBus()

	profiles, err := profile.NewManager(fs, cfg.Paths.ResolveProfilesDir())
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		bus:      bus,
		fs:       fs,
		bundle:   bundle,
		profiles: profiles,
		loader: imgload.NewService(bundle, decoder, bus, log,
			imgload.WithWorkers(cfg.Loader.Workers),
			imgload.WithRetries(cfg.Loader.RetryLimit)),
		renderer: renderer.NewService(bundle, presenter, bus, log,
			renderer.WithFrameInterval(cfg.Display.FrameInterval())),
		watcher: watcher.NewService(bundle, notifier, bus, log, fs,
			watcher.WithDebounce(cfg.Watcher.Debounce())),
	}

	if err := a.seedPlaylists(); err != nil {
		return nil, err
	}
	a.seedShader()
	return a, nil
}

// Bundle exposes the shared resources, mainly for the check command's
// graph dump.
func (a *App) Bundle() *shared.Bundle {
	return a.bundle
}

// Profiles exposes the profile store for the settings UI and the
// profiles command.
func (a *App) Profiles() *profile.Manager {
	return a.profiles
}

// Events exposes the event bus.
func (a *App) Events() *event.Bus {
	return a.bus
}

// seedPlaylists loads every playlist from the playlists directory and
// builds a player for each. Playlists without their own patterns
// inherit the configured defaults. Broken playlist files are logged and
// skipped; an empty directory is fine, profiles just cannot apply until
// playlists exist.
func (a *App) seedPlaylists() error {
	dir := a.cfg.Paths.ResolvePlaylistsDir()
	if err := a.fs.MkdirAll(dir, 0755); err != nil {
		return errors.NewPlaylistError("failed to create playlists dir", err).WithPath(dir)
	}

	loaded, errs := playlist.LoadDir(a.fs, dir)
	for _, err := range errs {
		a.log.Warn("skipping playlist", "error", err)
	}

	tok := locker.Initial[shared.Initial]()
	plGuard, tok1 := a.bundle.Playlists.Lock(tok)
	playerGuard, _ := a.bundle.Player.Lock(tok1)
	defer func() {
		playerGuard.Unlock()
		plGuard.Unlock()
	}()

	for name, pl := range loaded {
		if len(pl.Patterns) == 0 {
			pl.Patterns = a.cfg.Playlist.Patterns
		}
		paths, err := pl.Scan(a.fs)
		if err != nil {
			a.log.Warn("skipping playlist", "playlist", name, "error", err)
			continue
		}
		plGuard.Value().ByName[name] = pl
		playerGuard.Value().ByPlaylist[name] = playlist.NewPlayer(paths,
			playlist.WithShuffle(a.cfg.Playlist.Shuffle))
		a.log.Info("playlist loaded", "playlist", name, "items", len(paths))
	}
	return nil
}

// seedShader publishes the configured crossfade parameters for the
// renderer to read each frame.
func (a *App) seedShader() {
	tok := locker.Advance[shared.Initial, shared.HeldImageSlot](locker.Initial[shared.Initial]())
	guard, _ := a.bundle.Shader.Lock(tok)
	defer guard.Unlock()

	guard.Value().Name = a.cfg.Display.Shader
	guard.Value().FadePoint = a.cfg.Display.FadePoint
}

// applyTimeout bounds how long ApplyProfile waits for the renderer to
// claim the new panel group.
const applyTimeout = 30 * time.Second

// ApplyProfile loads the named profile and hands its panel group to the
// renderer. It blocks until the renderer claims the group or ctx ends.
func (a *App) ApplyProfile(ctx context.Context, name string) error {
	prof, err := a.profiles.Load(name)
	if err != nil {
		return err
	}

	if err := a.checkPlaylists(prof); err != nil {
		return err
	}
	a.fillPanelDefaults(prof)

	group := prof.Group()
	tok := locker.Initial[shared.Initial]()
	sendCtx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()
	start := time.Now()
	if _, err := a.bundle.PanelGroupTx.SendContext(sendCtx, tok, group); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errors.NewTimeoutError("apply profile", time.Since(start).Round(time.Millisecond))
		}
		return errors.NewProfileError("renderer never claimed the panel group", err).WithProfile(name)
	}

	a.bus.Publish(event.NewProfileAppliedEvent(name, len(group.Panels)))
	a.log.Info("profile applied", "profile", name, "panels", len(group.Panels))
	return nil
}

// checkPlaylists verifies every playlist the profile references exists.
func (a *App) checkPlaylists(prof *profile.Profile) error {
	tok := locker.Initial[shared.Initial]()
	guard, _ := a.bundle.Playlists.RLock(tok)
	defer guard.Unlock()

	for _, p := range prof.Panels {
		if _, ok := guard.Value().ByName[p.Playlist]; !ok {
			return errors.NewProfileError("profile references unknown playlist",
				errors.ErrPlaylistNotFound).WithProfile(prof.Name)
		}
	}
	return nil
}

// fillPanelDefaults converts the configured display timing into frames
// for panels that do not carry their own.
func (a *App) fillPanelDefaults(prof *profile.Profile) {
	fps := a.cfg.Display.FPS
	if fps <= 0 {
		fps = 30
	}
	for i := range prof.Panels {
		p := &prof.Panels[i]
		if p.State.Duration <= 0 {
			p.State.Duration = a.cfg.Display.DurationSec * fps
		}
		if p.State.FadePoint <= 0 {
			p.State.FadePoint = int(float64(p.State.Duration) * a.cfg.Display.FadePoint)
		}
	}
}

// Run starts the services and blocks until ctx is cancelled or one of
// them fails.
func (a *App) Run(ctx context.Context) error {
	runner := task.NewRunner(ctx, a.log)

	runner.Go("renderer", a.renderer.Run)

	runner.Go("imgload", func(ctx context.Context) error {
		ticker := time.NewTicker(a.loaderInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if _, err := a.loader.LoadPending(ctx); err != nil {
					if lerr := a.handleLoadError(err); lerr != nil {
						return lerr
					}
				}
			}
		}
	})

	if a.cfg.Watcher.Enabled {
		if err := a.watcher.WatchPlaylistRoots(); err != nil {
			return err
		}
		runner.Go("watcher", a.watcher.Run)
	}

	if name := a.cfg.Display.Profile; name != "" {
		runner.Go("startup-profile", func(ctx context.Context) error {
			if err := a.ApplyProfile(ctx, name); err != nil {
				a.log.Error("failed to apply startup profile", "profile", name, "error", err)
			}
			return nil
		})
	}

	err := runner.Wait()
	a.bus.Publish(event.NewShutdownEvent(shutdownReason(err)))
	return err
}

// handleLoadError decides whether a failed load pass ends the task.
// Recoverable failures are logged and the pass skipped; anything else
// propagates and cancels the sibling tasks.
func (a *App) handleLoadError(err error) error {
	if errors.IsRecoverable(err) {
		a.log.Error("image load pass failed", "error", err)
		return nil
	}
	return err
}

// loaderInterval paces the load loop. A fraction of the display time is
// plenty; decoding runs well ahead of the crossfade.
func (a *App) loaderInterval() time.Duration {
	d := a.cfg.Display.Duration() / 4
	if d < 100*time.Millisecond {
		d = 100 * time.Millisecond
	}
	return d
}

func shutdownReason(err error) string {
	if err != nil {
		return "error"
	}
	return "signal"
}
