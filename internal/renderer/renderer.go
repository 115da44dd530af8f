// Package renderer drives the frame loop. Each tick it advances panel
// playback, installs freshly decoded images from the image slot, and
// hands a composed frame to the presentation backend. New panel groups
// arrive over the rendezvous channel and replace the current one between
// frames.
package renderer

import (
	"context"
	"runtime"
	"time"

	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/event"
	"github.com/driftwall/driftwall/internal/locker"
	"github.com/driftwall/driftwall/internal/logging"
	"github.com/driftwall/driftwall/internal/panel"
	"github.com/driftwall/driftwall/internal/shared"
)

// PanelFrame is one panel's contribution to a frame.
type PanelFrame struct {
	Geometry panel.Geometry
	Cur      *panel.Image
	Next     *panel.Image
	// Alpha is the crossfade weight of Next, in [0, 1].
	Alpha float64
}

// Frame is everything the backend needs to draw one frame.
type Frame struct {
	Number uint64
	Panels []PanelFrame
}

// Presenter draws frames. The real one talks to the compositor; tests
// record what they were given. Present is only ever called from the
// renderer's goroutine. Returning ErrShuttingDown stops the loop
// cleanly, for backends that lose their surface.
type Presenter interface {
	Present(frame Frame) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(frame Frame) error

// Present implements Presenter.
func (f PresenterFunc) Present(frame Frame) error {
	return f(frame)
}

// Service is the render loop.
type Service struct {
	bundle    *shared.Bundle
	presenter Presenter
	bus       *event.Bus
	log       *logging.Logger
	interval  time.Duration
}

// Option configures the service.
type Option func(*Service)

// WithFrameInterval sets the tick period. Defaults to 1/60s.
func WithFrameInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// NewService creates the renderer.
func NewService(bundle *shared.Bundle, presenter Presenter, bus *event.Bus, log *logging.Logger, opts ...Option) *Service {
	s := &Service{
		bundle:    bundle,
		presenter: presenter,
		bus:       bus,
		log:       log.WithTask("renderer"),
		interval:  time.Second / 60,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ticks frames until ctx is cancelled. Presentation APIs are
// thread-affine, so the loop pins itself to its OS thread.
func (s *Service) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkNewGroup()
			if err := s.RenderFrame(); err != nil {
				if errors.Is(err, errors.ErrShuttingDown) {
					return nil
				}
				s.log.Error("frame failed", "error", err)
			}
		}
	}
}

// checkNewGroup polls the rendezvous channel and installs a freshly
// applied panel group. Polling keeps the frame cadence; the sender
// blocks until this side is between frames.
func (s *Service) checkNewGroup() {
	group, ok := s.bundle.PanelGroupRx.TryRecv()
	if !ok {
		return
	}

	tok := locker.Advance[shared.Initial, shared.HeldPlayer](locker.Initial[shared.Initial]())
	groupGuard, tok1 := s.bundle.CurPanelGroup.Lock(tok)
	*groupGuard.Value() = group

	// Drop images decoded for the old group.
	slotGuard, _ := s.bundle.ImageSlot.Lock(tok1)
	if stale := slotGuard.Value().Take(); len(stale) > 0 {
		s.log.Debug("discarded stale images", "count", len(stale))
	}
	slotGuard.Unlock()
	groupGuard.Unlock()

	s.bus.Publish(event.NewPanelGroupChangedEvent(len(group.Panels)))
	s.log.Info("panel group installed", "group", group.Name, "panels", len(group.Panels))
}

// RenderFrame advances playback one frame and presents the result. The
// frame is composed while walking the ladder, but the backend is called
// with every lock released.
func (s *Service) RenderFrame() error {
	frame, ok := s.composeFrame()
	if !ok {
		return nil
	}
	if err := s.presenter.Present(frame); err != nil {
		return errors.NewRenderError("failed to present frame", err).WithFrame(frame.Number)
	}
	return nil
}

func (s *Service) composeFrame() (Frame, bool) {
	tok := locker.Advance[shared.Initial, shared.HeldPlayer](locker.Initial[shared.Initial]())
	groupGuard, tok1 := s.bundle.CurPanelGroup.Lock(tok)
	defer groupGuard.Unlock()

	group := *groupGuard.Value()
	if group == nil {
		return Frame{}, false
	}

	group.Step()

	slotGuard, tok2 := s.bundle.ImageSlot.Lock(tok1)
	for _, img := range slotGuard.Value().Take() {
		if img.PanelIndex >= len(group.Panels) {
			continue
		}
		group.Panels[img.PanelIndex].SwapImage(img.Image)
	}
	defer slotGuard.Unlock()

	shaderGuard, tok3 := s.bundle.Shader.RLock(tok2)
	defer shaderGuard.Unlock()
	shader := *shaderGuard.Value()

	surfaceGuard, _ := s.bundle.Surface.Lock(tok3)
	defer surfaceGuard.Unlock()
	surfaceGuard.Value().Frame++

	frame := Frame{
		Number: surfaceGuard.Value().Frame,
		Panels: make([]PanelFrame, 0, len(group.Panels)),
	}
	for i := range group.Panels {
		p := &group.Panels[i]
		if p.Cur == nil {
			continue
		}
		frame.Panels = append(frame.Panels, PanelFrame{
			Geometry: p.Geometry,
			Cur:      p.Cur,
			Next:     p.Next,
			Alpha:    shader.Alpha(p),
		})
	}
	return frame, true
}
