// Package imgload feeds decoded images to the panels of the current
// group. It follows the resource ladder downward to find out what each
// panel needs, decodes with no locks held, then re-enters the ladder to
// queue results in the image slot.
package imgload

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/event"
	"github.com/driftwall/driftwall/internal/locker"
	"github.com/driftwall/driftwall/internal/logging"
	"github.com/driftwall/driftwall/internal/panel"
	"github.com/driftwall/driftwall/internal/shared"
)

// Decoder turns an image file into a pixel buffer. The presentation
// backend provides the real one; tests stub it.
type Decoder interface {
	Decode(ctx context.Context, path string) (*panel.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, path string) (*panel.Image, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(ctx context.Context, path string) (*panel.Image, error) {
	return f(ctx, path)
}

// request is one image wanted by one panel.
type request struct {
	panelIndex  int
	path        string
	retriesLeft int
}

// Service is the image loading service.
type Service struct {
	bundle  *shared.Bundle
	decoder Decoder
	bus     *event.Bus
	log     *logging.Logger
	workers int
	retries int
}

// Option configures the service.
type Option func(*Service)

// WithWorkers sets the decode concurrency. Defaults to 4.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRetries sets how many alternative paths to try when a panel's
// image fails to decode. Defaults to 3.
func WithRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// NewService creates the loader.
func NewService(bundle *shared.Bundle, decoder Decoder, bus *event.Bus, log *logging.Logger, opts ...Option) *Service {
	s := &Service{
		bundle:  bundle,
		decoder: decoder,
		bus:     bus,
		log:     log.WithTask("imgload"),
		workers: 4,
		retries: 3,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadPending finds the panels of the current group that want an image,
// decodes one for each, and queues the results in the image slot. It
// returns the number of images delivered. Decode failures skip to the
// playlist's next path until the retry budget runs out.
func (s *Service) LoadPending(ctx context.Context) (int, error) {
	requests, err := s.collect()
	if err != nil {
		return 0, err
	}
	if len(requests) == 0 {
		return 0, nil
	}

	images := s.decodeAll(ctx, requests)
	if len(images) == 0 {
		return 0, nil
	}
	if err := s.deliver(images); err != nil {
		return 0, err
	}
	return len(images), nil
}

// collect walks the ladder from the top to gather one request per needy
// panel, then releases everything before any decoding starts.
func (s *Service) collect() ([]request, error) {
	tok := locker.Initial[shared.Initial]()
	plGuard, tok1 := s.bundle.Playlists.RLock(tok)
	playerGuard, tok2 := s.bundle.Player.Lock(tok1)
	groupGuard, _ := s.bundle.CurPanelGroup.Lock(tok2)
	defer func() {
		groupGuard.Unlock()
		playerGuard.Unlock()
		plGuard.Unlock()
	}()

	group := *groupGuard.Value()
	if group == nil {
		return nil, nil
	}

	var requests []request
	for i := range group.Panels {
		p := &group.Panels[i]
		if !p.NeedsImage() {
			continue
		}
		player, ok := playerGuard.Value().ByPlaylist[p.Playlist]
		if !ok {
			s.log.Warn("panel references unknown playlist",
				"panel", i, "playlist", p.Playlist)
			continue
		}
		path, err := player.Next()
		if err != nil {
			if errors.Is(err, errors.ErrPlaylistEmpty) {
				s.log.Warn("playlist is empty", "playlist", p.Playlist)
				continue
			}
			return nil, err
		}
		requests = append(requests, request{
			panelIndex:  i,
			path:        path,
			retriesLeft: s.retries,
		})
	}
	return requests, nil
}

// decodeAll runs the decoder over all requests on a bounded worker pool.
// A failed decode retries with the playlist's next path; requests that
// exhaust their budget are dropped.
func (s *Service) decodeAll(ctx context.Context, requests []request) []shared.SlotImage {
	p := pool.NewWithResults[*shared.SlotImage]().WithMaxGoroutines(s.workers)
	for _, req := range requests {
		p.Go(func() *shared.SlotImage {
			return s.decodeOne(ctx, req)
		})
	}

	var images []shared.SlotImage
	for _, img := range p.Wait() {
		if img != nil {
			images = append(images, *img)
		}
	}
	return images
}

func (s *Service) decodeOne(ctx context.Context, req request) *shared.SlotImage {
	for {
		img, err := s.decoder.Decode(ctx, req.path)
		if err == nil {
			s.bus.Publish(event.NewImageLoadedEvent(req.path))
			return &shared.SlotImage{PanelIndex: req.panelIndex, Image: img}
		}

		s.log.Warn("failed to decode image", "path", req.path, "error", err)
		s.bus.Publish(event.NewImageSkippedEvent(req.path, err.Error()))

		if req.retriesLeft <= 0 || ctx.Err() != nil {
			return nil
		}
		req.retriesLeft--

		next, ok := s.nextPath(req.panelIndex)
		if !ok {
			return nil
		}
		req.path = next
	}
}

// nextPath asks the panel's playlist for another path after a decode
// failure. It re-enters the ladder from the top; the decode loop holds
// nothing at this point.
func (s *Service) nextPath(panelIndex int) (string, bool) {
	tok := locker.Initial[shared.Initial]()
	plGuard, tok1 := s.bundle.Playlists.RLock(tok)
	playerGuard, tok2 := s.bundle.Player.Lock(tok1)
	groupGuard, _ := s.bundle.CurPanelGroup.Lock(tok2)
	defer func() {
		groupGuard.Unlock()
		playerGuard.Unlock()
		plGuard.Unlock()
	}()

	group := *groupGuard.Value()
	if group == nil || panelIndex >= len(group.Panels) {
		return "", false
	}
	player, ok := playerGuard.Value().ByPlaylist[group.Panels[panelIndex].Playlist]
	if !ok {
		return "", false
	}
	path, err := player.Next()
	if err != nil {
		return "", false
	}
	return path, true
}

// deliver queues decoded images in the image slot, dropping them if the
// panel group changed while decoding ran.
func (s *Service) deliver(images []shared.SlotImage) error {
	tok := locker.Advance[shared.Initial, shared.HeldPlayer](locker.Initial[shared.Initial]())
	groupGuard, tok1 := s.bundle.CurPanelGroup.Lock(tok)
	slotGuard, _ := s.bundle.ImageSlot.Lock(tok1)
	defer func() {
		slotGuard.Unlock()
		groupGuard.Unlock()
	}()

	group := *groupGuard.Value()
	for _, img := range images {
		if group == nil || img.PanelIndex >= len(group.Panels) {
			s.log.Debug("dropping image for vanished panel",
				"panel", img.PanelIndex, "path", img.Image.Path)
			continue
		}
		slotGuard.Value().Images = append(slotGuard.Value().Images, img)
	}
	return nil
}
