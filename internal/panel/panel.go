// Package panel models the wallpaper panels driftwall displays: their
// geometry on the monitor, their playback state, and the panel groups a
// profile arranges them into.
package panel

import (
	"fmt"

	"github.com/driftwall/driftwall/internal/errors"
)

// Image is a decoded pixel buffer ready for presentation. Decoding is a
// collaborator concern; the slideshow only moves these around.
type Image struct {
	Path   string
	Width  int
	Height int
	Pixels []byte
}

// Geometry is a panel's placement on the monitor, in pixels.
type Geometry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// State is a panel's playback position. Progress, Duration and FadePoint
// are measured in frames, matching the render loop tick.
type State struct {
	Paused    bool `yaml:"paused"`
	Progress  int  `yaml:"-"`
	Duration  int  `yaml:"duration"`
	FadePoint int  `yaml:"fade_point"`
}

// Panel is one displayed wallpaper slot: where it sits, how it plays, and
// which playlist feeds it.
type Panel struct {
	Geometry Geometry `yaml:"geometry"`
	State    State    `yaml:"state"`
	Playlist string   `yaml:"playlist"`

	// Cur is the displayed image; Next fades in after the fade point.
	// Nil until the loader delivers them.
	Cur  *Image `yaml:"-"`
	Next *Image `yaml:"-"`
}

// Validate checks the panel's static configuration.
func (p *Panel) Validate() error {
	if p.Geometry.Width <= 0 || p.Geometry.Height <= 0 {
		return errors.NewValidationError("panel geometry is empty").
			WithField("geometry").WithValue(fmt.Sprintf("%dx%d", p.Geometry.Width, p.Geometry.Height))
	}
	if p.State.Duration <= 0 {
		return errors.NewValidationError("panel duration must be positive").
			WithField("state.duration").WithValue(p.State.Duration)
	}
	if p.State.FadePoint <= 0 || p.State.FadePoint > p.State.Duration {
		return errors.NewValidationError("panel fade point must be within the duration").
			WithField("state.fade_point").WithValue(p.State.FadePoint)
	}
	if p.Playlist == "" {
		return errors.NewValidationError("panel has no playlist").WithField("playlist")
	}
	return nil
}

// Step advances playback by one frame. It reports whether the panel
// finished its cycle and wants a fresh image.
func (p *Panel) Step() bool {
	if p.State.Paused {
		return false
	}

	if p.State.Progress < p.State.Duration {
		p.State.Progress++
	}
	return p.State.Progress >= p.State.Duration
}

// FadeAlpha returns the crossfade weight of the next image, in [0, 1].
// Zero until the fade point, then linear up to 1 at the end of the cycle.
func (p *Panel) FadeAlpha() float64 {
	return p.FadeAlphaAt(p.State.FadePoint)
}

// FadeAlphaAt is FadeAlpha with the fade point overridden, for callers
// that carry a global crossfade configuration.
func (p *Panel) FadeAlphaAt(fadePoint int) float64 {
	if p.State.Progress <= fadePoint {
		return 0
	}
	span := p.State.Duration - fadePoint
	if span <= 0 {
		return 1
	}
	alpha := float64(p.State.Progress-fadePoint) / float64(span)
	if alpha > 1 {
		return 1
	}
	return alpha
}

// SwapImage installs img as the panel's next image and restarts the
// cycle: the previous next image becomes current.
func (p *Panel) SwapImage(img *Image) {
	if p.Next != nil {
		p.Cur = p.Next
	}
	p.Next = img
	if p.Cur == nil {
		p.Cur = img
	}
	p.State.Progress = 0
}

// NeedsImage reports whether the panel is waiting for its first image or
// has finished its cycle.
func (p *Panel) NeedsImage() bool {
	return p.Cur == nil || p.State.Progress >= p.State.Duration
}
