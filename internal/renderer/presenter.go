package renderer

import (
	"github.com/driftwall/driftwall/internal/logging"
)

// LogPresenter stands in for a compositor backend: it drops the pixels
// and periodically logs what it would have drawn. The run command uses
// it until a platform backend is wired in; headless setups keep it.
type LogPresenter struct {
	log   *logging.Logger
	every uint64
}

// NewLogPresenter creates a presenter logging every nth frame.
func NewLogPresenter(log *logging.Logger, every uint64) *LogPresenter {
	if every == 0 {
		every = 300
	}
	return &LogPresenter{log: log.WithTask("presenter"), every: every}
}

// Present implements Presenter.
func (p *LogPresenter) Present(frame Frame) error {
	if frame.Number%p.every != 0 {
		return nil
	}
	for i, pf := range frame.Panels {
		p.log.Debug("frame",
			"number", frame.Number,
			"panel", i,
			"image", pf.Cur.Path,
			"alpha", pf.Alpha)
	}
	return nil
}
