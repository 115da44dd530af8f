package playlist

import (
	"math/rand"

	"github.com/driftwall/driftwall/internal/errors"
)

// Player walks a resolved playlist in shuffled cycles. Each full pass
// through the paths gets its own shuffle so consecutive cycles differ,
// but a single cycle never repeats an image.
type Player struct {
	paths   []string
	order   []int
	pos     int
	shuffle bool
	rng     *rand.Rand
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithShuffle toggles per-cycle shuffling. Defaults to on.
func WithShuffle(shuffle bool) PlayerOption {
	return func(p *Player) {
		p.shuffle = shuffle
	}
}

// WithSeed fixes the shuffle seed. Tests use this for determinism.
func WithSeed(seed int64) PlayerOption {
	return func(p *Player) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// NewPlayer creates a player over the given resolved paths.
func NewPlayer(paths []string, opts ...PlayerOption) *Player {
	p := &Player{
		paths:   append([]string(nil), paths...),
		shuffle: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.reorder()
	return p
}

// Next returns the next path in the current cycle, starting a fresh
// shuffled cycle when the previous one is exhausted. Returns
// ErrPlaylistEmpty when there are no paths at all.
func (p *Player) Next() (string, error) {
	if len(p.paths) == 0 {
		return "", errors.ErrPlaylistEmpty
	}
	if p.pos >= len(p.order) {
		p.reorder()
	}
	path := p.paths[p.order[p.pos]]
	p.pos++
	return path, nil
}

// Len returns the number of paths in the playlist.
func (p *Player) Len() int {
	return len(p.paths)
}

// Replace swaps the path set, for example after a filesystem change
// rescans the playlist. The current cycle restarts.
func (p *Player) Replace(paths []string) {
	p.paths = append([]string(nil), paths...)
	p.reorder()
}

func (p *Player) reorder() {
	p.order = make([]int, len(p.paths))
	for i := range p.order {
		p.order[i] = i
	}
	if p.shuffle && len(p.order) > 1 {
		shuffler := rand.Shuffle
		if p.rng != nil {
			shuffler = p.rng.Shuffle
		}
		shuffler(len(p.order), func(i, j int) {
			p.order[i], p.order[j] = p.order[j], p.order[i]
		})
	}
	p.pos = 0
}
