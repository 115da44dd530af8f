// Package shared owns the lock-ordered resources the driftwall services
// exchange. Every cross-task mutable value lives here behind a locker
// resource, and the state ladder below fixes the one order in which they
// may be held:
//
//	Initial → Playlists → Player → CurPanelGroup → ImageSlot → Shader → Surface
//
// A task holding a later resource can never wait on an earlier one, so
// any two tasks contending for the same pair of resources always acquire
// them in the same order.
package shared

import (
	"github.com/driftwall/driftwall/internal/locker"
	"github.com/driftwall/driftwall/internal/meetup"
	"github.com/driftwall/driftwall/internal/panel"
	"github.com/driftwall/driftwall/internal/playlist"
)

// Initial is the rank of a task holding nothing.
type Initial struct{}

func (Initial) LockRank() int { return 0 }

// HeldPlaylists marks the playlists resource as held.
type HeldPlaylists struct{}

func (HeldPlaylists) LockRank() int { return 1 }

// HeldPlayer marks the player resource as held.
type HeldPlayer struct{}

func (HeldPlayer) LockRank() int { return 2 }

// HeldPanelGroup marks the current panel group as held.
type HeldPanelGroup struct{}

func (HeldPanelGroup) LockRank() int { return 3 }

// HeldImageSlot marks the image slot as held.
type HeldImageSlot struct{}

func (HeldImageSlot) LockRank() int { return 4 }

// HeldShader marks the shader settings as held.
type HeldShader struct{}

func (HeldShader) LockRank() int { return 5 }

// HeldSurface marks the render surface as held.
type HeldSurface struct{}

func (HeldSurface) LockRank() int { return 6 }

// Playlists is the loaded playlist set, keyed by name.
type Playlists struct {
	ByName map[string]*playlist.Playlist
}

// Players holds the playback cursor for each playlist in use.
type Players struct {
	ByPlaylist map[string]*playlist.Player
}

// SlotImage is a decoded image addressed to one panel of the current
// group.
type SlotImage struct {
	PanelIndex int
	Image      *panel.Image
}

// ImageSlot is the hand-off buffer between the loader and the renderer.
type ImageSlot struct {
	Images []SlotImage
}

// Take empties the slot and returns what was queued.
func (s *ImageSlot) Take() []SlotImage {
	images := s.Images
	s.Images = nil
	return images
}

// Shader names the renderer understands.
const (
	ShaderFade = "fade"
	ShaderNone = "none"
)

// Shader is the crossfade configuration the renderer reads every frame.
// The app seeds it from the display config at startup. A FadePoint in
// (0, 1) overrides every panel's own fade point; zero defers to the
// panels. ShaderNone disables the crossfade entirely.
type Shader struct {
	Name      string
	FadePoint float64
}

// Alpha returns the crossfade weight for p under this configuration.
func (sh *Shader) Alpha(p *panel.Panel) float64 {
	if sh.Name == ShaderNone {
		return 0
	}
	fadePoint := p.State.FadePoint
	if sh.FadePoint > 0 && sh.FadePoint < 1 {
		fadePoint = int(float64(p.State.Duration) * sh.FadePoint)
	}
	return p.FadeAlphaAt(fadePoint)
}

// Surface is the presentation target's mutable state.
type Surface struct {
	Width  int
	Height int
	Frame  uint64
}

// Bundle is the full resource set, created once at startup and handed to
// every service. Resources must not be constructed anywhere else;
// aliasing a value under two names would let two tasks hold it at
// different ranks.
type Bundle struct {
	graph *locker.Graph

	Playlists     *locker.RWMutex[Playlists, Initial, HeldPlaylists, HeldPlaylists]
	Player        *locker.RWMutex[Players, HeldPlaylists, HeldPlayer, HeldPlayer]
	CurPanelGroup *locker.Mutex[*panel.Group, HeldPlayer, HeldPanelGroup]
	ImageSlot     *locker.Mutex[ImageSlot, HeldPanelGroup, HeldImageSlot]
	Shader        *locker.RWMutex[Shader, HeldImageSlot, HeldShader, HeldShader]
	Surface       *locker.Mutex[Surface, HeldShader, HeldSurface]

	// PanelGroupTx rendezvouses newly applied panel groups to the
	// renderer. Sending holds no resources, so it sits at Initial.
	PanelGroupTx *locker.MeetupSender[*panel.Group, Initial]
	// PanelGroupRx is the renderer's end. Receiving blocks but takes no
	// lock, so it needs no token.
	PanelGroupRx meetup.Receiver[*panel.Group]
}

// New builds the bundle and validates the lock-order graph. The graph
// check fires at startup, before any task runs.
func New() (*Bundle, error) {
	g := locker.NewGraph()
	tx, rx := meetup.New[*panel.Group]()

	b := &Bundle{
		graph: g,
		Playlists: locker.NewRWMutex[Playlists, Initial, HeldPlaylists, HeldPlaylists](
			g, "playlists", Playlists{ByName: make(map[string]*playlist.Playlist)}),
		Player: locker.NewRWMutex[Players, HeldPlaylists, HeldPlayer, HeldPlayer](
			g, "player", Players{ByPlaylist: make(map[string]*playlist.Player)}),
		CurPanelGroup: locker.NewMutex[*panel.Group, HeldPlayer, HeldPanelGroup](
			g, "cur-panel-group", nil),
		ImageSlot: locker.NewMutex[ImageSlot, HeldPanelGroup, HeldImageSlot](
			g, "image-slot", ImageSlot{}),
		Shader: locker.NewRWMutex[Shader, HeldImageSlot, HeldShader, HeldShader](
			g, "shader", Shader{Name: ShaderFade}),
		Surface: locker.NewMutex[Surface, HeldShader, HeldSurface](
			g, "surface", Surface{}),
		PanelGroupTx: locker.NewMeetupSender[*panel.Group, Initial](g, "panel-group", tx),
		PanelGroupRx: rx,
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Graph exposes the lock-order graph for diagnostics.
func (b *Bundle) Graph() *locker.Graph {
	return b.graph
}

// Validate re-runs the lock-order graph check. New already validates;
// this exists for callers that want to assert the invariant later.
func (b *Bundle) Validate() error {
	return b.graph.Validate()
}
