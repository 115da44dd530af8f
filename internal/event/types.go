package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g. "profile.applied", "watch.path_changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// ProfileAppliedEvent is emitted when the settings UI applies a profile.
type ProfileAppliedEvent struct {
	baseEvent
	Name   string // Profile name
	Panels int    // Number of panels in the applied layout
}

// NewProfileAppliedEvent creates a ProfileAppliedEvent.
func NewProfileAppliedEvent(name string, panels int) ProfileAppliedEvent {
	return ProfileAppliedEvent{
		baseEvent: newBaseEvent("profile.applied"),
		Name:      name,
		Panels:    panels,
	}
}

// PlaylistReloadedEvent is emitted when the watcher refreshes a cached
// playlist after a filesystem change.
type PlaylistReloadedEvent struct {
	baseEvent
	Name  string // Playlist name
	Items int    // Number of items after the reload
}

// NewPlaylistReloadedEvent creates a PlaylistReloadedEvent.
func NewPlaylistReloadedEvent(name string, items int) PlaylistReloadedEvent {
	return PlaylistReloadedEvent{
		baseEvent: newBaseEvent("playlist.reloaded"),
		Name:      name,
		Items:     items,
	}
}

// PathChangedEvent is emitted by the filesystem watcher for every change
// under a watched root.
type PathChangedEvent struct {
	baseEvent
	Path string // Changed path
	Op   string // Operation: "create", "write", "remove", "rename"
}

// NewPathChangedEvent creates a PathChangedEvent.
func NewPathChangedEvent(path, op string) PathChangedEvent {
	return PathChangedEvent{
		baseEvent: newBaseEvent("watch.path_changed"),
		Path:      path,
		Op:        op,
	}
}

// ImageLoadedEvent is emitted when the image loader stores a decoded image
// into the image slot.
type ImageLoadedEvent struct {
	baseEvent
	Path string // Source path of the image
}

// NewImageLoadedEvent creates an ImageLoadedEvent.
func NewImageLoadedEvent(path string) ImageLoadedEvent {
	return ImageLoadedEvent{
		baseEvent: newBaseEvent("image.loaded"),
		Path:      path,
	}
}

// ImageSkippedEvent is emitted when an item fails to decode and is skipped.
type ImageSkippedEvent struct {
	baseEvent
	Path   string // Source path of the image
	Reason string // Why the item was skipped
}

// NewImageSkippedEvent creates an ImageSkippedEvent.
func NewImageSkippedEvent(path, reason string) ImageSkippedEvent {
	return ImageSkippedEvent{
		baseEvent: newBaseEvent("image.skipped"),
		Path:      path,
		Reason:    reason,
	}
}

// PanelGroupChangedEvent is emitted when the renderer takes ownership of a
// freshly loaded panel group.
type PanelGroupChangedEvent struct {
	baseEvent
	Panels int // Number of panels in the new group
}

// NewPanelGroupChangedEvent creates a PanelGroupChangedEvent.
func NewPanelGroupChangedEvent(panels int) PanelGroupChangedEvent {
	return PanelGroupChangedEvent{
		baseEvent: newBaseEvent("panel.group_changed"),
		Panels:    panels,
	}
}

// ShutdownEvent is emitted once when the application begins shutting down.
// Tasks get one chance to finish their current unit of work and exit.
type ShutdownEvent struct {
	baseEvent
	Reason string // "signal", "settings", "error"
}

// NewShutdownEvent creates a ShutdownEvent.
func NewShutdownEvent(reason string) ShutdownEvent {
	return ShutdownEvent{
		baseEvent: newBaseEvent("app.shutdown"),
		Reason:    reason,
	}
}
