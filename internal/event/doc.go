// Package event defines the application events that decouple driftwall's
// tasks. The settings UI, playlist watcher, image loader, and renderer
// communicate state changes through the Bus without direct dependencies:
// the watcher publishes playlist.reloaded, the settings UI publishes
// profile.applied, and whoever cares subscribes.
//
// The bus is synchronous: Publish calls every matching handler before
// returning. Handlers must be fast and must never acquire lock-ordered
// resources, since the publisher may hold a guard.
//
// Usage:
//
//	bus := event.NewBus()
//	id := bus.Subscribe("profile.applied", func(e event.Event) {
//	    applied := e.(event.ProfileAppliedEvent)
//	    log.Info("profile applied", "profile", applied.Name)
//	})
//	defer bus.Unsubscribe(id)
//
//	bus.Publish(event.NewProfileAppliedEvent("evening", 3))
package event
