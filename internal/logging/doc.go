// Package logging provides structured logging for driftwall.
//
// It wraps Go's log/slog to produce JSON-formatted logs with persistent
// attributes, so every task (image loader, playlist watcher, renderer,
// settings UI) logs under its own name and the stream can be filtered
// after the fact.
//
// # Basic Usage
//
// Create a logger writing to the state directory:
//
//	logger, err := logging.NewLogger(stateDir, logging.LevelInfo)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("profile applied", "profile", name)
//
// # Child Loggers
//
// Child loggers carry persistent attributes and inherit their parent's:
//
//	taskLog := logger.WithTask("image-loader")
//	taskLog.Warn("decode failed, skipping", "path", p, "error", err)
//
// # Rotation
//
// A slideshow runs for days; NewRotatingLogger writes through a
// RotatingWriter that rotates by size and optionally gzips old files.
//
// All types in this package are safe for concurrent use.
package logging
