package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config field path (e.g. "display.fade_point")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of valid settings UI themes.
func ValidThemes() []string {
	return []string{"default", "dark", "light"}
}

// ValidShaders returns the list of valid crossfade shaders.
func ValidShaders() []string {
	return []string{"fade", "none"}
}

// Validate checks the Config for invalid values and returns every
// validation error found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Display.DurationSec <= 0 {
		errs = append(errs, ValidationError{
			Field:   "display.duration_sec",
			Value:   c.Display.DurationSec,
			Message: "must be positive",
		})
	}
	if c.Display.FadePoint < 0.5 || c.Display.FadePoint > 1.0 {
		errs = append(errs, ValidationError{
			Field:   "display.fade_point",
			Value:   c.Display.FadePoint,
			Message: "must be between 0.5 and 1.0",
		})
	}
	if !slices.Contains(ValidShaders(), c.Display.Shader) {
		errs = append(errs, ValidationError{
			Field:   "display.shader",
			Value:   c.Display.Shader,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidShaders(), ", ")),
		})
	}
	if c.Display.FPS < 0 || c.Display.FPS > 240 {
		errs = append(errs, ValidationError{
			Field:   "display.fps",
			Value:   c.Display.FPS,
			Message: "must be between 0 and 240",
		})
	}

	for _, pattern := range c.Playlist.Patterns {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, ValidationError{
				Field:   "playlist.patterns",
				Value:   pattern,
				Message: "invalid glob pattern",
			})
		}
	}

	if c.Loader.Workers <= 0 {
		errs = append(errs, ValidationError{
			Field:   "loader.workers",
			Value:   c.Loader.Workers,
			Message: "must be positive",
		})
	}
	if c.Loader.RetryLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "loader.retry_limit",
			Value:   c.Loader.RetryLimit,
			Message: "must not be negative",
		})
	}

	if c.Watcher.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "watcher.debounce_ms",
			Value:   c.Watcher.DebounceMs,
			Message: "must not be negative",
		})
	}

	if !slices.Contains(ValidThemes(), c.Settings.Theme) {
		errs = append(errs, ValidationError{
			Field:   "settings.theme",
			Value:   c.Settings.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must not be negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must not be negative",
		})
	}

	return errs
}
