// Package errors provides centralized error definitions and error handling
// utilities for the driftwall codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// The concurrency core never originates a recoverable error; everything
// here describes collaborator failures (I/O, decode, parse) that propagate
// to the owning task, which logs and skips the offending item rather than
// aborting the slideshow.
//
// Creating errors:
//
//	err := errors.NewPlaylistError("failed to load playlist", errors.ErrPlaylistNotFound).WithPlaylist("nature")
//	err := errors.NewDecodeError("unsupported image", cause).WithPath("/wp/a.webp")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrPlaylistNotFound) { ... }
//	var decodeErr *errors.DecodeError
//	if errors.As(err, &decodeErr) { ... }
//	if errors.IsRecoverable(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions so callers import only this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo Severity = iota
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require shutting the slideshow down.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Playlist-related sentinel errors
var (
	// ErrPlaylistNotFound indicates a playlist could not be found.
	ErrPlaylistNotFound = New("playlist not found")
	// ErrPlaylistEmpty indicates a playlist has no usable items.
	ErrPlaylistEmpty = New("playlist is empty")
	// ErrPlaylistCorrupted indicates playlist data failed to parse.
	ErrPlaylistCorrupted = New("playlist data corrupted")
)

// Profile-related sentinel errors
var (
	// ErrProfileNotFound indicates a profile could not be found.
	ErrProfileNotFound = New("profile not found")
	// ErrProfileExists indicates a profile with that name already exists.
	ErrProfileExists = New("profile already exists")
	// ErrProfileCorrupted indicates profile data failed to parse.
	ErrProfileCorrupted = New("profile data corrupted")
)

// Image-related sentinel errors
var (
	// ErrDecodeFailed indicates an image could not be decoded.
	ErrDecodeFailed = New("image decode failed")
	// ErrUnsupportedFormat indicates the image format is not supported.
	ErrUnsupportedFormat = New("unsupported image format")
)

// General sentinel errors
var (
	// ErrTimeout indicates an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrShuttingDown indicates an operation was refused during shutdown.
	ErrShuttingDown = New("shutting down")
	// ErrInvalidInput indicates input validation failed.
	ErrInvalidInput = New("invalid input")
)

// baseError provides common functionality for all error types.
type baseError struct {
	message     string
	cause       error
	severity    Severity
	recoverable bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRecoverable returns whether the owning task can log this error and
// skip the offending item rather than exit.
func (e *baseError) IsRecoverable() bool {
	return e.recoverable
}

// PlaylistError represents errors from playlist loading and reshuffling.
//
// Example:
//
//	err := errors.NewPlaylistError("failed to load playlist", errors.ErrPlaylistNotFound).WithPlaylist("nature")
type PlaylistError struct {
	baseError
	Playlist string
	Path     string
}

// NewPlaylistError creates a new PlaylistError.
func NewPlaylistError(message string, cause error) *PlaylistError {
	return &PlaylistError{
		baseError: baseError{
			message:     message,
			cause:       cause,
			severity:    SeverityWarning,
			recoverable: true,
		},
	}
}

// WithPlaylist adds the playlist name to the error context.
func (e *PlaylistError) WithPlaylist(name string) *PlaylistError {
	e.Playlist = name
	return e
}

// WithPath adds the offending path to the error context.
func (e *PlaylistError) WithPath(path string) *PlaylistError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *PlaylistError) Error() string {
	var parts []string
	if e.Playlist != "" {
		parts = append(parts, fmt.Sprintf("playlist=%s", e.Playlist))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	return formatError("playlist error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *PlaylistError) Is(target error) bool {
	if _, ok := target.(*PlaylistError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ProfileError represents errors from profile persistence and application.
type ProfileError struct {
	baseError
	Profile string
}

// NewProfileError creates a new ProfileError.
func NewProfileError(message string, cause error) *ProfileError {
	return &ProfileError{
		baseError: baseError{
			message:     message,
			cause:       cause,
			severity:    SeverityError,
			recoverable: true,
		},
	}
}

// WithProfile adds the profile name to the error context.
func (e *ProfileError) WithProfile(name string) *ProfileError {
	e.Profile = name
	return e
}

// Error returns the formatted error message.
func (e *ProfileError) Error() string {
	var parts []string
	if e.Profile != "" {
		parts = append(parts, fmt.Sprintf("profile=%s", e.Profile))
	}
	return formatError("profile error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *ProfileError) Is(target error) bool {
	if _, ok := target.(*ProfileError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// DecodeError represents an image that could not be turned into a pixel
// buffer. Always recoverable: the loader logs and skips the item.
type DecodeError struct {
	baseError
	Path   string
	Format string
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(message string, cause error) *DecodeError {
	return &DecodeError{
		baseError: baseError{
			message:     message,
			cause:       cause,
			severity:    SeverityWarning,
			recoverable: true,
		},
	}
}

// WithPath adds the image path to the error context.
func (e *DecodeError) WithPath(path string) *DecodeError {
	e.Path = path
	return e
}

// WithFormat adds the detected format to the error context.
func (e *DecodeError) WithFormat(format string) *DecodeError {
	e.Format = format
	return e
}

// Error returns the formatted error message.
func (e *DecodeError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Format != "" {
		parts = append(parts, fmt.Sprintf("format=%s", e.Format))
	}
	return formatError("decode error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *DecodeError) Is(target error) bool {
	if _, ok := target.(*DecodeError); ok {
		return true
	}
	if errors.Is(target, ErrDecodeFailed) {
		return true
	}
	return e.baseError.Is(target)
}

// WatchError represents errors from the filesystem watcher.
type WatchError struct {
	baseError
	Path string
}

// NewWatchError creates a new WatchError.
func NewWatchError(message string, cause error) *WatchError {
	return &WatchError{
		baseError: baseError{
			message:     message,
			cause:       cause,
			severity:    SeverityWarning,
			recoverable: true,
		},
	}
}

// WithPath adds the watched path to the error context.
func (e *WatchError) WithPath(path string) *WatchError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *WatchError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	return formatError("watch error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *WatchError) Is(target error) bool {
	if _, ok := target.(*WatchError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// RenderError represents errors from the presentation surface. Not
// recoverable by skipping an item; the renderer decides whether to retry
// the frame or exit.
type RenderError struct {
	baseError
	Frame uint64
}

// NewRenderError creates a new RenderError.
func NewRenderError(message string, cause error) *RenderError {
	return &RenderError{
		baseError: baseError{
			message:     message,
			cause:       cause,
			severity:    SeverityError,
			recoverable: false,
		},
	}
}

// WithFrame adds the frame number to the error context.
func (e *RenderError) WithFrame(frame uint64) *RenderError {
	e.Frame = frame
	return e
}

// Error returns the formatted error message.
func (e *RenderError) Error() string {
	var parts []string
	if e.Frame > 0 {
		parts = append(parts, fmt.Sprintf("frame=%d", e.Frame))
	}
	return formatError("render error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *RenderError) Is(target error) bool {
	if _, ok := target.(*RenderError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// NotFoundError represents a missing resource.
type NotFoundError struct {
	baseError
	Kind string
	Name string
}

// NewNotFoundError creates a NotFoundError for a resource kind and name.
func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:     fmt.Sprintf("%s %q not found", kind, name),
			severity:    SeverityWarning,
			recoverable: true,
		},
		Kind: kind,
		Name: name,
	}
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:     message,
			severity:    SeverityWarning,
			recoverable: false,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return formatError("validation error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:     operation,
			severity:    SeverityWarning,
			recoverable: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// formatError builds "prefix [k=v, ...]: message: cause".
func formatError(prefix string, parts []string, message string, cause error) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, message, cause)
	}
	return fmt.Sprintf("%s: %s", prefix, message)
}

// classifier is implemented by errors that carry classification metadata.
type classifier interface {
	Severity() Severity
	IsRecoverable() bool
}

// IsRecoverable reports whether the owning task can log err and skip the
// offending item. Unknown errors are not recoverable.
func IsRecoverable(err error) bool {
	var c classifier
	if errors.As(err, &c) {
		return c.IsRecoverable()
	}
	return false
}

// SeverityOf returns err's severity, defaulting to SeverityError for
// errors without classification metadata.
func SeverityOf(err error) Severity {
	var c classifier
	if errors.As(err, &c) {
		return c.Severity()
	}
	return SeverityError
}
