// Package config defines the driftwall configuration, loaded through viper
// from config.yaml, environment variables (DRIFTWALL_ prefix), and flags.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config represents the complete driftwall configuration.
type Config struct {
	Display  DisplayConfig  `mapstructure:"display"`
	Playlist PlaylistConfig `mapstructure:"playlist"`
	Loader   LoaderConfig   `mapstructure:"loader"`
	Watcher  WatcherConfig  `mapstructure:"watcher"`
	Settings SettingsConfig `mapstructure:"settings"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// DisplayConfig controls the slideshow presentation.
type DisplayConfig struct {
	// Profile is the profile applied at startup.
	Profile string `mapstructure:"profile"`
	// DurationSec is how long each image is displayed, in seconds.
	DurationSec int `mapstructure:"duration_sec"`
	// FadePoint is the fraction of the duration at which the crossfade to
	// the next image begins (0.5–1.0).
	FadePoint float64 `mapstructure:"fade_point"`
	// Shader selects the crossfade: "fade" or "none".
	Shader string `mapstructure:"shader"`
	// FPS is the target frame rate of the render loop.
	FPS int `mapstructure:"fps"`
}

// PlaylistConfig controls playlist scanning.
type PlaylistConfig struct {
	// Shuffle randomizes item order each cycle through a playlist.
	Shuffle bool `mapstructure:"shuffle"`
	// Patterns are glob patterns an item must match to be included
	// (e.g. "*.png", "*.jpg"). Empty means everything.
	Patterns []string `mapstructure:"patterns"`
}

// LoaderConfig controls the image loader service.
type LoaderConfig struct {
	// Workers is the number of concurrent decode workers.
	Workers int `mapstructure:"workers"`
	// RetryLimit is how many times a failing item is retried before being
	// dropped from the cycle.
	RetryLimit int `mapstructure:"retry_limit"`
}

// WatcherConfig controls the filesystem watcher.
type WatcherConfig struct {
	// Enabled turns filesystem watching on.
	Enabled bool `mapstructure:"enabled"`
	// DebounceMs coalesces change bursts within this window, in milliseconds.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// SettingsConfig controls the settings UI.
type SettingsConfig struct {
	// Theme is the color theme for the settings UI.
	// Options: "default", "dark", "light"
	Theme string `mapstructure:"theme"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	// Level is the log level: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// MaxSizeMB is the log size before rotation; 0 disables rotation.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated logs to keep.
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated logs.
	Compress bool `mapstructure:"compress"`
}

// PathsConfig controls where driftwall keeps its files.
type PathsConfig struct {
	// StateDir holds logs and runtime state. Empty means the default
	// under the user config dir.
	StateDir string `mapstructure:"state_dir"`
	// ProfilesDir holds profile YAML files. Empty means {config}/profiles.
	ProfilesDir string `mapstructure:"profiles_dir"`
	// PlaylistsDir holds playlist YAML files. Empty means {config}/playlists.
	PlaylistsDir string `mapstructure:"playlists_dir"`
}

// Duration returns the per-image display time as a time.Duration.
func (d *DisplayConfig) Duration() time.Duration {
	return time.Duration(d.DurationSec) * time.Second
}

// FrameInterval returns the render loop tick interval.
func (d *DisplayConfig) FrameInterval() time.Duration {
	if d.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(d.FPS)
}

// Debounce returns the watcher debounce window as a time.Duration.
func (w *WatcherConfig) Debounce() time.Duration {
	return time.Duration(cast.ToInt64(w.DebounceMs)) * time.Millisecond
}

// ResolveStateDir returns the state directory, defaulting under ConfigDir.
func (p *PathsConfig) ResolveStateDir() string {
	if p.StateDir != "" {
		return p.StateDir
	}
	return filepath.Join(ConfigDir(), "state")
}

// ResolveProfilesDir returns the profiles directory, defaulting under ConfigDir.
func (p *PathsConfig) ResolveProfilesDir() string {
	if p.ProfilesDir != "" {
		return p.ProfilesDir
	}
	return filepath.Join(ConfigDir(), "profiles")
}

// ResolvePlaylistsDir returns the playlists directory, defaulting under ConfigDir.
func (p *PathsConfig) ResolvePlaylistsDir() string {
	if p.PlaylistsDir != "" {
		return p.PlaylistsDir
	}
	return filepath.Join(ConfigDir(), "playlists")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Profile:     "",
			DurationSec: 30,
			FadePoint:   0.95,
			Shader:      "fade",
			FPS:         30,
		},
		Playlist: PlaylistConfig{
			Shuffle:  true,
			Patterns: []string{},
		},
		Loader: LoaderConfig{
			Workers:    2,
			RetryLimit: 1,
		},
		Watcher: WatcherConfig{
			Enabled:    true,
			DebounceMs: 500,
		},
		Settings: SettingsConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Paths: PathsConfig{},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("display.profile", defaults.Display.Profile)
	viper.SetDefault("display.duration_sec", defaults.Display.DurationSec)
	viper.SetDefault("display.fade_point", defaults.Display.FadePoint)
	viper.SetDefault("display.shader", defaults.Display.Shader)
	viper.SetDefault("display.fps", defaults.Display.FPS)

	viper.SetDefault("playlist.shuffle", defaults.Playlist.Shuffle)
	viper.SetDefault("playlist.patterns", defaults.Playlist.Patterns)

	viper.SetDefault("loader.workers", defaults.Loader.Workers)
	viper.SetDefault("loader.retry_limit", defaults.Loader.RetryLimit)

	viper.SetDefault("watcher.enabled", defaults.Watcher.Enabled)
	viper.SetDefault("watcher.debounce_ms", defaults.Watcher.DebounceMs)

	viper.SetDefault("settings.theme", defaults.Settings.Theme)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	viper.SetDefault("paths.state_dir", defaults.Paths.StateDir)
	viper.SetDefault("paths.profiles_dir", defaults.Paths.ProfilesDir)
	viper.SetDefault("paths.playlists_dir", defaults.Paths.PlaylistsDir)
}

// Load unmarshals and validates the current viper configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when
// unmarshaling fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "driftwall")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".driftwall"
	}
	return filepath.Join(home, ".config", "driftwall")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
