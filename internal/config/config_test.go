package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("Default() config invalid: %v", ValidationErrors(errs))
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Display.DurationSec != 30 {
		t.Errorf("Display.DurationSec = %d, want 30", cfg.Display.DurationSec)
	}
	if cfg.Display.Shader != "fade" {
		t.Errorf("Display.Shader = %q, want fade", cfg.Display.Shader)
	}
	if !cfg.Playlist.Shuffle {
		t.Error("Playlist.Shuffle = false, want true")
	}
	if cfg.Loader.Workers != 2 {
		t.Errorf("Loader.Workers = %d, want 2", cfg.Loader.Workers)
	}
	if !cfg.Watcher.Enabled {
		t.Error("Watcher.Enabled = false, want true")
	}
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("display.duration_sec", 10)
	viper.Set("loader.workers", 4)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Display.DurationSec != 10 {
		t.Errorf("Display.DurationSec = %d, want 10", cfg.Display.DurationSec)
	}
	if cfg.Loader.Workers != 4 {
		t.Errorf("Loader.Workers = %d, want 4", cfg.Loader.Workers)
	}
	// Untouched keys keep their defaults.
	if cfg.Display.FadePoint != 0.95 {
		t.Errorf("Display.FadePoint = %v, want 0.95", cfg.Display.FadePoint)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("display.duration_sec", -5)
	viper.Set("logging.level", "verbose")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted invalid config")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Display.DurationSec = 0
	cfg.Display.FadePoint = 0.1
	cfg.Display.Shader = "ripple"
	cfg.Loader.Workers = 0
	cfg.Settings.Theme = "neon"

	errs := cfg.Validate()
	if len(errs) != 5 {
		t.Errorf("Validate() returned %d errors, want 5: %v", len(errs), ValidationErrors(errs))
	}
}

func TestValidateBadGlobPattern(t *testing.T) {
	cfg := Default()
	cfg.Playlist.Patterns = []string{"*.png", "[bad"}

	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("Validate() returned %d errors, want 1", len(errs))
	}
	if errs[0].Field != "playlist.patterns" {
		t.Errorf("error field = %q, want playlist.patterns", errs[0].Field)
	}
}

func TestValidationErrorsFormatting(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestFrameInterval(t *testing.T) {
	d := DisplayConfig{FPS: 60}
	if d.FrameInterval().Milliseconds() != 16 {
		t.Errorf("FrameInterval() = %v", d.FrameInterval())
	}

	d.FPS = 0
	if d.FrameInterval() <= 0 {
		t.Error("FrameInterval() with FPS=0 must fall back to a positive interval")
	}
}
