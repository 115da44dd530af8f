package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/driftwall/driftwall/internal/app"
	"github.com/driftwall/driftwall/internal/config"
	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/filelock"
	"github.com/driftwall/driftwall/internal/imgload"
	"github.com/driftwall/driftwall/internal/logging"
	"github.com/driftwall/driftwall/internal/renderer"
	"github.com/driftwall/driftwall/internal/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the wallpaper slideshow",
	Long: `Run starts the slideshow services: the render loop, the image
loader, and the playlist watcher. It applies the configured startup
profile and runs until interrupted.`,
	RunE: runSlideshow,
}

func init() {
	runCmd.Flags().String("profile", "", "profile to apply at startup (overrides config)")
	rootCmd.AddCommand(runCmd)
}

func runSlideshow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if name, _ := cmd.Flags().GetString("profile"); name != "" {
		cfg.Display.Profile = name
	}

	log, err := logging.NewRotatingLogger(cfg.Paths.ResolveStateDir(), cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		return err
	}
	defer log.Close()

	fs := afero.NewOsFs()
	lock, err := filelock.Acquire(fs, cfg.Paths.ResolveStateDir())
	if err != nil {
		return err
	}
	defer lock.Release()

	var notifier watcher.Notifier
	if cfg.Watcher.Enabled {
		notifier, err = watcher.NewNotifier()
		if err != nil {
			return err
		}
	}

	a, err := app.New(cfg, log, fs,
		imgload.NewFileDecoder(fs),
		renderer.NewLogPresenter(log, 300),
		notifier)
	if err != nil {
		if notifier != nil {
			notifier.Close()
		}
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("driftwall starting", "profile", cfg.Display.Profile)
	err = a.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("driftwall stopped")
	return nil
}
