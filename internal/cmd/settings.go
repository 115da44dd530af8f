package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/driftwall/driftwall/internal/config"
	"github.com/driftwall/driftwall/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Open the interactive profile picker",
	Long: `Settings opens a terminal screen for browsing, creating, and
deleting profiles. Applying a profile records it as the startup profile;
a running slideshow picks it up on its next start.`,
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	manager, err := openProfiles()
	if err != nil {
		return err
	}

	applier := settings.ApplierFunc(func(name string) error {
		viper.Set("display.profile", name)
		if err := viper.WriteConfig(); err != nil {
			// First run has no config file yet.
			return viper.WriteConfigAs(filepath.Join(config.ConfigDir(), "config.yaml"))
		}
		return nil
	})

	return settings.Run(manager, applier,
		settings.WithTheme(config.Get().Settings.Theme))
}
