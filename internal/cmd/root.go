// Package cmd holds the driftwall command line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/driftwall/driftwall/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "driftwall",
	Short: "Multi-panel wallpaper slideshow",
	Long: `Driftwall cycles wallpapers across configurable monitor panels,
crossfading between images drawn from playlists. Profiles capture panel
layouts and can be switched at runtime from the settings screen.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/driftwall/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/driftwall")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DRIFTWALL")
	// Replace dots with underscores for nested keys in env vars
	// e.g., DRIFTWALL_DISPLAY_FPS for display.fps
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
