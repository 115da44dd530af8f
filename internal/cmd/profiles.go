package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/driftwall/driftwall/internal/config"
	"github.com/driftwall/driftwall/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage wallpaper profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := openProfiles()
		if err != nil {
			return err
		}
		names, err := manager.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			cmd.Println("no profiles")
			return nil
		}
		startup := config.Get().Display.Profile
		for _, name := range names {
			marker := " "
			if name == startup {
				marker = "*"
			}
			cmd.Printf("%s %s\n", marker, name)
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's panel layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := openProfiles()
		if err != nil {
			return err
		}
		prof, err := manager.Load(args[0])
		if err != nil {
			return err
		}
		cmd.Printf("profile %q, %d panels\n", prof.Name, len(prof.Panels))
		for i, p := range prof.Panels {
			cmd.Printf("  panel %d: %dx%d at (%d,%d), playlist %q, %d frames\n",
				i, p.Geometry.Width, p.Geometry.Height,
				p.Geometry.X, p.Geometry.Y,
				p.Playlist, p.State.Duration)
		}
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := openProfiles()
		if err != nil {
			return err
		}
		if err := manager.Delete(args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted %q\n", args[0])
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	rootCmd.AddCommand(profilesCmd)
}

func openProfiles() (*profile.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return profile.NewManager(afero.NewOsFs(), cfg.Paths.ResolveProfilesDir())
}
