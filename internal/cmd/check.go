package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/driftwall/driftwall/internal/config"
	"github.com/driftwall/driftwall/internal/errors"
	"github.com/driftwall/driftwall/internal/playlist"
	"github.com/driftwall/driftwall/internal/profile"
	"github.com/driftwall/driftwall/internal/shared"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration, playlists, and profiles",
	Long: `Check loads the configuration, every playlist, and every profile,
reporting anything that would fail at startup. It also verifies the
resource lock-order graph and, with --graph, prints it.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("graph", false, "print the resource lock-order graph")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cmd.Println("config ok")

	fs := afero.NewOsFs()
	failures := 0

	playlists, errs := playlist.LoadDir(fs, cfg.Paths.ResolvePlaylistsDir())
	for _, err := range errs {
		cmd.Printf("playlist: %v\n", err)
		failures++
	}
	for name, pl := range playlists {
		paths, err := pl.Scan(fs)
		if err != nil {
			cmd.Printf("playlist %q: %v\n", name, err)
			failures++
			continue
		}
		cmd.Printf("playlist %q ok (%d items)\n", name, len(paths))
	}

	manager, err := profile.NewManager(fs, cfg.Paths.ResolveProfilesDir())
	if err != nil {
		return err
	}
	names, err := manager.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		prof, err := manager.Load(name)
		if err != nil {
			cmd.Printf("profile %q: %v\n", name, err)
			failures++
			continue
		}
		ok := true
		for _, p := range prof.Panels {
			if _, found := playlists[p.Playlist]; !found {
				cmd.Printf("profile %q: %v\n", name, errors.NewNotFoundError("playlist", p.Playlist))
				failures++
				ok = false
			}
		}
		if ok {
			cmd.Printf("profile %q ok (%d panels)\n", name, len(prof.Panels))
		}
	}

	bundle, err := shared.New()
	if err != nil {
		return fmt.Errorf("lock-order graph: %w", err)
	}
	cmd.Println("lock-order graph ok")

	if showGraph, _ := cmd.Flags().GetBool("graph"); showGraph {
		for _, e := range bundle.Graph().Edges() {
			cmd.Printf("  %-16s %-8s %d -> %d\n", e.Resource, e.Kind, e.From, e.To)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d problems found", failures)
	}
	return nil
}
