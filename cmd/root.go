package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "music-stats",
	Short: "Publish your recently played music to a gist",
	Long: `music-stats collects your recent listening history from the
configured sources (the Last.fm API and/or your YouTube Music history),
aggregates it into a ranked top-N listing, and publishes the result to
a GitHub gist.

Configuration comes from environment variables (MUSIC_STATS_ prefix)
or ~/.config/music-stats/config.yaml.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
