package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/totallynotdavid/music-stats/internal/store"
)

var runsLimit int

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent pipeline runs",
	Long:  `List recent pipeline runs from the local run archive, newest first.`,
	RunE:  listRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVar(&runsLimit, "limit", 10, "Maximum number of runs to show")
	runsCmd.Flags().StringVar(&runDataDir, "data-dir", "", "Data directory for the run archive (default: ~/.local/share/music-stats)")
}

func listRuns(cmd *cobra.Command, args []string) error {
	dir, err := dataDir()
	if err != nil {
		return err
	}

	s, err := store.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(context.Background(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs")
		return nil
	}

	for _, run := range runs {
		status := "published"
		if !run.Published {
			status = "not published"
		}
		top := run.TopTrack
		if top == "" {
			top = "(no plays)"
		}
		fmt.Printf("%s  %3d plays / %3d tracks over %dd  %-13s  %s\n",
			run.FinishedAt.Format("2006-01-02 15:04"),
			run.TotalPlays,
			run.UniqueTracks,
			run.Days,
			status,
			top,
		)
	}
	return nil
}
