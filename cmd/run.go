package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/totallynotdavid/music-stats/internal/config"
	"github.com/totallynotdavid/music-stats/internal/domain"
	"github.com/totallynotdavid/music-stats/internal/httpx"
	"github.com/totallynotdavid/music-stats/internal/provider"
	"github.com/totallynotdavid/music-stats/internal/provider/lastfm"
	"github.com/totallynotdavid/music-stats/internal/provider/youtube"
	"github.com/totallynotdavid/music-stats/internal/publish"
	"github.com/totallynotdavid/music-stats/internal/report"
	"github.com/totallynotdavid/music-stats/internal/store"
)

var (
	runDays     uint
	runTopN     int
	runDryRun   bool
	runLogFile  string
	runLogLevel string
	runDataDir  string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, aggregate, and publish recent plays",
	Long: `Run the pipeline once: fetch recent plays from every configured
provider, aggregate them into ranked top-N statistics, and publish the
formatted report to the configured gist.

A provider failure is logged and skipped; the run continues with the
remaining sources. A publish failure is fatal.

Use --dry-run to print the report to stdout instead of publishing.`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().UintVar(&runDays, "days", 0, "Lookback window in days (default from config: 7)")
	runCmd.Flags().IntVar(&runTopN, "top", 0, "Number of top tracks to publish (default from config: 10)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the report instead of publishing it")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Log file path (default: stderr)")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "", "Data directory for the run archive (default: ~/.local/share/music-stats)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if runDays > 0 {
		cfg.Days = runDays
	}
	if runTopN > 0 {
		cfg.TopN = runTopN
	}
	if err := cfg.Validate(!runDryRun); err != nil {
		return err
	}

	logger := setupLogger(runLogFile, runLogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	providers := buildProviders(cfg, logger)
	logger.Info().
		Int("providers", len(providers)).
		Uint("days", cfg.Days).
		Int("top_n", cfg.TopN).
		Msg("Starting pipeline run")

	scrobbles := provider.FetchAll(ctx, logger, providers, cfg.Days)
	stats := domain.Aggregate(scrobbles, cfg.TopN)
	logger.Info().
		Int("total_plays", stats.TotalPlays).
		Int("unique_tracks", stats.UniqueTracks).
		Msg("Aggregated scrobbles")

	content := report.Render(stats)

	if runDryRun {
		fmt.Println(content)
		return nil
	}

	gist := publish.NewGist(publish.Config{
		GistID: cfg.Gist.ID,
		Token:  cfg.Gist.Token,
		Logger: logger,
	})
	err = httpx.Retry(ctx, logger, func() error {
		return gist.Update(ctx, content)
	})
	published := err == nil

	recordRun(ctx, logger, cfg, stats, published)

	if err != nil {
		return fmt.Errorf("publishing report: %w", err)
	}
	logger.Info().Msg("Report published")
	return nil
}

func buildProviders(cfg *config.Config, logger zerolog.Logger) []provider.Provider {
	var providers []provider.Provider
	if cfg.HasLastFM() {
		providers = append(providers, lastfm.New(lastfm.Config{
			APIKey: cfg.LastFM.APIKey,
			User:   cfg.LastFM.User,
			Logger: logger,
		}))
	}
	if cfg.HasYouTube() {
		providers = append(providers, youtube.New(youtube.Config{
			Cookie: cfg.YouTube.Cookie,
			Logger: logger,
		}))
	}
	return providers
}

// recordRun archives the run's aggregate numbers. Archive failures are
// logged and ignored; the archive is a convenience, not pipeline state.
func recordRun(ctx context.Context, logger zerolog.Logger, cfg *config.Config, stats domain.Statistics, published bool) {
	dir, err := dataDir()
	if err != nil {
		logger.Warn().Err(err).Msg("Skipping run archive")
		return
	}

	s, err := store.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		logger.Warn().Err(err).Msg("Skipping run archive")
		return
	}
	defer s.Close()

	run := store.RunSummary{
		FinishedAt:   time.Now(),
		Days:         cfg.Days,
		TotalPlays:   stats.TotalPlays,
		UniqueTracks: stats.UniqueTracks,
		Published:    published,
	}
	if len(stats.TopTracks) > 0 {
		top := stats.TopTracks[0]
		run.TopTrack = fmt.Sprintf("%s – %s", top.ID.Artist, top.ID.Title)
	}

	if err := s.RecordRun(ctx, run); err != nil {
		logger.Warn().Err(err).Msg("Failed to record run")
	}
}

func dataDir() (string, error) {
	if runDataDir != "" {
		dir := runDataDir
		return dir, os.MkdirAll(dir, 0755)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".local", "share", "music-stats")
	return dir, os.MkdirAll(dir, 0755)
}
