// Package config loads and validates application configuration from
// environment variables and an optional config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// Days is the lookback window for fetched plays.
	Days uint

	// TopN caps the ranked track listing.
	TopN int

	LastFM  LastFMConfig
	YouTube YouTubeConfig
	Gist    GistConfig
}

// LastFMConfig holds Last.fm provider credentials. The provider is
// configured when both fields are set.
type LastFMConfig struct {
	APIKey string
	User   string
}

// YouTubeConfig holds the YouTube Music session. The provider is
// configured when the cookie is set.
type YouTubeConfig struct {
	Cookie string
}

// GistConfig identifies the publish destination.
type GistConfig struct {
	ID    string
	Token string
}

// ValidationError reports an invalid or missing setting. Configuration
// errors are fatal before any fetch happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Load reads configuration from the config file (if present) and
// environment variables. Environment variables use the MUSIC_STATS
// prefix with underscores, e.g. MUSIC_STATS_LASTFM_API_KEY.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())
	v.AddConfigPath(".")

	v.SetDefault("days", 7)
	v.SetDefault("top_n", 10)

	// Config file is optional; env vars alone are a valid setup.
	_ = v.ReadInConfig()

	v.SetEnvPrefix("MUSIC_STATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Days: v.GetUint("days"),
		TopN: v.GetInt("top_n"),
		LastFM: LastFMConfig{
			APIKey: v.GetString("lastfm.api_key"),
			User:   v.GetString("lastfm.user"),
		},
		YouTube: YouTubeConfig{
			Cookie: v.GetString("youtube.cookie"),
		},
		Gist: GistConfig{
			ID:    v.GetString("gist.id"),
			Token: v.GetString("gist.token"),
		},
	}

	return cfg, nil
}

// HasLastFM reports whether the Last.fm provider is configured.
func (c *Config) HasLastFM() bool {
	return c.LastFM.APIKey != "" && c.LastFM.User != ""
}

// HasYouTube reports whether the YouTube provider is configured.
func (c *Config) HasYouTube() bool {
	return c.YouTube.Cookie != ""
}

// Validate checks the pipeline settings. When publishing is enabled
// the gist destination is required too.
func (c *Config) Validate(publishing bool) error {
	if c.Days == 0 {
		return &ValidationError{Field: "days", Reason: "lookback window must be greater than zero"}
	}
	if c.TopN <= 0 {
		return &ValidationError{Field: "top_n", Reason: "top track cutoff must be greater than zero"}
	}
	if !c.HasLastFM() && !c.HasYouTube() {
		return &ValidationError{
			Field:  "providers",
			Reason: "no providers configured; set lastfm.api_key and lastfm.user, or youtube.cookie",
		}
	}
	if publishing {
		if c.Gist.ID == "" {
			return &ValidationError{Field: "gist.id", Reason: "required to publish"}
		}
		if c.Gist.Token == "" {
			return &ValidationError{Field: "gist.token", Reason: "required to publish"}
		}
	}
	return nil
}

func configDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", "music-stats")
}
