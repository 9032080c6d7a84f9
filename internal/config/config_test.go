package config

import (
	"errors"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Days: 7,
		TopN: 10,
		LastFM: LastFMConfig{
			APIKey: "key",
			User:   "user",
		},
		Gist: GistConfig{ID: "gist", Token: "token"},
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := validConfig().Validate(true); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		publishing bool
		field      string
	}{
		{
			name:   "zero days",
			mutate: func(c *Config) { c.Days = 0 },
			field:  "days",
		},
		{
			name:   "zero top n",
			mutate: func(c *Config) { c.TopN = 0 },
			field:  "top_n",
		},
		{
			name:   "negative top n",
			mutate: func(c *Config) { c.TopN = -3 },
			field:  "top_n",
		},
		{
			name: "no providers",
			mutate: func(c *Config) {
				c.LastFM = LastFMConfig{}
				c.YouTube = YouTubeConfig{}
			},
			field: "providers",
		},
		{
			name:       "publishing without gist id",
			mutate:     func(c *Config) { c.Gist.ID = "" },
			publishing: true,
			field:      "gist.id",
		},
		{
			name:       "publishing without token",
			mutate:     func(c *Config) { c.Gist.Token = "" },
			publishing: true,
			field:      "gist.token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate(tt.publishing)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestValidateYouTubeOnlyIsEnough(t *testing.T) {
	cfg := validConfig()
	cfg.LastFM = LastFMConfig{}
	cfg.YouTube.Cookie = "SID=x; __Secure-3PAPISID=y"

	if err := cfg.Validate(false); err != nil {
		t.Fatalf("expected youtube-only config to validate, got %v", err)
	}
}

func TestValidateDryRunSkipsGist(t *testing.T) {
	cfg := validConfig()
	cfg.Gist = GistConfig{}

	if err := cfg.Validate(false); err != nil {
		t.Fatalf("expected gist optional when not publishing, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Days != 7 {
		t.Errorf("expected default days 7, got %d", cfg.Days)
	}
	if cfg.TopN != 10 {
		t.Errorf("expected default top_n 10, got %d", cfg.TopN)
	}
}
