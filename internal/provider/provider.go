// Package provider defines the uniform source abstraction and the
// orchestration that combines all configured sources into one scrobble
// list.
package provider

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/totallynotdavid/music-stats/internal/domain"
)

// Provider fetches a user's recent play events from one source.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// FetchScrobbles returns all plays within the last `days` days.
	FetchScrobbles(ctx context.Context, days uint) ([]domain.Scrobble, error)
}

// FetchAll invokes every provider in order and concatenates their
// results. A failing provider is logged and contributes nothing; it
// never aborts the run. Zero configured providers is a configuration
// error caught before this point.
func FetchAll(ctx context.Context, logger zerolog.Logger, providers []Provider, days uint) []domain.Scrobble {
	var scrobbles []domain.Scrobble

	for _, p := range providers {
		fetched, err := p.FetchScrobbles(ctx, days)
		if err != nil {
			logger.Warn().
				Str("provider", p.Name()).
				Err(err).
				Msg("Provider failed, continuing without it")
			continue
		}
		logger.Info().
			Str("provider", p.Name()).
			Int("scrobbles", len(fetched)).
			Msg("Fetched scrobbles")
		scrobbles = append(scrobbles, fetched...)
	}

	return scrobbles
}
