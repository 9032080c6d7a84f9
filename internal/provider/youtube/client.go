// Package youtube scrapes a user's YouTube Music listening history.
//
// The history page gates on a hashed session header derived from the
// user's cookie and embeds its data as a JSON payload inside a script
// tag. Fetching and decoding proceed as a linear chain of stages, each
// failing with a named error: authenticate, sanitize, fetch, extract,
// parse, resolve dates, filter.
package youtube

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/totallynotdavid/music-stats/internal/domain"
	"github.com/totallynotdavid/music-stats/internal/httpx"
)

// DefaultBaseURL is the YouTube Music origin.
const DefaultBaseURL = "https://music.youtube.com"

// Config holds client configuration.
type Config struct {
	Cookie     string           // Required: raw browser cookie for music.youtube.com
	BaseURL    string           // Optional: overridden in tests
	HTTPClient *http.Client     // Optional: defaults to httpx.NewClient()
	Logger     zerolog.Logger   // Optional: defaults to a no-op logger
	Now        func() time.Time // Optional: clock, overridden in tests
}

// Client scrapes the history page for one user session.
type Client struct {
	cookie     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
}

// New creates a YouTube Music history client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		cookie:     cfg.Cookie,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger.With().Str("component", "youtube").Logger(),
		now:        now,
	}
}

// Name implements provider.Provider.
func (c *Client) Name() string { return "youtube" }

// FetchScrobbles scrapes the history page and returns every play whose
// resolved timestamp falls within the last `days` days.
func (c *Client) FetchScrobbles(ctx context.Context, days uint) ([]domain.Scrobble, error) {
	html, err := c.fetchHistoryHTML(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Int("html_bytes", len(html)).Msg("Fetched history page")

	payload, err := extractInitialData(html)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Int("payload_bytes", len(payload)).Msg("Extracted embedded payload")

	now := c.now()
	items, err := parseHistory(payload, now)
	if err != nil {
		return nil, err
	}

	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	var scrobbles []domain.Scrobble
	for _, item := range items {
		if item.playedAt.Before(cutoff) {
			continue
		}
		scrobbles = append(scrobbles, domain.Scrobble{
			Track:    domain.TrackID{Artist: item.artist, Title: item.title},
			PlayedAt: item.playedAt,
		})
	}

	return scrobbles, nil
}

func (c *Client) fetchHistoryHTML(ctx context.Context) (string, error) {
	sapisid, err := extractSAPISID(c.cookie)
	if err != nil {
		return "", err
	}

	reqURL := c.baseURL + "/history"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", &ScrapeError{Detail: "building request: " + err.Error()}
	}
	req.Header.Set("Cookie", sanitizeCookie(c.cookie))
	req.Header.Set("Authorization", authHeader(sapisid, c.now()))
	req.Header.Set("User-Agent", httpx.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &httpx.NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &AuthError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ScrapeError{Detail: "reading response: " + err.Error()}
	}
	return string(body), nil
}
