// Package publish uploads the rendered report to its destination, a
// GitHub gist updated in place.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/totallynotdavid/music-stats/internal/httpx"
)

// DefaultBaseURL is the GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

const (
	gistFileName    = "lastfm-recent-tracks"
	gistDescription = "What I've been listening to"
)

// Error is a non-success response from the gist API. Publish failures
// are fatal to the run.
type Error struct {
	GistID     string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("publish: updating gist %s failed (status %d): %s", e.GistID, e.StatusCode, e.Body)
}

// Config holds publisher configuration.
type Config struct {
	GistID     string         // Required: gist to update
	Token      string         // Required: GitHub token with gist scope
	BaseURL    string         // Optional: overridden in tests
	HTTPClient *http.Client   // Optional: defaults to httpx.NewClient()
	Logger     zerolog.Logger // Optional: defaults to a no-op logger
}

// Gist publishes report content to one GitHub gist.
type Gist struct {
	gistID     string
	token      string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewGist creates a gist publisher.
func NewGist(cfg Config) *Gist {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient()
	}
	return &Gist{
		gistID:     cfg.GistID,
		token:      cfg.Token,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger.With().Str("component", "publish").Logger(),
	}
}

type gistUpdate struct {
	Description string              `json:"description"`
	Files       map[string]gistFile `json:"files"`
}

type gistFile struct {
	Content string `json:"content"`
}

// Update PATCHes the gist's single report file with new content.
func (g *Gist) Update(ctx context.Context, content string) error {
	payload, err := json.Marshal(gistUpdate{
		Description: gistDescription,
		Files: map[string]gistFile{
			gistFileName: {Content: content},
		},
	})
	if err != nil {
		return fmt.Errorf("publish: encoding payload: %w", err)
	}

	reqURL := g.baseURL + "/gists/" + g.gistID
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("publish: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "music-stats/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &httpx.NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &Error{GistID: g.gistID, StatusCode: resp.StatusCode, Body: string(body)}
	}

	g.logger.Info().Str("gist_id", g.gistID).Msg("Gist updated")
	return nil
}
