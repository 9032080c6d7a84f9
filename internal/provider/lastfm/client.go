// Package lastfm fetches a user's recent scrobbles from the Last.fm
// API, draining the paginated user.getrecenttracks endpoint into a
// flat list.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/totallynotdavid/music-stats/internal/domain"
	"github.com/totallynotdavid/music-stats/internal/httpx"
)

const (
	// DefaultBaseURL is the Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"

	pageLimit = 200

	// maxPages caps pagination regardless of what the API declares.
	// Protects against irregular responses producing unbounded loops.
	maxPages = 10

	// pageInterval spaces page requests. The limiter starts with a
	// full token, so the first page is never delayed.
	pageInterval = 200 * time.Millisecond
)

// APIError is a non-success response from the Last.fm API. It carries
// the HTTP status and body, and is never retried: it signals a problem
// with the request itself, not the transport.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lastfm: API error (status %d): %s", e.StatusCode, e.Body)
}

// Config holds client configuration.
type Config struct {
	APIKey     string         // Required: Last.fm API key
	User       string         // Required: Last.fm username
	BaseURL    string         // Optional: overridden in tests
	HTTPClient *http.Client   // Optional: defaults to httpx.NewClient()
	Logger     zerolog.Logger // Optional: defaults to a no-op logger
}

// Client fetches recent tracks for one Last.fm user.
type Client struct {
	apiKey     string
	user       string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// New creates a Last.fm client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		user:       cfg.User,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(pageInterval), 1),
		logger:     cfg.Logger.With().Str("component", "lastfm").Logger(),
	}
}

// Name implements provider.Provider.
func (c *Client) Name() string { return "lastfm" }

// FetchScrobbles returns every scrobble within the last `days` days,
// draining up to maxPages pages of the recent-tracks endpoint.
func (c *Client) FetchScrobbles(ctx context.Context, days uint) ([]domain.Scrobble, error) {
	from := fromTimestamp(time.Now(), days)

	var scrobbles []domain.Scrobble
	page := 1

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.fetchPage(ctx, page, from)
		if err != nil {
			return nil, err
		}

		for _, t := range resp.RecentTracks.Track {
			if s, ok := t.toScrobble(); ok {
				scrobbles = append(scrobbles, s)
			}
		}

		totalPages := resp.RecentTracks.totalPages()
		if page >= totalPages || page >= maxPages {
			break
		}

		if totalPages > 1 {
			c.logger.Info().
				Int("page", page+1).
				Int("total_pages", totalPages).
				Msg("Fetching next page")
		}
		page++
	}

	return scrobbles, nil
}

func (c *Client) fetchPage(ctx context.Context, page int, from int64) (*apiResponse, error) {
	query := url.Values{}
	query.Set("method", "user.getrecenttracks")
	query.Set("user", c.user)
	query.Set("api_key", c.apiKey)
	query.Set("limit", strconv.Itoa(pageLimit))
	query.Set("from", strconv.FormatInt(from, 10))
	query.Set("page", strconv.Itoa(page))
	query.Set("format", "json")

	reqURL := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("lastfm: building request: %w", err)
	}
	req.Header.Set("User-Agent", httpx.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &httpx.NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &httpx.RateLimitError{RetryAfter: retryAfter(resp)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &httpx.NetworkError{URL: reqURL, Err: err}
	}
	return &parsed, nil
}

// fromTimestamp computes the window start in unix seconds, saturating
// at zero for windows reaching past the epoch.
func fromTimestamp(now time.Time, days uint) int64 {
	from := now.Unix() - int64(days)*86400
	if from < 0 {
		return 0
	}
	return from
}

func retryAfter(resp *http.Response) time.Duration {
	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
