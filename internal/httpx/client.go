// Package httpx provides the shared HTTP plumbing for all providers:
// a client with a fixed per-request ceiling, transient-error
// classification, and a retry wrapper for network calls.
package httpx

import (
	"net/http"
	"time"
)

// UserAgent is sent on scraping requests. YouTube serves a different
// (unusable) page to unrecognized clients.
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// RequestTimeout is the ceiling for any single HTTP request. A request
// that exceeds it surfaces as a network error eligible for retry.
const RequestTimeout = 30 * time.Second

// NewClient returns the HTTP client used by every provider.
func NewClient() *http.Client {
	return &http.Client{Timeout: RequestTimeout}
}
