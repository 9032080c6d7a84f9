package httpx

import (
	"errors"
	"fmt"
	"time"
)

// NetworkError wraps a transport-level failure (connection refused,
// timeout, DNS). It is always transient: the same request may succeed
// on retry.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error accessing %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RateLimitError signals an explicit rate-limit response (HTTP 429).
// Transient by definition.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// IsTransient reports whether err is worth retrying. Only network
// transport failures and rate-limit signals qualify; API errors,
// authentication failures, and scraping errors are permanent.
func IsTransient(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}
