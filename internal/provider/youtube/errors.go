package youtube

import "fmt"

// AuthError means the session cookie was rejected or unusable. Never
// retried: a bad cookie will not succeed on a second attempt.
type AuthError struct {
	Reason     string
	StatusCode int
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("youtube: authentication failed: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("youtube: authentication failed: %s (cookie must include __Secure-3PAPISID)", e.Reason)
}

// ScrapeError means the history page no longer matches a structural
// expectation. Never retried: it indicates upstream format drift that
// needs a code change, not another request.
type ScrapeError struct {
	Detail string
}

func (e *ScrapeError) Error() string {
	return "youtube: scraping failed: " + e.Detail
}
