package httpx

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/rs/zerolog"
)

const retryAttempts = 3

// Overridden in tests to keep backoff waits out of the test run.
var retryBaseDelay = 2 * time.Second

// Retry runs op, retrying transient failures with exponential backoff
// (2s, then 4s, three attempts total). Permanent errors and exhausted
// retries return the last error unchanged.
func Retry(ctx context.Context, logger zerolog.Logger, op func() error) error {
	return retry.Do(
		op,
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(retryBaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsTransient),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn().
				Uint("attempt", attempt+1).
				Int("max_attempts", retryAttempts).
				Err(err).
				Msg("transient error, retrying")
		}),
	)
}
