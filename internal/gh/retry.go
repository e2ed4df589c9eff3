package gh

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig bounds the retry behavior for rate-limit-class errors.
type RetryConfig struct {
	MaxAttempts uint          // total attempts including the first call
	BaseDelay   time.Duration // initial backoff interval
}

// DefaultRetryConfig matches GitHub's secondary-rate-limit guidance:
// a few attempts with exponential spacing.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 4,
	BaseDelay:   time.Second,
}

// isRateLimitError reports whether an error from gh indicates a
// rate-limit-class condition worth retrying. Permanent errors (not found,
// permission, validation) are never retried.
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"rate limit",
		"secondary rate",
		"abuse detection",
		"http 429",
		"http 502",
		"http 503",
		"was submitted too quickly",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// withRetry runs op, retrying with exponential backoff only when the
// failure is rate-limit-class. Any other error surfaces immediately so the
// caller can apply its own partial-failure policy.
func (c *Client) withRetry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retry.BaseDelay

	attempts := c.retry.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isRateLimitError(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx))
}
