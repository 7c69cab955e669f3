package llm

import (
	"fmt"
	"strconv"
	"time"
)

// defaultRetryAfter is the backoff used when a 429 arrives without a usable
// Retry-After header.
const defaultRetryAfter = 60 * time.Second

// RateLimitError reports that a generation provider answered a stage call
// with HTTP 429. The fallback chain opens that provider's circuit for
// RetryAfter and moves on to the next provider.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError wraps err as a RateLimitError for the named provider.
// A retryAfterSecs of zero or less falls back to the default backoff.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	retryAfter := defaultRetryAfter
	if retryAfterSecs > 0 {
		retryAfter = time.Duration(retryAfterSecs) * time.Second
	}
	return &RateLimitError{
		Provider:   provider,
		RetryAfter: retryAfter,
		Err:        err,
	}
}

// ParseRetryAfterHeader reads an integer Retry-After value in seconds.
// Empty values and HTTP-date forms yield 0, which callers treat as
// "use the default backoff".
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
