package scrape

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy controls how transient upstream failures are retried.
// It is constructed once and shared; callers never tune backoff inline.
type RetryPolicy struct {
	MaxAttempts int           // total attempts including the first
	Base        time.Duration // exponential backoff base
	Timeout     time.Duration // per-request timeout
}

// DefaultRetryPolicy returns the policy used for scraper and search calls.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Base:        300 * time.Millisecond,
		Timeout:     10 * time.Second,
	}
}

// Do runs fn with exponential backoff. fn marks transient failures with
// retry.RetryableError; any other error stops the loop immediately.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	base := p.Base
	if base <= 0 {
		base = 300 * time.Millisecond
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	b := retry.NewExponential(base)
	return retry.Do(ctx, retry.WithMaxRetries(uint64(attempts-1), b), fn)
}
