// Package retrypolicy provides the bounded linear retry policy used for
// remote downloads: the n-th retry waits n times a fixed step.
package retrypolicy

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Linear is a backoff.BackOff whose wait grows linearly: step, 2*step, 3*step.
type Linear struct {
	Step    time.Duration
	attempt int
}

func NewLinear(step time.Duration) *Linear {
	return &Linear{Step: step}
}

func (l *Linear) NextBackOff() time.Duration {
	l.attempt++
	return time.Duration(l.attempt) * l.Step
}

func (l *Linear) Reset() {
	l.attempt = 0
}

var _ backoff.BackOff = (*Linear)(nil)

// Do runs op at most maxAttempts times with linear backoff between attempts.
// Wrap an error in backoff.Permanent to stop retrying immediately. The
// context cancels waits between attempts.
func Do(ctx context.Context, maxAttempts int, step time.Duration, op func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(NewLinear(step), uint64(maxAttempts-1)),
		ctx,
	)
	return backoff.Retry(op, b)
}
