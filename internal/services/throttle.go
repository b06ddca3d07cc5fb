package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle paces calls to the workspace and the model across candidates.
type Throttle interface {
	Wait(ctx context.Context) error
}

// NewThrottle allows one candidate per delay. The first Wait returns
// immediately. A non-positive delay disables pacing.
func NewThrottle(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// NoThrottle never waits but still honours cancellation.
type NoThrottle struct{}

func (NoThrottle) Wait(ctx context.Context) error {
	return ctx.Err()
}
