package service

import (
	"context"
	"math/rand/v2"
	"time"
)

// NetworkDelay simulates latency for the mocks. Waits end early when the
// context is cancelled.
type NetworkDelay struct {
	Min, Max         time.Duration
	LongMin, LongMax time.Duration
}

// DefaultNetworkDelay matches a typical mobile round trip.
var DefaultNetworkDelay = NetworkDelay{
	Min:     500 * time.Millisecond,
	Max:     1500 * time.Millisecond,
	LongMin: 2000 * time.Millisecond,
	LongMax: 3000 * time.Millisecond,
}

// Wait sleeps for a normal request.
func (d NetworkDelay) Wait(ctx context.Context) error {
	return sleep(ctx, pick(d.Min, d.Max))
}

// WaitLong sleeps for an analysis request.
func (d NetworkDelay) WaitLong(ctx context.Context) error {
	return sleep(ctx, pick(d.LongMin, d.LongMax))
}

func pick(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
