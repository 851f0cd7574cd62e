// Package resilience combines the circuit breaker and retry policies that
// guard every outbound call: feeds, news sites and the remote APIs.
package resilience

import (
	"context"
	"errors"
	"log/slog"

	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/resilience/retry"
)

// Guard pairs a breaker with the retry policy applied around it.
type Guard struct {
	Breaker *circuitbreaker.Breaker
	Policy  retry.Policy
}

// NewGuard returns a Guard with a fresh breaker.
func NewGuard(s circuitbreaker.Settings, p retry.Policy) *Guard {
	return &Guard{Breaker: circuitbreaker.New(s), Policy: p}
}

// Call runs fn through the breaker, retrying per the policy. Each attempt
// counts against the breaker; a rejection by an open breaker is not retried.
func Call[T any](ctx context.Context, g *Guard, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := retry.Do(ctx, g.Policy, func() error {
		v, err := circuitbreaker.Run(g.Breaker, func() (T, error) {
			return fn(ctx)
		})
		if errors.Is(err, circuitbreaker.ErrOpen) {
			slog.WarnContext(ctx, "circuit breaker open, request rejected",
				slog.String("circuit", g.Breaker.Name()))
		}
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
