package resilience_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiji-news/internal/resilience"
	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/resilience/retry"
)

func TestCall_RetriesThroughBreaker(t *testing.T) {
	g := resilience.NewGuard(circuitbreaker.Sites("test-call"), retry.Policy{
		Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Factor: 1,
	})

	calls := 0
	got, err := resilience.Call(context.Background(), g, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &retry.HTTPError{StatusCode: 502, Message: "Bad Gateway"}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestCall_OpenBreakerIsNotRetried(t *testing.T) {
	s := circuitbreaker.Sites("test-open")
	s.MinSamples = 1
	s.TripRatio = 0.1
	g := resilience.NewGuard(s, retry.Policy{Attempts: 5, BaseDelay: time.Millisecond, Factor: 1})

	_, err := resilience.Call(context.Background(), g, func(context.Context) (int, error) {
		return 0, &retry.HTTPError{StatusCode: 500, Message: "Internal Server Error"}
	})
	require.Error(t, err)
	assert.True(t, g.Breaker.IsOpen())

	calls := 0
	_, err = resilience.Call(context.Background(), g, func(context.Context) (int, error) {
		calls++
		return 1, nil
	})
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, 0, calls)
}

func TestGuardSet_KeysHaveSeparateBreakers(t *testing.T) {
	set := resilience.NewGuardSet(func(host string) circuitbreaker.Settings {
		s := circuitbreaker.Sites("test-set:" + host)
		s.MinSamples = 1
		s.TripRatio = 0.1
		return s
	}, retry.Once())

	dead := set.For("fijitimes.com.fj")
	assert.Same(t, dead, set.For("fijitimes.com.fj"))

	_, err := resilience.Call(context.Background(), dead, func(context.Context) (int, error) {
		return 0, &retry.HTTPError{StatusCode: 503, Message: "Service Unavailable"}
	})
	require.Error(t, err)
	assert.True(t, dead.Breaker.IsOpen())

	got, err := resilience.Call(context.Background(), set.For("fbcnews.com.fj"), func(context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, "test-set:fbcnews.com.fj", set.For("fbcnews.com.fj").Breaker.Name())
}

func TestGuardSet_SetPolicy(t *testing.T) {
	set := resilience.NewGuardSet(circuitbreaker.Sites, retry.Default())
	existing := set.For("fijisun.com.fj")

	set.SetPolicy(retry.Once())

	assert.Equal(t, retry.Once(), existing.Policy)
	assert.Equal(t, retry.Once(), set.For("fijivillage.com").Policy)
}
