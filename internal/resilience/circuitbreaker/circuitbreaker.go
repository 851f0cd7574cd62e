// Package circuitbreaker stops calling a dependency after it keeps failing
// and probes it again after a cooldown. It wraps sony/gobreaker and exports
// each breaker's state as the circuit_breaker_state gauge.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// ErrOpen is returned without calling the dependency while a breaker is open.
var ErrOpen = gobreaker.ErrOpenState

var stateGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "circuit_breaker_state",
	Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
}, []string{"circuit"})

// Settings tunes one breaker.
type Settings struct {
	Name string
	// HalfOpenProbes is how many calls are let through after Cooldown.
	HalfOpenProbes uint32
	// Window is the period after which closed-state counts reset.
	Window time.Duration
	// Cooldown is how long the breaker stays open.
	Cooldown time.Duration
	// TripRatio is the failure ratio that opens the breaker once
	// MinSamples calls have been seen in the window.
	TripRatio  float64
	MinSamples uint32
	// IsFailure decides which errors count against the breaker. Errors it
	// rejects are still returned to the caller. Nil counts every error.
	IsFailure func(error) bool
}

// RemoteAPI suits the summarization and speech APIs.
func RemoteAPI(name string) Settings {
	return Settings{
		Name:           name,
		HalfOpenProbes: 3,
		Window:         30 * time.Second,
		Cooldown:       time.Minute,
		TripRatio:      0.6,
		MinSamples:     5,
	}
}

// Feeds suits RSS/Atom downloads from one feed host.
func Feeds(name string) Settings {
	return Settings{
		Name:           name,
		HalfOpenProbes: 5,
		Window:         time.Minute,
		Cooldown:       2 * time.Minute,
		TripRatio:      0.7,
		MinSamples:     10,
	}
}

// Sites suits HTML pages on one news site. The long cooldown keeps a blocked
// harvester from hammering that site for the rest of the run.
func Sites(name string) Settings {
	return Settings{
		Name:           name,
		HalfOpenProbes: 3,
		Window:         time.Minute,
		Cooldown:       time.Hour,
		TripRatio:      0.8,
		MinSamples:     5,
	}
}

// Breaker guards calls to one dependency.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a closed breaker.
func New(s Settings) *Breaker {
	stateGauge.WithLabelValues(s.Name).Set(stateValue(gobreaker.StateClosed))
	settings := gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.HalfOpenProbes,
		Interval:    s.Window,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.Requests < s.MinSamples {
				return false
			}
			return float64(c.TotalFailures)/float64(c.Requests) >= s.TripRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			stateGauge.WithLabelValues(name).Set(stateValue(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	if s.IsFailure != nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || !s.IsFailure(err)
		}
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Name returns the breaker's name.
func (b *Breaker) Name() string { return b.cb.Name() }

// State returns the current state.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// IsOpen reports whether calls are currently rejected.
func (b *Breaker) IsOpen() bool { return b.cb.State() == gobreaker.StateOpen }

// Run calls fn through b and returns its typed result.
func Run[T any](b *Breaker, fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := out.(T)
	return v, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
