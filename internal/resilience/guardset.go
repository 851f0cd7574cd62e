package resilience

import (
	"sync"

	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/resilience/retry"
)

// GuardSet hands out one Guard per key, created on first use. Keying by host
// keeps one failing site from opening the breaker of every other site.
type GuardSet struct {
	settings func(key string) circuitbreaker.Settings

	mu     sync.Mutex
	policy retry.Policy
	guards map[string]*Guard
}

// NewGuardSet returns an empty set. settings builds the breaker settings for
// a new key; every guard shares policy.
func NewGuardSet(settings func(key string) circuitbreaker.Settings, policy retry.Policy) *GuardSet {
	return &GuardSet{
		settings: settings,
		policy:   policy,
		guards:   make(map[string]*Guard),
	}
}

// For returns the guard for key.
func (s *GuardSet) For(key string) *Guard {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.guards[key]
	if !ok {
		g = NewGuard(s.settings(key), s.policy)
		s.guards[key] = g
	}
	return g
}

// SetPolicy replaces the retry policy of existing and future guards.
// Call it before the set is in use.
func (s *GuardSet) SetPolicy(p retry.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.policy = p
	for _, g := range s.guards {
		g.Policy = p
	}
}
