package tools

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// breaker disables a provider for a cool-down window after N consecutive
// failures, so one misbehaving provider cannot stall every request.
// Open circuits live in an expirable LRU whose TTL is the cool-down:
// eviction closes the circuit again.
type breaker struct {
	mu       sync.Mutex
	failures map[string]int
	open     *expirable.LRU[string, time.Time]
	limit    int
}

func newBreaker(threshold int, cooldown time.Duration) *breaker {
	if threshold <= 0 {
		threshold = 3
	}
	return &breaker{
		failures: make(map[string]int),
		open:     expirable.NewLRU[string, time.Time](256, nil, cooldown),
		limit:    threshold,
	}
}

// Allow reports whether the provider's circuit is closed.
func (b *breaker) Allow(provider string) bool {
	_, isOpen := b.open.Get(provider)
	return !isOpen
}

// Record counts one invocation outcome, opening the circuit when the
// consecutive failure limit is reached.
func (b *breaker) Record(provider string, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		delete(b.failures, provider)
		b.open.Remove(provider)
		return
	}

	b.failures[provider]++
	if b.failures[provider] >= b.limit {
		b.open.Add(provider, time.Now())
		delete(b.failures, provider)
	}
}
