package tools

import (
	"context"
	"time"

	"insight-engine/internal/insight"
)

// TimeoutClass groups providers by how long an invocation is allowed to
// run. Database queries get longer budgets than documentation lookups.
type TimeoutClass string

const (
	TimeoutShort  TimeoutClass = "short"
	TimeoutMedium TimeoutClass = "medium"
	TimeoutLong   TimeoutClass = "long"
)

// Provider is one capability the dispatcher can invoke. Implementations
// must be safe for concurrent use across requests.
type Provider interface {
	// Name returns the provider name used in selection and results.
	Name() string

	// Keywords returns the terms matched against the query text.
	Keywords() []string

	// Affinities returns the intent-category affinity table (0..1).
	Affinities() map[insight.IntentCategory]float64

	// Class returns the timeout class for invocations of this provider.
	Class() TimeoutClass

	// Invoke executes one method with the given parameters within the
	// caller's context deadline.
	Invoke(ctx context.Context, method string, params map[string]any) (any, error)
}

// Selection is one scored provider returned by the selector.
type Selection struct {
	Provider string
	Score    float64
	Tier     insight.RelevanceTier
}

// DispatchConfig tunes the dispatcher's concurrency and failure policy.
type DispatchConfig struct {
	MaxInFlight      int
	StageTimeout     time.Duration
	ShortTimeout     time.Duration
	MediumTimeout    time.Duration
	LongTimeout      time.Duration
	RetryAttempts    int
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// DefaultDispatchConfig returns the policy used when config is silent.
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		MaxInFlight:      4,
		StageTimeout:     10 * time.Second,
		ShortTimeout:     2 * time.Second,
		MediumTimeout:    5 * time.Second,
		LongTimeout:      8 * time.Second,
		RetryAttempts:    1,
		BreakerThreshold: 3,
		BreakerCooldown:  30 * time.Second,
	}
}

func (c DispatchConfig) timeoutFor(class TimeoutClass) time.Duration {
	switch class {
	case TimeoutLong:
		return c.LongTimeout
	case TimeoutMedium:
		return c.MediumTimeout
	default:
		return c.ShortTimeout
	}
}
