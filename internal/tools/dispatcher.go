package tools

import (
	"context"
	"errors"
	"time"

	"insight-engine/internal/insight"
	"insight-engine/pkg/log"
)

// Dispatcher runs selected invocations concurrently against the registry,
// bounded by MaxInFlight, with per-class timeouts, one retry on provider
// errors, and a circuit breaker per provider. It never returns an error
// for a single failed invocation: every path resolves to a typed
// ToolResult.
type Dispatcher struct {
	registry *Registry
	breaker  *breaker
	cfg      DispatchConfig
	l        log.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry, cfg DispatchConfig, l log.Logger) *Dispatcher {
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultDispatchConfig().MaxInFlight
	}
	if cfg.StageTimeout <= 0 {
		cfg.StageTimeout = DefaultDispatchConfig().StageTimeout
	}
	return &Dispatcher{
		registry: registry,
		breaker:  newBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		cfg:      cfg,
		l:        l,
	}
}

type indexedResult struct {
	idx int
	res insight.ToolResult
}

// Dispatch fans out every invocation on its own goroutine and performs a
// bounded wait: it blocks until all invocations resolve or the stage
// timeout elapses, whichever comes first. Invocations still outstanding
// at the deadline are reported as timeout failures; the deferred cancel
// signals them to stop. Results are unordered.
func (d *Dispatcher) Dispatch(ctx context.Context, invs []insight.Invocation) []insight.ToolResult {
	if len(invs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.StageTimeout)
	defer cancel()

	sem := make(chan struct{}, d.cfg.MaxInFlight)
	results := make(chan indexedResult, len(invs))

	for i, inv := range invs {
		go func(idx int, inv insight.Invocation) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- indexedResult{idx, failureResult(inv, insight.FailureTimeout, ctx.Err())}
				return
			}
			results <- indexedResult{idx, d.invoke(ctx, inv)}
		}(i, inv)
	}

	resolved := make(map[int]insight.ToolResult, len(invs))
collect:
	for len(resolved) < len(invs) {
		select {
		case r := <-results:
			resolved[r.idx] = r.res
		case <-ctx.Done():
			break collect
		}
	}

	out := make([]insight.ToolResult, 0, len(invs))
	for i, inv := range invs {
		if res, ok := resolved[i]; ok {
			out = append(out, res)
			continue
		}
		d.l.Warnf(ctx, "Dispatch: provider %s still outstanding at stage deadline", inv.Provider)
		out = append(out, failureResult(inv, insight.FailureTimeout, context.DeadlineExceeded))
	}
	return out
}

// invoke runs one invocation with its timeout and retry policy.
func (d *Dispatcher) invoke(ctx context.Context, inv insight.Invocation) insight.ToolResult {
	provider, ok := d.registry.Get(inv.Provider)
	if !ok {
		return failureResult(inv, insight.FailureNotFound, errors.New("provider not registered"))
	}

	if !d.breaker.Allow(inv.Provider) {
		return failureResult(inv, insight.FailureProvider, errors.New("circuit open"))
	}

	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = d.cfg.timeoutFor(provider.Class())
	}

	attempts := d.cfg.RetryAttempts + 1
	var res insight.ToolResult
	for attempt := 0; attempt < attempts; attempt++ {
		res = d.invokeOnce(ctx, provider, inv, timeout)
		if res.OK() || res.Failure == insight.FailureTimeout {
			break
		}
		// Provider errors get one more try; timeouts do not, the stage
		// budget is already spent.
	}

	d.breaker.Record(inv.Provider, res.OK())
	return res
}

func (d *Dispatcher) invokeOnce(ctx context.Context, provider Provider, inv insight.Invocation, timeout time.Duration) insight.ToolResult {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		payload any
		err     error
	}
	done := make(chan outcome, 1)
	started := time.Now()

	go func() {
		payload, err := provider.Invoke(callCtx, inv.Method, inv.Params)
		done <- outcome{payload, err}
	}()

	select {
	case o := <-done:
		elapsed := time.Since(started)
		if o.err != nil {
			kind := insight.FailureProvider
			if errors.Is(o.err, context.DeadlineExceeded) {
				kind = insight.FailureTimeout
			}
			d.l.Warnf(ctx, "invoke: provider %s method %s failed after %s: %v",
				inv.Provider, inv.Method, elapsed, o.err)
			res := failureResult(inv, kind, o.err)
			res.Elapsed = elapsed
			return res
		}
		return insight.ToolResult{
			Provider: inv.Provider,
			Method:   inv.Method,
			Payload:  o.payload,
			Elapsed:  elapsed,
		}
	case <-callCtx.Done():
		res := failureResult(inv, insight.FailureTimeout, callCtx.Err())
		res.Elapsed = time.Since(started)
		return res
	}
}

func failureResult(inv insight.Invocation, kind insight.FailureKind, err error) insight.ToolResult {
	res := insight.ToolResult{
		Provider: inv.Provider,
		Method:   inv.Method,
		Failure:  kind,
	}
	if err != nil {
		res.Err = err.Error()
	}
	return res
}
