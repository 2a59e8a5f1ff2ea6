package tools

import (
	"context"

	"insight-engine/internal/insight"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// fakeProvider is a configurable provider for dispatcher and selector tests.
type fakeProvider struct {
	name       string
	keywords   []string
	affinities map[insight.IntentCategory]float64
	class      TimeoutClass
	invoke     func(ctx context.Context, method string, params map[string]any) (any, error)
}

func (p *fakeProvider) Name() string       { return p.name }
func (p *fakeProvider) Keywords() []string { return p.keywords }
func (p *fakeProvider) Class() TimeoutClass {
	if p.class == "" {
		return TimeoutShort
	}
	return p.class
}

func (p *fakeProvider) Affinities() map[insight.IntentCategory]float64 {
	return p.affinities
}

func (p *fakeProvider) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	if p.invoke == nil {
		return map[string]any{"ok": true}, nil
	}
	return p.invoke(ctx, method, params)
}
