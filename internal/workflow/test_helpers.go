package workflow

import (
	"context"
	"errors"
	"time"

	"insight-engine/internal/insight"
	"insight-engine/internal/memory"
	"insight-engine/internal/tools"
	"insight-engine/pkg/llmprovider"
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

// stubMemory is an in-memory ContextStore with a failure switch.
type stubMemory struct {
	failing bool
	turns   []memory.Turn
	saved   []memory.Turn
	profile memory.PreferenceProfile
}

func (s *stubMemory) LoadContext(ctx context.Context, sessionID, queryText string) (memory.ConversationContext, error) {
	if s.failing {
		return memory.ConversationContext{}, errors.New("memory down")
	}
	return memory.ConversationContext{Turns: s.turns}, nil
}

func (s *stubMemory) SaveTurn(ctx context.Context, sessionID, userID string, turn memory.Turn) error {
	if s.failing {
		return errors.New("memory down")
	}
	s.saved = append(s.saved, turn)
	return nil
}

func (s *stubMemory) Preferences(ctx context.Context, userID string) (memory.PreferenceProfile, error) {
	if s.failing {
		return memory.PreferenceProfile{}, errors.New("memory down")
	}
	return s.profile, nil
}

// stubCompleter is a canned text-completion provider.
type stubCompleter struct {
	text    string
	failing bool
	calls   int
}

func (s *stubCompleter) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	s.calls++
	if s.failing {
		return nil, errors.New("completion failed")
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: s.text}}},
		Usage:   &llmprovider.Usage{},
	}, nil
}

// fakeProvider is a scriptable capability provider.
type fakeProvider struct {
	name       string
	keywords   []string
	affinities map[insight.IntentCategory]float64
	class      tools.TimeoutClass
	delay      time.Duration
	invoke     func(ctx context.Context, method string, params map[string]any) (any, error)
}

func (f *fakeProvider) Name() string                                       { return f.name }
func (f *fakeProvider) Keywords() []string                                 { return f.keywords }
func (f *fakeProvider) Affinities() map[insight.IntentCategory]float64     { return f.affinities }
func (f *fakeProvider) Class() tools.TimeoutClass                          { return f.class }

func (f *fakeProvider) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.invoke != nil {
		return f.invoke(ctx, method, params)
	}
	return nil, errors.New("no invoke script")
}

// fastDispatchConfig keeps dispatcher waits short in tests.
func fastDispatchConfig() tools.DispatchConfig {
	return tools.DispatchConfig{
		MaxInFlight:      4,
		StageTimeout:     300 * time.Millisecond,
		ShortTimeout:     60 * time.Millisecond,
		MediumTimeout:    60 * time.Millisecond,
		LongTimeout:      60 * time.Millisecond,
		RetryAttempts:    0,
		BreakerThreshold: 10,
		BreakerCooldown:  time.Second,
	}
}
