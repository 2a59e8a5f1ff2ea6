package workflow

import (
	"insight-engine/internal/insight"
	"insight-engine/internal/tools"
	pkgLog "insight-engine/pkg/log"
)

type Engine struct {
	l          pkgLog.Logger
	registry   *tools.Registry
	dispatcher *tools.Dispatcher
	memory     ContextStore
	llm        Completer
	cfg        Config
}

var _ insight.UseCase = (*Engine)(nil)

// New creates a workflow engine. memory and llm may be nil; the matching
// stages then degrade instead of failing.
func New(
	l pkgLog.Logger,
	registry *tools.Registry,
	dispatcher *tools.Dispatcher,
	memory ContextStore,
	llm Completer,
	cfg Config,
) *Engine {
	if cfg.HardTimeout <= 0 {
		cfg.HardTimeout = DefaultConfig().HardTimeout
	}
	if cfg.ForecastPeriods <= 0 {
		cfg.ForecastPeriods = DefaultConfig().ForecastPeriods
	}
	return &Engine{
		l:          l,
		registry:   registry,
		dispatcher: dispatcher,
		memory:     memory,
		llm:        llm,
		cfg:        cfg,
	}
}
