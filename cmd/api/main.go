package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"insight-engine/config"
	_ "insight-engine/docs" // Swagger docs
	"insight-engine/internal/httpserver"
	insightHTTP "insight-engine/internal/insight/delivery/http"
	"insight-engine/internal/memory"
	"insight-engine/internal/middleware"
	"insight-engine/internal/tools"
	"insight-engine/internal/tools/providers"
	"insight-engine/internal/workflow"
	"insight-engine/pkg/kvstore"
	"insight-engine/pkg/llmprovider"
	"insight-engine/pkg/log"
	"insight-engine/pkg/tabular"
)

// @title       Insight Engine API
// @description Natural-language analytics over tabular data with tool-assisted enrichment.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Insight Engine...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment)

	// 3. Memory stores. Either store may be absent; the adapter degrades
	// instead of failing requests.
	var kv memory.KVStore
	if cfg.Redis.URL != "" {
		client, redisErr := kvstore.Config{
			URL:          cfg.Redis.URL,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			DialTimeout:  cfg.Redis.DialTimeout,
		}.New(ctx)
		if redisErr != nil {
			logger.Warnf(ctx, "Redis not available, session context disabled: %v", redisErr)
		} else {
			kv = memory.NewRedisKV(client)
			defer client.Close()
			logger.Info(ctx, "Redis session store initialized")
		}
	} else {
		logger.Warn(ctx, "Redis URL not configured, session context disabled")
	}

	var durable memory.DurableStore
	sqliteDurable, sqliteErr := memory.NewSQLiteDurable(cfg.Durable.Path)
	if sqliteErr != nil {
		logger.Warnf(ctx, "Durable store not available, preferences disabled: %v", sqliteErr)
	} else {
		durable = sqliteDurable
		defer sqliteDurable.Close()
	}

	memoryAdapter := memory.New(kv, durable, memory.Config{
		SessionTTL:    cfg.Memory.SessionTTL,
		PreferenceTTL: cfg.Memory.PreferenceTTL,
		MaxTurns:      cfg.Memory.MaxTurns,
		MaxTurnAge:    cfg.Memory.MaxTurnAge,
	}, logger)

	// 4. Tool providers
	registry := tools.NewRegistry()

	dbProvider, dbErr := providers.NewDatabaseProvider(cfg.Durable.Path)
	if dbErr != nil {
		logger.Warnf(ctx, "Database provider not available: %v", dbErr)
	} else {
		defer dbProvider.Close()
		seedMetrics(ctx, logger, dbProvider, filepath.Join(cfg.Dataset.Dir, cfg.Dataset.File))
		registry.Register(dbProvider)
	}

	registry.Register(providers.NewDocSearchProvider(cfg.Docs.Dir))
	registry.Register(providers.NewFileDataProvider(cfg.Dataset.Dir))
	registry.Register(providers.NewVisualizationProvider())

	if cfg.WebSearch.APIKey != "" && cfg.WebSearch.EngineID != "" {
		wsProvider, wsErr := providers.NewWebSearchProvider(ctx, cfg.WebSearch.APIKey, cfg.WebSearch.EngineID)
		if wsErr != nil {
			logger.Warnf(ctx, "Web search provider not available: %v", wsErr)
		} else {
			registry.Register(wsProvider)
		}
	} else {
		logger.Info(ctx, "Web search credentials not configured, skipping provider")
	}

	dispatcher := tools.NewDispatcher(registry, tools.DispatchConfig{
		MaxInFlight:      cfg.Dispatch.MaxInFlight,
		StageTimeout:     cfg.Dispatch.StageTimeout,
		ShortTimeout:     cfg.Dispatch.ShortTimeout,
		MediumTimeout:    cfg.Dispatch.MediumTimeout,
		LongTimeout:      cfg.Dispatch.LongTimeout,
		RetryAttempts:    cfg.Dispatch.RetryAttempts,
		BreakerThreshold: cfg.Dispatch.BreakerThreshold,
		BreakerCooldown:  cfg.Dispatch.BreakerCooldown,
	}, logger)

	// 5. LLM narrative phrasing (optional)
	var completer workflow.Completer
	llmProviders, llmErr := llmprovider.InitializeProviders(&cfg.LLM)
	if llmErr != nil {
		logger.Warnf(ctx, "LLM providers not available, narrative phrasing disabled: %v", llmErr)
	} else {
		completer = llmprovider.NewManager(llmProviders, &llmprovider.Config{
			FallbackEnabled: cfg.LLM.FallbackEnabled,
			RetryAttempts:   cfg.LLM.RetryAttempts,
			RetryDelay:      cfg.LLM.RetryDelay,
			MaxTotalTimeout: cfg.LLM.MaxTotalTimeout,
		}, logger)
		logger.Infof(ctx, "LLM manager initialized with %d provider(s)", len(llmProviders))
	}

	// 6. Workflow engine
	engine := workflow.New(logger, registry, dispatcher, memoryAdapter, completer, workflow.Config{
		HardTimeout:     cfg.Workflow.HardTimeout,
		ForecastPeriods: cfg.Workflow.ForecastPeriods,
		DatasetPath:     cfg.Dataset.File,
	})

	// 7. HTTP delivery
	insightHandler := insightHTTP.New(logger, engine)
	mw := middleware.New(logger, cfg.RateLimit.RequestsPerMin)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment,
		InsightHandler: insightHandler,
		Middleware:     mw,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// seedMetrics loads the sample dataset into the metrics table when the
// table is empty. Missing or malformed files are logged and skipped.
func seedMetrics(ctx context.Context, logger log.Logger, p *providers.DatabaseProvider, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf(ctx, "Sample dataset %s not readable, skipping seed: %v", path, err)
		return
	}

	table, err := tabular.ParseCSV(data)
	if err != nil {
		logger.Warnf(ctx, "Sample dataset %s not parseable, skipping seed: %v", path, err)
		return
	}

	for _, header := range table.Headers {
		values := make([]float64, 0, len(table.Rows))
		for _, row := range table.Rows {
			if v, ok := row[header].(float64); ok {
				values = append(values, v)
			}
		}
		if len(values) < len(table.Rows) || len(values) == 0 {
			continue
		}
		if err := p.Seed(ctx, header, values); err != nil {
			logger.Warnf(ctx, "Failed to seed metric %s: %v", header, err)
			return
		}
		logger.Infof(ctx, "Seeded metric %s with %d values", header, len(values))
		return
	}

	logger.Warnf(ctx, "Sample dataset %s has no fully numeric column, skipping seed", path)
}
