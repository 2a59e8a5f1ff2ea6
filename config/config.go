package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting for the insight engine.
type Config struct {
	Environment string
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig
	Redis       RedisConfig
	Durable     DurableConfig
	Dataset     DatasetConfig
	Docs        DocsConfig
	WebSearch   WebSearchConfig
	Dispatch    DispatchConfig
	Workflow    WorkflowConfig
	Memory      MemoryConfig
	RateLimit   RateLimitConfig
	LLM         LLMConfig
}

type HTTPServerConfig struct {
	Port int
	Mode string // debug or release
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RedisConfig struct {
	URL          string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	DialTimeout  int // seconds
}

type DurableConfig struct {
	Path string // sqlite database file
}

type DatasetConfig struct {
	Dir  string
	File string // default dataset handed to the file provider
}

type DocsConfig struct {
	Dir string
}

type WebSearchConfig struct {
	APIKey   string
	EngineID string
}

// DispatchConfig bounds parallel tool execution.
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

type WorkflowConfig struct {
	HardTimeout     time.Duration
	ForecastPeriods int
}

type MemoryConfig struct {
	SessionTTL    time.Duration
	PreferenceTTL time.Duration
	MaxTurns      int
	MaxTurnAge    time.Duration
}

type RateLimitConfig struct {
	RequestsPerMin int
}

// LLMConfig configures the narrative-phrasing providers. The engine runs
// without any; phrasing falls back to the rule-based composer.
type LLMConfig struct {
	Providers       []LLMProviderConfig
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration
}

type LLMProviderConfig struct {
	Name     string
	Enabled  bool
	Priority int
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// Load reads config.yaml (searched in ./config, ., /etc/insight-engine)
// and overlays environment variables (INSIGHT_HTTP_SERVER_PORT, ...).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/insight-engine")

	v.SetEnvPrefix("INSIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// no file is fine, defaults plus env carry the config
	}

	cfg := &Config{
		Environment: v.GetString("environment"),
		HTTPServer: HTTPServerConfig{
			Port: v.GetInt("http_server.port"),
			Mode: v.GetString("http_server.mode"),
		},
		Logger: LoggerConfig{
			Level:        v.GetString("logger.level"),
			Mode:         v.GetString("logger.mode"),
			Encoding:     v.GetString("logger.encoding"),
			ColorEnabled: v.GetBool("logger.color_enabled"),
		},
		Redis: RedisConfig{
			URL:          expandEnvVar(v.GetString("redis.url")),
			ReadTimeout:  v.GetInt("redis.read_timeout"),
			WriteTimeout: v.GetInt("redis.write_timeout"),
			DialTimeout:  v.GetInt("redis.dial_timeout"),
		},
		Durable: DurableConfig{
			Path: v.GetString("durable.path"),
		},
		Dataset: DatasetConfig{
			Dir:  v.GetString("dataset.dir"),
			File: v.GetString("dataset.file"),
		},
		Docs: DocsConfig{
			Dir: v.GetString("docs.dir"),
		},
		WebSearch: WebSearchConfig{
			APIKey:   expandEnvVar(v.GetString("web_search.api_key")),
			EngineID: expandEnvVar(v.GetString("web_search.engine_id")),
		},
		Dispatch: DispatchConfig{
			MaxInFlight:      v.GetInt("dispatch.max_in_flight"),
			StageTimeout:     v.GetDuration("dispatch.stage_timeout"),
			ShortTimeout:     v.GetDuration("dispatch.short_timeout"),
			MediumTimeout:    v.GetDuration("dispatch.medium_timeout"),
			LongTimeout:      v.GetDuration("dispatch.long_timeout"),
			RetryAttempts:    v.GetInt("dispatch.retry_attempts"),
			BreakerThreshold: v.GetInt("dispatch.breaker_threshold"),
			BreakerCooldown:  v.GetDuration("dispatch.breaker_cooldown"),
		},
		Workflow: WorkflowConfig{
			HardTimeout:     v.GetDuration("workflow.hard_timeout"),
			ForecastPeriods: v.GetInt("workflow.forecast_periods"),
		},
		Memory: MemoryConfig{
			SessionTTL:    v.GetDuration("memory.session_ttl"),
			PreferenceTTL: v.GetDuration("memory.preference_ttl"),
			MaxTurns:      v.GetInt("memory.max_turns"),
			MaxTurnAge:    v.GetDuration("memory.max_turn_age"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMin: v.GetInt("rate_limit.requests_per_min"),
		},
		LLM: LLMConfig{
			FallbackEnabled: v.GetBool("llm.fallback_enabled"),
			RetryAttempts:   v.GetInt("llm.retry_attempts"),
			RetryDelay:      v.GetDuration("llm.retry_delay"),
			MaxTotalTimeout: v.GetDuration("llm.max_total_timeout"),
		},
	}

	cfg.LLM.Providers = parseLLMProviders(v)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.read_timeout", 3)
	v.SetDefault("redis.write_timeout", 3)
	v.SetDefault("redis.dial_timeout", 5)

	v.SetDefault("durable.path", "insight.db")

	v.SetDefault("dataset.dir", "data")
	v.SetDefault("dataset.file", "metrics.csv")

	v.SetDefault("docs.dir", "knowledge")

	v.SetDefault("dispatch.max_in_flight", 4)
	v.SetDefault("dispatch.stage_timeout", "10s")
	v.SetDefault("dispatch.short_timeout", "2s")
	v.SetDefault("dispatch.medium_timeout", "5s")
	v.SetDefault("dispatch.long_timeout", "8s")
	v.SetDefault("dispatch.retry_attempts", 1)
	v.SetDefault("dispatch.breaker_threshold", 3)
	v.SetDefault("dispatch.breaker_cooldown", "30s")

	v.SetDefault("workflow.hard_timeout", "30s")
	v.SetDefault("workflow.forecast_periods", 2)

	v.SetDefault("memory.session_ttl", "24h")
	v.SetDefault("memory.preference_ttl", "720h")
	v.SetDefault("memory.max_turns", 10)
	v.SetDefault("memory.max_turn_age", "12h")

	v.SetDefault("rate_limit.requests_per_min", 120)

	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 2)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")
}

// parseLLMProviders reads the llm.providers list. Viper cannot overlay env
// vars onto list items, so API keys support ${VAR} expansion instead.
func parseLLMProviders(v *viper.Viper) []LLMProviderConfig {
	raw, ok := v.Get("llm.providers").([]interface{})
	if !ok {
		return nil
	}

	providers := make([]LLMProviderConfig, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		providers = append(providers, LLMProviderConfig{
			Name:     getStringFromMap(entry, "name"),
			Enabled:  getBoolFromMap(entry, "enabled"),
			Priority: getIntFromMap(entry, "priority"),
			APIKey:   expandEnvVar(getStringFromMap(entry, "api_key")),
			BaseURL:  getStringFromMap(entry, "base_url"),
			Model:    getStringFromMap(entry, "model"),
			Timeout:  getDurationFromMap(entry, "timeout"),
		})
	}

	return providers
}

func (c *Config) validate() error {
	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("invalid http_server.port: %d", c.HTTPServer.Port)
	}
	if c.HTTPServer.Mode != "debug" && c.HTTPServer.Mode != "release" {
		return fmt.Errorf("invalid http_server.mode: %s", c.HTTPServer.Mode)
	}
	if c.Durable.Path == "" {
		return fmt.Errorf("durable.path is required")
	}
	for _, p := range c.LLM.Providers {
		if p.Enabled && p.Name == "" {
			return fmt.Errorf("llm provider entry missing name")
		}
	}
	return nil
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key].(bool); ok {
		return val
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	switch val := m[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	}
	return 0
}

func getDurationFromMap(m map[string]interface{}, key string) time.Duration {
	s := getStringFromMap(m, key)
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// expandEnvVar resolves ${VAR} references so secrets stay out of the file.
func expandEnvVar(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		name := value[2 : len(value)-1]
		if resolved := os.Getenv(name); resolved != "" {
			return resolved
		}
		return ""
	}
	return value
}
