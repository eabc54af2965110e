package model

import "time"

// Config is the full runtime configuration, assembled once by the CLI
// from defaults, config file, environment and flags, then passed by
// reference into each component's constructor. No ambient global state.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Data        DataConfig        `yaml:"data"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// HTTPConfig controls the fetch layer's HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	RequestDelay time.Duration `yaml:"request_delay"` // extra pause between page fetches
	RatePerSec   float64       `yaml:"rate_per_sec"`  // per-domain request rate
	RateBurst    int           `yaml:"rate_burst"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
}

// CacheConfig controls the fetch response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// AnalysisConfig holds the fixed scoring rules of the signal engine.
// All values are explainable constants, never fitted.
type AnalysisConfig struct {
	// Reaction-weighted sentiment (PTT)
	PushWeight  float64 `yaml:"push_weight"`
	BooWeight   float64 `yaml:"boo_weight"`
	ArrowWeight float64 `yaml:"arrow_weight"`

	// Label thresholds, applied symmetrically
	BullishThreshold float64 `yaml:"bullish_threshold"`
	BearishThreshold float64 `yaml:"bearish_threshold"`

	// Contrarian extreme-ratio threshold
	ExtremeRatio float64 `yaml:"extreme_ratio"`

	// Buzz detection
	AnomalyThreshold float64 `yaml:"anomaly_threshold"`
	HistoryWindow    int     `yaml:"history_window"`
	MinHistory       int     `yaml:"min_history"`
}

// DataConfig points at the static definition files and persisted state
type DataConfig struct {
	AliasFile        string `yaml:"alias_file"`
	DynamicAliasFile string `yaml:"dynamic_alias_file"`
	RedditAliasFile  string `yaml:"reddit_alias_file"`
	SectorFile       string `yaml:"sector_file"`
	BuzzHistoryFile  string `yaml:"buzz_history_file"`
}

// LLMConfig configures the optional anomaly explainer
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment only, never serialized
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	AsJSON  bool `yaml:"as_json"`
}

// ConcurrencyConfig bounds the fetch layer's parallelism
type ConcurrencyConfig struct {
	FetchWorkers int `yaml:"fetch_workers"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "stockpulse/0.1 (+https://github.com/mkuo/stockpulse)",
			MaxBodyBytes: 2_000_000,
			RequestDelay: 500 * time.Millisecond,
			RatePerSec:   2.0,
			RateBurst:    2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".stockpulse-cache",
			MemoryTTL: 5 * time.Minute,
			DiskTTL:   30 * time.Minute,
		},
		Analysis: AnalysisConfig{
			PushWeight:       1.0,
			BooWeight:        -1.5,
			ArrowWeight:      0.0,
			BullishThreshold: 2.0,
			BearishThreshold: -2.0,
			ExtremeRatio:     0.15,
			AnomalyThreshold: 2.0,
			HistoryWindow:    30,
			MinHistory:       2,
		},
		Data: DataConfig{
			AliasFile:        "data/aliases.yaml",
			DynamicAliasFile: "data/dynamic_aliases.yaml",
			RedditAliasFile:  "data/reddit_aliases.yaml",
			SectorFile:       "data/sectors.yaml",
			BuzzHistoryFile:  "data/buzz_history.json",
		},
		LLM: LLMConfig{
			Provider:  "", // disabled by default
			Timeout:   30,
			MaxTokens: 200,
		},
		Concurrency: ConcurrencyConfig{
			FetchWorkers: 4,
		},
	}
}
