package model

import "time"

// Config is the complete factcheck configuration
type Config struct {
	Matching     MatchingConfig     `yaml:"matching" mapstructure:"matching"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	KB           KBConfig           `yaml:"kb" mapstructure:"kb"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Probe        ProbeConfig        `yaml:"probe" mapstructure:"probe"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// MatchingConfig tunes the comparison rules of the evaluation engine
type MatchingConfig struct {
	// TolerancePercent is the relative difference accepted by the numeric matcher
	TolerancePercent float64 `yaml:"tolerance_percent" mapstructure:"tolerance_percent"`

	// URLProtocolFlexible ignores http vs https differences
	URLProtocolFlexible bool `yaml:"url_protocol_flexible" mapstructure:"url_protocol_flexible"`

	// URLWWWFlexible ignores a leading "www." host label
	URLWWWFlexible bool `yaml:"url_www_flexible" mapstructure:"url_www_flexible"`

	Location LocationScores `yaml:"location" mapstructure:"location"`
}

// LocationScores are the partial-match scores of the location matcher.
// Ordering must stay containment > municipality exact > municipality substring.
type LocationScores struct {
	Containment           int `yaml:"containment" mapstructure:"containment"`
	MunicipalityExact     int `yaml:"municipality_exact" mapstructure:"municipality_exact"`
	MunicipalitySubstring int `yaml:"municipality_substring" mapstructure:"municipality_substring"`
}

// LLMConfig configures the language-model provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama or empty (disabled)
	Model     string `yaml:"model" mapstructure:"model"`       // Empty selects the provider's default
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Pattern   string `yaml:"pattern" mapstructure:"pattern"` // Question template name
}

// KBConfig configures the knowledge-base client
type KBConfig struct {
	BaseURL   string   `yaml:"base_url" mapstructure:"base_url"`
	Languages []string `yaml:"languages" mapstructure:"languages"`
	MaxHops   int      `yaml:"max_hops" mapstructure:"max_hops"` // Location chain depth
}

// HTTPConfig configures outbound HTTP
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent  string        `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures the KB document cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures batch workers
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles requests per remote host
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ProbeConfig configures the reachability probe for URLs found in answers
type ProbeConfig struct {
	Enabled       bool          `yaml:"enabled" mapstructure:"enabled"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Workers       int           `yaml:"workers" mapstructure:"workers"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Color   bool `yaml:"color" mapstructure:"color"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// DefaultMatchingConfig returns the default comparison rules
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		TolerancePercent:    10,
		URLProtocolFlexible: true,
		URLWWWFlexible:      true,
		Location: LocationScores{
			Containment:           95,
			MunicipalityExact:     90,
			MunicipalitySubstring: 85,
		},
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Matching: DefaultMatchingConfig(),
		LLM: LLMConfig{
			Provider:  "",
			Model:     "", // Provider default
			Timeout:   30,
			MaxTokens: 500,
			Pattern:   "direct",
		},
		KB: KBConfig{
			BaseURL:   "https://www.wikidata.org/w/api.php",
			Languages: []string{"ja", "en"},
			MaxHops:   4,
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "factcheck/0.1 (+https://github.com/ppiankov/factcheck)",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".factcheck-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Probe: ProbeConfig{
			Enabled:       false,
			Timeout:       10 * time.Second,
			Workers:       8,
			RespectRobots: true,
		},
		Output: OutputConfig{
			Color: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
