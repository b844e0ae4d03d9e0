package model

import "time"

// Config is the complete application configuration.
// Hierarchy (highest to lowest priority): CLI flags, TRUTHSCOPE_* environment
// variables, ~/.truthscope/config.yaml, defaults.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Search      SearchConfig      `yaml:"search"`
	Scraper     ScraperConfig     `yaml:"scraper"`
	Keywords    KeywordsConfig    `yaml:"keywords"`
	Similarity  SimilarityConfig  `yaml:"similarity"`
	Trust       TrustConfig       `yaml:"trust"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Server      ServerConfig      `yaml:"server"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig holds outbound HTTP settings shared by the boundaries
type HTTPConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
	MaxAttempts int           `yaml:"max_attempts"` // Total tries, transient failures only
	BackoffBase time.Duration `yaml:"backoff_base"`
}

// SearchConfig holds the web search boundary settings (Google Custom Search)
type SearchConfig struct {
	APIKey     string `yaml:"api_key"`
	EngineID   string `yaml:"engine_id"`
	MaxResults int    `yaml:"max_results"` // Capped at 10 per API call
}

// ScraperConfig holds the content-extraction boundary settings
type ScraperConfig struct {
	URL          string        `yaml:"url"` // Extraction service endpoint
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	Addr         string        `yaml:"addr"` // Listen address for the built-in scraper
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// KeywordsConfig holds keyphrase extraction settings
type KeywordsConfig struct {
	MaxHeadline     int    `yaml:"max_headline"`      // Keyphrases per headline
	MaxPhraseLength int    `yaml:"max_phrase_length"` // Words per keyphrase
	Mode            string `yaml:"mode"`              // basic | enriched
	OpenAIModel     string `yaml:"openai_model"`      // Empty disables the LLM extractor
}

// SimilarityConfig holds similarity strategy settings
type SimilarityConfig struct {
	Semantic       bool   `yaml:"semantic"` // Try the embedding strategy at startup
	EmbeddingModel string `yaml:"embedding_model"`
	BaseURL        string `yaml:"base_url"`
}

// TrustConfig holds trust registry settings
type TrustConfig struct {
	File         string `yaml:"file"`          // Optional YAML overrides
	LookupPolicy string `yaml:"lookup_policy"` // exact_first | base_only
}

// ConcurrencyConfig holds retrieval pool settings
type ConcurrencyConfig struct {
	MaxWorkers        int     `yaml:"max_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"` // Per-domain politeness limit
	Burst             int     `yaml:"burst"`
}

// ServerConfig holds the analysis API server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OutputConfig holds report output settings
type OutputConfig struct {
	ReportPath string `yaml:"report_path"`
	MaxSources int    `yaml:"max_sources"` // Sources listed in the report
	Verbose    bool   `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:     10 * time.Second,
			UserAgent:   "Truthscope/0.1 (+https://github.com/ppiankov/truthscope)",
			MaxAttempts: 3,
			BackoffBase: 300 * time.Millisecond,
		},
		Search: SearchConfig{
			MaxResults: 10,
		},
		Scraper: ScraperConfig{
			URL:          "http://127.0.0.1:5000/scrape",
			ProbeTimeout: 2 * time.Second,
			Addr:         "127.0.0.1:5000",
			CacheTTL:     15 * time.Minute,
		},
		Keywords: KeywordsConfig{
			MaxHeadline:     4,
			MaxPhraseLength: 3,
			Mode:            "enriched",
		},
		Similarity: SimilarityConfig{
			Semantic: false,
		},
		Trust: TrustConfig{
			LookupPolicy: "exact_first",
		},
		Concurrency: ConcurrencyConfig{
			MaxWorkers:        5,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:3000",
		},
		Output: OutputConfig{
			ReportPath: "credibility_report.json",
			MaxSources: 10,
		},
	}
}
