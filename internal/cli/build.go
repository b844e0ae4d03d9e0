package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/cache"
	"github.com/ppiankov/truthscope/internal/embed"
	"github.com/ppiankov/truthscope/internal/keywords"
	"github.com/ppiankov/truthscope/internal/model"
	"github.com/ppiankov/truthscope/internal/pipeline"
	"github.com/ppiankov/truthscope/internal/retrieve"
	"github.com/ppiankov/truthscope/internal/score"
	"github.com/ppiankov/truthscope/internal/scrape"
	"github.com/ppiankov/truthscope/internal/search"
	"github.com/ppiankov/truthscope/internal/similarity"
	"github.com/ppiankov/truthscope/internal/trust"
	"github.com/ppiankov/truthscope/internal/worker"
)

// buildLogger creates the process logger. Verbose runs get the development
// encoder at debug level.
func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// loadConfig resolves the effective configuration: defaults, then config
// file, then TRUTHSCOPE_* environment variables.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("search.api_key"); v != "" {
		cfg.Search.APIKey = v
	}
	if v := viper.GetString("search.engine_id"); v != "" {
		cfg.Search.EngineID = v
	}
	if v := viper.GetInt("search.max_results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v := viper.GetString("scraper.url"); v != "" {
		cfg.Scraper.URL = v
	}
	if v := viper.GetString("scraper.addr"); v != "" {
		cfg.Scraper.Addr = v
	}
	if v := viper.GetDuration("scraper.cache_ttl"); v > 0 {
		cfg.Scraper.CacheTTL = v
	}
	if v := viper.GetString("keywords.mode"); v != "" {
		cfg.Keywords.Mode = v
	}
	if v := viper.GetString("keywords.openai_model"); v != "" {
		cfg.Keywords.OpenAIModel = v
	}
	if viper.IsSet("similarity.semantic") {
		cfg.Similarity.Semantic = viper.GetBool("similarity.semantic")
	}
	if v := viper.GetString("similarity.embedding_model"); v != "" {
		cfg.Similarity.EmbeddingModel = v
	}
	if v := viper.GetString("similarity.base_url"); v != "" {
		cfg.Similarity.BaseURL = v
	}
	if v := viper.GetString("trust.file"); v != "" {
		cfg.Trust.File = v
	}
	if v := viper.GetString("trust.lookup_policy"); v != "" {
		cfg.Trust.LookupPolicy = v
	}
	if v := viper.GetInt("concurrency.max_workers"); v > 0 {
		cfg.Concurrency.MaxWorkers = v
	}
	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := viper.GetString("output.report_path"); v != "" {
		cfg.Output.ReportPath = v
	}
	cfg.Output.Verbose = verbose

	// The original deployment configured search credentials through bare
	// API_KEY / SEARCH_ENGINE_ID variables; accept those too.
	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv("API_KEY")
	}
	if cfg.Search.EngineID == "" {
		cfg.Search.EngineID = os.Getenv("SEARCH_ENGINE_ID")
	}

	return cfg
}

// buildPipeline wires all analysis components from the configuration.
func buildPipeline(ctx context.Context, cfg *model.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	policy := scrape.RetryPolicy{
		MaxAttempts: cfg.HTTP.MaxAttempts,
		Base:        cfg.HTTP.BackoffBase,
		Timeout:     cfg.HTTP.Timeout,
	}

	client := scrape.NewClient(scrape.ClientConfig{
		Endpoint:     cfg.Scraper.URL,
		Policy:       policy,
		Cache:        cache.NewMemoryCache(cfg.Scraper.CacheTTL, 2*cfg.Scraper.CacheTTL),
		CacheTTL:     cfg.Scraper.CacheTTL,
		ProbeTimeout: cfg.Scraper.ProbeTimeout,
		Logger:       logger,
	})

	searcher, err := search.NewGoogleClient(search.GoogleConfig{
		APIKey:   cfg.Search.APIKey,
		EngineID: cfg.Search.EngineID,
		Policy:   policy,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("missing API credentials: set TRUTHSCOPE_SEARCH_API_KEY and TRUTHSCOPE_SEARCH_ENGINE_ID")
	}

	extractor := buildExtractor(ctx, cfg, logger)
	engine := buildEngine(ctx, cfg, logger)

	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
	retriever := retrieve.NewRetriever(retrieve.Config{
		Client:        client,
		Limiter:       limiter,
		Extractor:     extractor,
		MaxWorkers:    cfg.Concurrency.MaxWorkers,
		MaxKeyphrases: cfg.Keywords.MaxHeadline,
		MaxPhraseLen:  cfg.Keywords.MaxPhraseLength,
		Logger:        logger,
	})

	return pipeline.New(pipeline.Config{
		Extractor:     extractor,
		Discoverer:    search.NewDiscoverer(searcher, extractor, cfg.Keywords.MaxHeadline, logger),
		Retriever:     retriever,
		Scorer:        score.NewScorer(engine, registry, logger),
		Resolver:      client,
		MaxResults:    cfg.Search.MaxResults,
		MaxKeyphrases: cfg.Keywords.MaxHeadline,
		MaxPhraseLen:  cfg.Keywords.MaxPhraseLength,
		MaxSources:    cfg.Output.MaxSources,
		Logger:        logger,
	}), nil
}

// buildExtractor picks the keyphrase extractor: the LLM extractor when a
// model is configured, a key is present and the API answers the startup
// probe; the statistical extractor otherwise.
func buildExtractor(ctx context.Context, cfg *model.Config, logger *zap.Logger) keywords.Extractor {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if cfg.Keywords.OpenAIModel != "" && apiKey != "" {
		llm, err := keywords.NewOpenAIExtractor(keywords.OpenAIConfig{
			APIKey: apiKey,
			Model:  cfg.Keywords.OpenAIModel,
			Logger: logger,
		})
		if err == nil {
			probe, cancel := context.WithTimeout(ctx, 5*time.Second)
			ok := llm.Available(probe)
			cancel()
			if ok {
				logger.Info("using LLM keyphrase extractor", zap.String("model", cfg.Keywords.OpenAIModel))
				return llm
			}
		}
		logger.Warn("LLM extractor unavailable, falling back to statistical extraction")
	}
	return keywords.NewStatisticalExtractor()
}

// buildEngine resolves the similarity strategy once, at startup. Semantic
// scoring needs a reachable embedding API; otherwise the run is lexical.
func buildEngine(ctx context.Context, cfg *model.Config, logger *zap.Logger) *similarity.Engine {
	mode := keywords.ParseMode(cfg.Keywords.Mode)

	var embedder similarity.Embedder
	strategy := similarity.StrategyLexical
	if cfg.Similarity.Semantic {
		apiKey := os.Getenv("OPENAI_API_KEY")
		client, err := embed.NewClient(embed.Config{
			APIKey:  apiKey,
			BaseURL: cfg.Similarity.BaseURL,
			Model:   cfg.Similarity.EmbeddingModel,
			Logger:  logger,
		})
		ok := false
		if err == nil {
			probe, cancel := context.WithTimeout(ctx, 5*time.Second)
			ok = client.Available(probe)
			cancel()
		}
		if ok {
			embedder = client
			strategy = similarity.StrategySemantic
			logger.Info("using semantic similarity")
		} else {
			logger.Warn("embedding API unavailable, using lexical similarity")
		}
	}
	return similarity.NewEngine(strategy, embedder, mode, logger)
}

func buildRegistry(cfg *model.Config) (*trust.Registry, error) {
	policy := trust.ParsePolicy(cfg.Trust.LookupPolicy)
	if cfg.Trust.File == "" {
		return trust.NewDefaultRegistry(policy), nil
	}
	weights, err := trust.LoadWeights(cfg.Trust.File)
	if err != nil {
		return nil, err
	}
	return trust.NewRegistryWithOverrides(weights, policy), nil
}
