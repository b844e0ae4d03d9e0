// Package retrieve fetches discovered sources in parallel and turns each
// one into a keyphrase set for scoring.
package retrieve

import (
	"context"

	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/keywords"
	"github.com/ppiankov/truthscope/internal/model"
	"github.com/ppiankov/truthscope/internal/scrape"
	"github.com/ppiankov/truthscope/internal/search"
	"github.com/ppiankov/truthscope/internal/util"
	"github.com/ppiankov/truthscope/internal/worker"
)

// ArticleClient is the extraction boundary the retriever depends on.
type ArticleClient interface {
	Extract(ctx context.Context, url string) (*scrape.Article, error)
	Probe(ctx context.Context) bool
}

// Limiter throttles requests per target domain.
type Limiter interface {
	Wait(ctx context.Context, url string) error
}

// Retriever fans source URLs out over a worker pool, bounded both by worker
// count and per-domain rate limits.
type Retriever struct {
	client        ArticleClient
	limiter       Limiter
	extractor     keywords.Extractor
	maxWorkers    int
	maxKeyphrases int
	maxPhraseLen  int
	logger        *zap.Logger
}

// Config holds the retriever settings.
type Config struct {
	Client        ArticleClient
	Limiter       Limiter
	Extractor     keywords.Extractor
	MaxWorkers    int
	MaxKeyphrases int
	MaxPhraseLen  int
	Logger        *zap.Logger
}

// NewRetriever creates a retriever.
func NewRetriever(cfg Config) *Retriever {
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	maxKeyphrases := cfg.MaxKeyphrases
	if maxKeyphrases <= 0 {
		maxKeyphrases = 4
	}
	maxPhraseLen := cfg.MaxPhraseLen
	if maxPhraseLen <= 0 {
		maxPhraseLen = 3
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{
		client:        cfg.Client,
		limiter:       cfg.Limiter,
		extractor:     cfg.Extractor,
		maxWorkers:    maxWorkers,
		maxKeyphrases: maxKeyphrases,
		maxPhraseLen:  maxPhraseLen,
		logger:        logger,
	}
}

type fetchResult struct {
	source *model.CandidateSource
	err    error
}

func (r *fetchResult) GetError() error { return r.err }

type fetchJob struct {
	source    *model.CandidateSource
	retriever *Retriever
}

func (j *fetchJob) Key() string { return j.source.URL }

func (j *fetchJob) Execute(ctx context.Context) worker.Result {
	err := j.retriever.fetchOne(ctx, j.source)
	return &fetchResult{source: j.source, err: err}
}

// Retrieve resolves every discovered item into a candidate source. A failed
// source carries its error instead of aborting the batch; the output always
// has one entry per distinct input URL, in input order.
func (r *Retriever) Retrieve(ctx context.Context, items []search.Item) []*model.CandidateSource {
	if len(items) == 0 {
		return nil
	}

	// Cheap validation first so malformed URLs never cost network work,
	// and dedupe so every pool job has a distinct key.
	seen := make(map[string]bool, len(items))
	sources := make([]*model.CandidateSource, 0, len(items))
	pending := make([]*model.CandidateSource, 0, len(items))
	for _, it := range items {
		if seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		src := &model.CandidateSource{URL: it.URL, Title: it.Title}
		sources = append(sources, src)
		if !util.IsValidURL(it.URL) {
			src.Err = ErrInvalidURL.Error()
			continue
		}
		pending = append(pending, src)
	}
	if len(pending) == 0 {
		return sources
	}

	if !r.client.Probe(ctx) {
		r.logger.Warn("extraction service unavailable, failing batch")
		for _, src := range pending {
			src.Err = ErrScraperUnavailable.Error()
		}
		return sources
	}

	workers := r.maxWorkers
	if len(pending) < workers {
		workers = len(pending)
	}
	pool := worker.NewPool(workers)
	pool.Start()
	for _, src := range pending {
		pool.Submit(&fetchJob{source: src, retriever: r})
	}
	results := pool.Wait()

	for _, src := range pending {
		if _, ok := results[src.URL]; !ok && src.Err == "" {
			if err := ctx.Err(); err != nil {
				src.Err = err.Error()
			}
		}
	}
	return sources
}

// fetchOne attaches either a keyphrase set or a terminal error to the
// source. It is the only writer of the source after discovery.
func (r *Retriever) fetchOne(ctx context.Context, src *model.CandidateSource) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, src.URL); err != nil {
			src.Err = err.Error()
			return err
		}
	}

	art, err := r.client.Extract(ctx, src.URL)
	if err != nil {
		src.Err = err.Error()
		return err
	}

	// A page without a usable headline is not an error; it just
	// contributes nothing to the score.
	if art.Head == "" {
		return nil
	}
	src.Title = art.Head

	phrases, err := r.extractor.Extract(ctx, art.Head, r.maxKeyphrases, r.maxPhraseLen)
	if err != nil {
		src.Err = err.Error()
		return err
	}
	src.Keyphrases = phrases
	return nil
}
