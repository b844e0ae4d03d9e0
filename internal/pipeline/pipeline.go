// Package pipeline orchestrates one analysis run: claim formulation, source
// discovery, parallel retrieval, scoring and aggregation into a report.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/keywords"
	"github.com/ppiankov/truthscope/internal/model"
	"github.com/ppiankov/truthscope/internal/retrieve"
	"github.com/ppiankov/truthscope/internal/score"
	"github.com/ppiankov/truthscope/internal/search"
	"github.com/ppiankov/truthscope/internal/util"
)

// State names the stage a run is in. Runs advance strictly forward;
// StateError is terminal and still yields a degraded report.
type State string

const (
	StateIdle              State = "idle"
	StateQueryFormulated   State = "query_formulated"
	StateSourcesDiscovered State = "sources_discovered"
	StateRetrieving        State = "retrieving"
	StateScoring           State = "scoring"
	StateAggregated        State = "aggregated"
	StateDone              State = "done"
	StateError             State = "error"
)

// Pipeline wires the analysis stages together. It is stateless across runs
// and safe for concurrent use.
type Pipeline struct {
	extractor     keywords.Extractor
	discoverer    *search.Discoverer
	retriever     *retrieve.Retriever
	scorer        *score.Scorer
	resolver      retrieve.ArticleClient
	thresholds    score.Thresholds
	maxResults    int
	maxKeyphrases int
	maxPhraseLen  int
	maxSources    int
	logger        *zap.Logger
}

// Config holds the pipeline dependencies and limits.
type Config struct {
	Extractor     keywords.Extractor
	Discoverer    *search.Discoverer
	Retriever     *retrieve.Retriever
	Scorer        *score.Scorer
	Resolver      retrieve.ArticleClient // Resolves URL inputs to headlines
	Thresholds    score.Thresholds
	MaxResults    int
	MaxKeyphrases int
	MaxPhraseLen  int
	MaxSources    int
	Logger        *zap.Logger
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	thresholds := cfg.Thresholds
	if thresholds == (score.Thresholds{}) {
		thresholds = score.DefaultThresholds()
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	maxKeyphrases := cfg.MaxKeyphrases
	if maxKeyphrases <= 0 {
		maxKeyphrases = 4
	}
	maxPhraseLen := cfg.MaxPhraseLen
	if maxPhraseLen <= 0 {
		maxPhraseLen = 3
	}
	maxSources := cfg.MaxSources
	if maxSources <= 0 {
		maxSources = 10
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extractor:     cfg.Extractor,
		discoverer:    cfg.Discoverer,
		retriever:     cfg.Retriever,
		scorer:        cfg.Scorer,
		resolver:      cfg.Resolver,
		thresholds:    thresholds,
		maxResults:    maxResults,
		maxKeyphrases: maxKeyphrases,
		maxPhraseLen:  maxPhraseLen,
		maxSources:    maxSources,
		logger:        logger,
	}
}

// run tracks the state of a single analysis.
type run struct {
	state  State
	logger *zap.Logger
}

func (r *run) advance(next State) {
	r.logger.Debug("pipeline state", zap.String("from", string(r.state)), zap.String("to", string(next)))
	r.state = next
}

// Analyze runs the full pipeline for a headline or URL. It always returns a
// report: failures before aggregation produce a degraded report with level
// unknown and the cause attached.
func (p *Pipeline) Analyze(ctx context.Context, input string) *model.Report {
	r := &run{state: StateIdle, logger: p.logger}

	input = strings.TrimSpace(input)
	if input == "" {
		r.advance(StateError)
		return degradedReport(input, model.InputTypeHeadline, "", nil, ErrEmptyInput.Error())
	}

	inputType := model.InputTypeHeadline
	headline := input
	if util.IsValidURL(input) {
		inputType = model.InputTypeURL
		art, err := p.resolver.Extract(ctx, input)
		if err != nil {
			r.advance(StateError)
			return degradedReport(input, inputType, "", nil, err.Error())
		}
		if art.Head == "" {
			r.advance(StateError)
			return degradedReport(input, inputType, "", nil, ErrNoHeadline.Error())
		}
		headline = art.Head
	}

	claimPhrases, err := p.extractor.Extract(ctx, headline, p.maxKeyphrases, p.maxPhraseLen)
	if err != nil {
		r.advance(StateError)
		return degradedReport(input, inputType, headline, nil, err.Error())
	}
	r.advance(StateQueryFormulated)

	items, err := p.discoverer.Discover(ctx, headline, p.maxResults)
	if err != nil {
		r.advance(StateError)
		return degradedReport(input, inputType, headline, claimPhrases,
			fmt.Errorf("%w: %v", ErrDiscovery, err).Error())
	}
	if len(items) == 0 {
		r.advance(StateError)
		return degradedReport(input, inputType, headline, claimPhrases, ErrNoSourcesFound.Error())
	}
	r.advance(StateSourcesDiscovered)
	p.logger.Info("analysis started",
		zap.String("type", string(inputType)),
		zap.String("headline", headline),
		zap.Int("candidates", len(items)))

	r.advance(StateRetrieving)
	sources := p.retriever.Retrieve(ctx, items)

	r.advance(StateScoring)
	scored := p.scorer.ScoreSources(ctx, claimPhrases, sources)

	verdict := score.Aggregate(scored, p.thresholds)
	r.advance(StateAggregated)

	report := buildReport(input, inputType, headline, claimPhrases, scored, verdict, p.maxSources)
	r.advance(StateDone)
	p.logger.Info("analysis finished",
		zap.Float64("total_score", verdict.TotalScore),
		zap.String("level", string(verdict.Level)),
		zap.Int("sources_analyzed", verdict.SourcesAnalyzed))
	return report
}
