// Package score turns retrieved sources into weighted similarity scores
// and aggregates them into a credibility verdict.
package score

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/model"
	"github.com/ppiankov/truthscope/internal/similarity"
	"github.com/ppiankov/truthscope/internal/trust"
)

// Scorer scores candidate sources against the claim's keyphrases.
type Scorer struct {
	engine   *similarity.Engine
	registry *trust.Registry
	logger   *zap.Logger
}

// NewScorer creates a scorer.
func NewScorer(engine *similarity.Engine, registry *trust.Registry, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{engine: engine, registry: registry, logger: logger}
}

// ScoreSources computes the weighted score for every source. Failed sources
// pass through with a zero score and keep their error; a failure never
// aborts the batch.
func (s *Scorer) ScoreSources(ctx context.Context, claimPhrases []string, sources []*model.CandidateSource) []model.ScoredSource {
	scored := make([]model.ScoredSource, 0, len(sources))
	for _, src := range sources {
		if src.Failed() {
			scored = append(scored, model.ScoredSource{Source: src})
			continue
		}

		sim := s.engine.Score(ctx, claimPhrases, src.Keyphrases)
		weight := s.registry.WeightFor(src.URL)
		scored = append(scored, model.ScoredSource{
			Source:     src,
			Similarity: sim,
			Weight:     weight,
			Weighted:   sim.Raw * weight,
		})
		s.logger.Debug("source scored",
			zap.String("url", src.URL),
			zap.Float64("similarity", sim.Raw),
			zap.Float64("weight", weight),
			zap.Float64("weighted", sim.Raw*weight))
	}
	return scored
}

// Rank orders sources by weighted score, highest first. Ties break on URL
// so the order is stable across runs.
func Rank(scored []model.ScoredSource) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Weighted != scored[j].Weighted {
			return scored[i].Weighted > scored[j].Weighted
		}
		return scored[i].Source.URL < scored[j].Source.URL
	})
}
