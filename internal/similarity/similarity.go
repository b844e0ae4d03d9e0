package similarity

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/keywords"
	"github.com/ppiankov/truthscope/internal/model"
)

// Embedder turns text into a vector for semantic comparison
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Strategy is resolved once per analysis run so that all sources in the run
// are scored the same way and their scores stay comparable.
type Strategy string

const (
	StrategySemantic Strategy = "semantic"
	StrategyLexical  Strategy = "lexical"
)

// Lexical combination weights: exact-overlap evidence dominates, relative
// coverage still counts in asymmetric-size comparisons.
const (
	jaccardWeight = 0.6
	overlapWeight = 0.4
)

// Engine scores a source's keyphrases against the claim's keyphrases
type Engine struct {
	strategy Strategy
	embedder Embedder
	mode     keywords.Mode
	logger   *zap.Logger
}

// NewEngine creates a similarity engine. The semantic strategy requires an
// embedder; passing StrategySemantic without one falls back to lexical.
func NewEngine(strategy Strategy, embedder Embedder, mode keywords.Mode, logger *zap.Logger) *Engine {
	if strategy == StrategySemantic && embedder == nil {
		strategy = StrategyLexical
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{strategy: strategy, embedder: embedder, mode: mode, logger: logger}
}

// Strategy returns the resolved strategy for this run
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Score compares the claim's keyphrases with one source's keyphrases.
// Absence of tokens on either side yields 0, never an error.
func (e *Engine) Score(ctx context.Context, claimPhrases, sourcePhrases []string) model.SimilarityResult {
	if e.strategy == StrategySemantic {
		if result, ok := e.semantic(ctx, claimPhrases, sourcePhrases); ok {
			return result
		}
		// Embedding failure degrades this pair to the lexical fallback
	}
	return e.lexical(claimPhrases, sourcePhrases)
}

func (e *Engine) lexical(claimPhrases, sourcePhrases []string) model.SimilarityResult {
	a := keywords.TokenSet(keywords.Preprocess(claimPhrases, e.mode))
	b := keywords.TokenSet(keywords.Preprocess(sourcePhrases, e.mode))

	jaccard := Jaccard(a, b)
	overlap := Overlap(a, b)

	return model.SimilarityResult{
		Raw:     jaccard*jaccardWeight + overlap*overlapWeight,
		Method:  model.MethodLexical,
		Jaccard: jaccard,
		Overlap: overlap,
	}
}

func (e *Engine) semantic(ctx context.Context, claimPhrases, sourcePhrases []string) (model.SimilarityResult, bool) {
	claimText := strings.TrimSpace(strings.Join(claimPhrases, " "))
	sourceText := strings.TrimSpace(strings.Join(sourcePhrases, " "))
	if claimText == "" || sourceText == "" {
		return model.SimilarityResult{Raw: 0, Method: model.MethodSemantic}, true
	}

	claimVec, err := e.embedder.Embed(ctx, claimText)
	if err != nil {
		e.logger.Warn("claim embedding failed, using lexical fallback", zap.Error(err))
		return model.SimilarityResult{}, false
	}
	sourceVec, err := e.embedder.Embed(ctx, sourceText)
	if err != nil {
		e.logger.Warn("source embedding failed, using lexical fallback", zap.Error(err))
		return model.SimilarityResult{}, false
	}

	return model.SimilarityResult{
		Raw:    Clamp01(Cosine(claimVec, sourceVec)),
		Method: model.MethodSemantic,
	}, true
}

// Jaccard is intersection size over union size; 0 when the union is empty
func Jaccard(a, b map[string]struct{}) float64 {
	union := len(a) + len(b) - intersection(a, b)
	if union == 0 {
		return 0
	}
	return float64(intersection(a, b)) / float64(union)
}

// Overlap is intersection size over the smaller set's size; 0 when the
// smaller set is empty
func Overlap(a, b map[string]struct{}) float64 {
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if smaller == 0 {
		return 0
	}
	return float64(intersection(a, b)) / float64(smaller)
}

func intersection(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}

// Cosine computes cosine similarity between two vectors; 0 for mismatched
// lengths or zero magnitude
func Cosine(x, y []float32) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}
	var dot, nx, ny float64
	for i := range x {
		dot += float64(x[i]) * float64(y[i])
		nx += float64(x[i]) * float64(x[i])
		ny += float64(y[i]) * float64(y[i])
	}
	if nx == 0 || ny == 0 {
		return 0
	}
	return dot / (math.Sqrt(nx) * math.Sqrt(ny))
}

// Clamp01 bounds embedding similarity to [0,1]; floating noise can push
// cosine slightly outside the range
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
