package score

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/ppiankov/truthscope/internal/keywords"
	"github.com/ppiankov/truthscope/internal/model"
	"github.com/ppiankov/truthscope/internal/similarity"
	"github.com/ppiankov/truthscope/internal/trust"
)

func lexicalScorer(weights map[string]float64) *Scorer {
	engine := similarity.NewEngine(similarity.StrategyLexical, nil, keywords.ModeBasic, nil)
	registry := trust.NewRegistry(weights, trust.LookupExactFirst)
	return NewScorer(engine, registry, nil)
}

func TestScorer_WeightsApplied(t *testing.T) {
	s := lexicalScorer(map[string]float64{"bbc.com": 5.0})
	claim := []string{"rain", "delhi", "storm"}

	scored := s.ScoreSources(context.Background(), claim, []*model.CandidateSource{
		{URL: "https://www.bbc.com/news/1", Keyphrases: claim},
		{URL: "https://unknown-site.com/2", Keyphrases: claim},
	})

	if math.Abs(scored[0].Weighted-5.0) > 1e-9 {
		t.Errorf("bbc weighted = %v, want 5.0 (similarity 1.0 x weight 5.0)", scored[0].Weighted)
	}
	if math.Abs(scored[1].Weighted-1.0) > 1e-9 {
		t.Errorf("unknown weighted = %v, want 1.0 (default weight)", scored[1].Weighted)
	}
}

func TestScorer_FailedSourcePassesThrough(t *testing.T) {
	s := lexicalScorer(nil)
	scored := s.ScoreSources(context.Background(), []string{"rain"}, []*model.CandidateSource{
		{URL: "https://broken.com/1", Err: "timeout"},
		{URL: "https://ok.com/2", Keyphrases: []string{"rain"}},
	})

	if len(scored) != 2 {
		t.Fatalf("got %d scored, want 2", len(scored))
	}
	if scored[0].Source.Err == "" {
		t.Error("failed source lost its error")
	}
	if scored[0].Weighted != 0 {
		t.Errorf("failed source weighted = %v, want 0", scored[0].Weighted)
	}
	if scored[1].Weighted == 0 {
		t.Error("healthy source scored 0")
	}
}

func TestScorer_DisjointKeyphrasesCountAsAnalyzed(t *testing.T) {
	s := lexicalScorer(nil)
	scored := s.ScoreSources(context.Background(), []string{"rain"}, []*model.CandidateSource{
		{URL: "https://ok.com/1", Keyphrases: []string{"cricket"}},
	})
	if scored[0].Source.Failed() {
		t.Error("zero similarity must not be a failure")
	}
	if scored[0].Weighted != 0 {
		t.Errorf("weighted = %v, want 0", scored[0].Weighted)
	}

	verdict := Aggregate(scored, DefaultThresholds())
	if verdict.SourcesAnalyzed != 1 {
		t.Errorf("sources analyzed = %d, want 1", verdict.SourcesAnalyzed)
	}
	if verdict.Level != model.LevelVeryLow {
		t.Errorf("level = %v, want very_low", verdict.Level)
	}
}

func scoredWith(weighted ...float64) []model.ScoredSource {
	out := make([]model.ScoredSource, len(weighted))
	for i, w := range weighted {
		out[i] = model.ScoredSource{
			Source:   &model.CandidateSource{URL: "https://example.com/" + string(rune('a'+i))},
			Weighted: w,
		}
	}
	return out
}

func TestAggregate_Levels(t *testing.T) {
	tests := []struct {
		name  string
		total []float64
		want  model.CredibilityLevel
	}{
		{"very low", []float64{0.5}, model.LevelVeryLow},
		{"low boundary inclusive", []float64{2.0}, model.LevelLow},
		{"fair", []float64{3.0, 2.5}, model.LevelFair},
		{"moderate", []float64{4.0, 4.0}, model.LevelModerate},
		{"just under high", []float64{11.999}, model.LevelModerate},
		{"high boundary inclusive", []float64{12.0}, model.LevelHigh},
		{"high", []float64{6.0, 4.0, 2.5}, model.LevelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Aggregate(scoredWith(tt.total...), DefaultThresholds())
			if verdict.Level != tt.want {
				t.Errorf("level = %v, want %v (total %v)", verdict.Level, tt.want, verdict.TotalScore)
			}
			if verdict.Interpretation == "" {
				t.Error("missing interpretation")
			}
		})
	}
}

func TestAggregate_AllFailedIsUnknown(t *testing.T) {
	scored := []model.ScoredSource{
		{Source: &model.CandidateSource{URL: "https://a.com", Err: "timeout"}},
		{Source: &model.CandidateSource{URL: "https://b.com", Err: "invalid URL format"}},
	}
	verdict := Aggregate(scored, DefaultThresholds())
	if verdict.Level != model.LevelUnknown {
		t.Errorf("level = %v, want unknown", verdict.Level)
	}
	if verdict.TotalScore != 0 || verdict.SourcesAnalyzed != 0 {
		t.Errorf("verdict = %+v, want zero score and count", verdict)
	}
	if verdict.Interpretation != "Unable to assess credibility (no valid sources)" {
		t.Errorf("interpretation = %q", verdict.Interpretation)
	}
}

func TestAggregate_EmptyIsUnknown(t *testing.T) {
	if verdict := Aggregate(nil, DefaultThresholds()); verdict.Level != model.LevelUnknown {
		t.Errorf("level = %v, want unknown", verdict.Level)
	}
}

func TestAggregate_OrderInvariant(t *testing.T) {
	base := scoredWith(6.0, 4.0, 2.5, 0.1)
	want := Aggregate(base, DefaultThresholds())

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.ScoredSource, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Aggregate(shuffled, DefaultThresholds())
		if math.Abs(got.TotalScore-want.TotalScore) > 1e-9 || got.Level != want.Level {
			t.Fatalf("aggregate depends on order: %+v vs %+v", got, want)
		}
	}
}

func TestAggregate_MoreSupportNeverLowers(t *testing.T) {
	smaller := Aggregate(scoredWith(3.0), DefaultThresholds())
	larger := Aggregate(scoredWith(3.0, 2.5), DefaultThresholds())
	if larger.TotalScore < smaller.TotalScore {
		t.Errorf("adding a source lowered the total: %v -> %v", smaller.TotalScore, larger.TotalScore)
	}
}

func TestRank(t *testing.T) {
	scored := []model.ScoredSource{
		{Source: &model.CandidateSource{URL: "https://b.com"}, Weighted: 1.0},
		{Source: &model.CandidateSource{URL: "https://a.com"}, Weighted: 5.0},
		{Source: &model.CandidateSource{URL: "https://c.com"}, Weighted: 1.0},
	}
	Rank(scored)

	if scored[0].Source.URL != "https://a.com" {
		t.Errorf("highest weighted not first: %q", scored[0].Source.URL)
	}
	if scored[1].Source.URL != "https://b.com" || scored[2].Source.URL != "https://c.com" {
		t.Errorf("tie not broken by URL: %q, %q", scored[1].Source.URL, scored[2].Source.URL)
	}
}
