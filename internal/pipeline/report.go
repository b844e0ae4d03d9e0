package pipeline

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"os"
	"strings"

	"github.com/ppiankov/truthscope/internal/model"
	"github.com/ppiankov/truthscope/internal/score"
)

// round3 rounds for presentation only; aggregation upstream is exact.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func buildReport(input string, inputType model.InputType, headline string, claimPhrases []string,
	scored []model.ScoredSource, verdict model.CredibilityVerdict, maxSources int) *model.Report {

	ranked := make([]model.ScoredSource, len(scored))
	copy(ranked, scored)
	score.Rank(ranked)
	if len(ranked) > maxSources {
		ranked = ranked[:maxSources]
	}

	report := &model.Report{
		Input: model.ReportInput{Text: input, Type: inputType},
		Credibility: model.ReportCredibility{
			Headline:        headline,
			Keywords:        claimPhrases,
			TotalScore:      round3(verdict.TotalScore),
			Level:           verdict.Level,
			Interpretation:  verdict.Interpretation,
			SourcesAnalyzed: verdict.SourcesAnalyzed,
		},
		Sources: make([]model.ReportSource, 0, len(ranked)),
	}

	weightsUsed := make(map[string]float64)
	for _, s := range ranked {
		report.Sources = append(report.Sources, model.ReportSource{
			URL:              s.Source.URL,
			Title:            s.Source.Title,
			RawSimilarity:    round3(s.Similarity.Raw),
			SourceWeight:     s.Weight,
			WeightedScore:    round3(s.Weighted),
			SimilarityMethod: s.Similarity.Method,
			Error:            s.Source.Err,
		})
		if !s.Source.Failed() {
			weightsUsed[reportDomain(s.Source.URL)] = s.Weight
		}
	}
	if len(weightsUsed) > 0 {
		report.WeightsUsed = weightsUsed
	}
	return report
}

// degradedReport preserves whatever the run established before failing.
func degradedReport(input string, inputType model.InputType, headline string, claimPhrases []string, cause string) *model.Report {
	return &model.Report{
		Input: model.ReportInput{Text: input, Type: inputType},
		Credibility: model.ReportCredibility{
			Headline:       headline,
			Keywords:       claimPhrases,
			Level:          model.LevelUnknown,
			Interpretation: "Unable to assess credibility due to error",
		},
		Sources: []model.ReportSource{},
		Error:   cause,
	}
}

func reportDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return rawURL
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

// SaveJSON writes the report to path as indented JSON.
func SaveJSON(path string, report *model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
