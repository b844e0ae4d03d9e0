package score

import "github.com/ppiankov/truthscope/internal/model"

// Thresholds are the minimum total scores for each credibility tier.
// Comparisons are inclusive, so a total exactly at a boundary lands in the
// higher tier.
type Thresholds struct {
	Low      float64
	Fair     float64
	Moderate float64
	High     float64
}

// DefaultThresholds returns the standard tier boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 2.0, Fair: 5.0, Moderate: 8.0, High: 12.0}
}

const (
	interpHigh     = "High credibility - Information is well-supported by reliable sources"
	interpModerate = "Moderate credibility - Information has good support from credible sources"
	interpFair     = "Fair credibility - Some support from reliable sources"
	interpLow      = "Low credibility - Limited support from reliable sources"
	interpVeryLow  = "Very low credibility - Minimal or no support from reliable sources"
	interpUnknown  = "Unable to assess credibility (no valid sources)"
)

// Aggregate sums the weighted scores of the sources that produced one and
// classifies the total. When every source failed there is nothing to assess
// and the verdict is unknown rather than very_low.
func Aggregate(scored []model.ScoredSource, th Thresholds) model.CredibilityVerdict {
	total := 0.0
	analyzed := 0
	for _, s := range scored {
		if s.Source.Failed() {
			continue
		}
		total += s.Weighted
		analyzed++
	}

	if analyzed == 0 {
		return model.CredibilityVerdict{
			TotalScore:      0,
			Level:           model.LevelUnknown,
			Interpretation:  interpUnknown,
			SourcesAnalyzed: 0,
		}
	}

	var level model.CredibilityLevel
	var interp string
	switch {
	case total >= th.High:
		level, interp = model.LevelHigh, interpHigh
	case total >= th.Moderate:
		level, interp = model.LevelModerate, interpModerate
	case total >= th.Fair:
		level, interp = model.LevelFair, interpFair
	case total >= th.Low:
		level, interp = model.LevelLow, interpLow
	default:
		level, interp = model.LevelVeryLow, interpVeryLow
	}

	return model.CredibilityVerdict{
		TotalScore:      total,
		Level:           level,
		Interpretation:  interp,
		SourcesAnalyzed: analyzed,
	}
}
