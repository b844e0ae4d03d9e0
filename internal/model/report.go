package model

// Report is the persisted JSON artifact of one analysis.
// The schema matches the existing credibility_report.json artifacts.
type Report struct {
	Input       ReportInput        `json:"input"`
	Credibility ReportCredibility  `json:"credibility"`
	Sources     []ReportSource     `json:"sources"`
	WeightsUsed map[string]float64 `json:"weights_used,omitempty"` // Domain weights for included sources
	Error       string             `json:"error,omitempty"`        // Set on degraded reports
}

// ReportInput records the original query and how it was interpreted
type ReportInput struct {
	Text string    `json:"text"`
	Type InputType `json:"type"`
}

// ReportCredibility is the verdict section of the report
type ReportCredibility struct {
	Headline        string           `json:"headline"`
	Keywords        []string         `json:"keywords"`
	TotalScore      float64          `json:"total_score"`
	Level           CredibilityLevel `json:"credibility_level"`
	Interpretation  string           `json:"interpretation"`
	SourcesAnalyzed int              `json:"sources_analyzed"`
}

// ReportSource is one analyzed source in the report, scores rounded to
// three decimals for presentation.
type ReportSource struct {
	URL              string           `json:"url"`
	Title            string           `json:"title"`
	RawSimilarity    float64          `json:"raw_similarity"`
	SourceWeight     float64          `json:"source_weight"`
	WeightedScore    float64          `json:"weighted_score"`
	SimilarityMethod SimilarityMethod `json:"similarity_method"`
	Error            string           `json:"error,omitempty"`
}
