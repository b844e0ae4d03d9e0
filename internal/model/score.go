package model

// SimilarityMethod identifies which strategy produced a similarity score
type SimilarityMethod string

const (
	MethodSemantic SimilarityMethod = "semantic" // Embedding cosine similarity
	MethodLexical  SimilarityMethod = "lexical"  // Weighted Jaccard + overlap coefficient
)

// SimilarityResult is the comparison of one source against the claim.
// Jaccard and Overlap are populated for the lexical method only.
type SimilarityResult struct {
	Raw     float64          `json:"raw_similarity"` // Always in [0,1]
	Method  SimilarityMethod `json:"similarity_method"`
	Jaccard float64          `json:"jaccard_similarity,omitempty"`
	Overlap float64          `json:"overlap_coefficient,omitempty"`
}

// ScoredSource pairs a candidate source with its similarity result and the
// trust weight of its domain. Weighted = Similarity.Raw * Weight, exactly;
// sources carrying a terminal error have Weighted = 0 and are excluded from
// aggregation while still being counted separately.
type ScoredSource struct {
	Source     *CandidateSource
	Similarity SimilarityResult
	Weight     float64
	Weighted   float64
}

// CredibilityLevel is the discrete verdict tier, ordered
// very_low < low < fair < moderate < high, with unknown for the
// degenerate no-valid-sources case.
type CredibilityLevel string

const (
	LevelUnknown  CredibilityLevel = "unknown"
	LevelVeryLow  CredibilityLevel = "very_low"
	LevelLow      CredibilityLevel = "low"
	LevelFair     CredibilityLevel = "fair"
	LevelModerate CredibilityLevel = "moderate"
	LevelHigh     CredibilityLevel = "high"
)

// CredibilityVerdict is the aggregate outcome of one analysis run
type CredibilityVerdict struct {
	TotalScore      float64          `json:"total_score"`
	Level           CredibilityLevel `json:"credibility_level"`
	Interpretation  string           `json:"interpretation"`
	SourcesAnalyzed int              `json:"sources_analyzed"` // Non-error sources only
}
