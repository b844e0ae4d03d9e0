package model

// InputType tells whether an analysis was started from a URL or a headline
type InputType string

const (
	InputTypeURL      InputType = "url"      // Input resolved to a headline via the scraper
	InputTypeHeadline InputType = "headline" // Input used as the claim text directly
)

// Claim is the immutable input to one analysis run: the headline text and the
// keyphrases derived from it, in extraction rank order.
type Claim struct {
	Text       string   `json:"text"`
	Keyphrases []string `json:"keyphrases"`
}

// CandidateSource is one discovered URL. Discovery creates it, the retriever
// mutates it exactly once to attach either a keyphrase set or a terminal
// error, and nothing touches it afterwards.
type CandidateSource struct {
	URL        string   `json:"url"`
	Title      string   `json:"title,omitempty"`      // Headline extracted from the source
	Keyphrases []string `json:"keyphrases,omitempty"` // Empty when the source has no headline
	Err        string   `json:"error,omitempty"`      // Terminal retrieval error, if any
}

// Failed reports whether retrieval ended with a terminal error
func (s *CandidateSource) Failed() bool {
	return s.Err != ""
}
