package keywords

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// Extractor derives salient keyphrases from text. Implementations must
// return at most topN phrases of at most maxWords words each, best first.
type Extractor interface {
	Extract(ctx context.Context, text string, topN, maxWords int) ([]string, error)
}

// StatisticalExtractor is the always-available keyphrase extractor. It scores
// candidate phrases by term frequency and position, the way unsupervised
// statistical extractors do, and is fully deterministic for identical input.
type StatisticalExtractor struct{}

// NewStatisticalExtractor creates a statistical extractor
func NewStatisticalExtractor() *StatisticalExtractor {
	return &StatisticalExtractor{}
}

type candidate struct {
	phrase string
	score  float64
	first  int // Position of first occurrence, for deterministic ties
}

// Extract returns up to topN keyphrases of up to maxWords words each
func (e *StatisticalExtractor) Extract(_ context.Context, text string, topN, maxWords int) ([]string, error) {
	if topN <= 0 {
		topN = 10
	}
	if maxWords <= 0 {
		maxWords = 3
	}

	words := tokenize(text)
	if len(words) == 0 {
		return nil, nil
	}

	scores := termScores(words)

	seen := make(map[string]int) // normalized phrase -> candidate index
	var candidates []candidate
	for n := 1; n <= maxWords; n++ {
		for i := 0; i+n <= len(words); i++ {
			window := words[i : i+n]
			if !validPhrase(window) {
				continue
			}
			phrase := strings.Join(window, " ")
			key := strings.ToLower(phrase)
			score := phraseScore(window, scores, n)
			if idx, ok := seen[key]; ok {
				if score > candidates[idx].score {
					candidates[idx].score = score
				}
				continue
			}
			seen[key] = len(candidates)
			candidates = append(candidates, candidate{phrase: phrase, score: score, first: i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].first < candidates[j].first
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	phrases := make([]string, len(candidates))
	for i, c := range candidates {
		phrases[i] = c.phrase
	}
	return phrases, nil
}

// tokenize splits text into words, trimming surrounding punctuation
func tokenize(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// termScores scores each distinct term by frequency with a boost for early
// occurrence, which matters in headline-length text
func termScores(words []string) map[string]float64 {
	scores := make(map[string]float64)
	firstPos := make(map[string]int)
	for i, w := range words {
		key := strings.ToLower(w)
		if stopwords[key] {
			continue
		}
		scores[key]++
		if _, ok := firstPos[key]; !ok {
			firstPos[key] = i
		}
	}
	for key := range scores {
		scores[key] += 1.0 / float64(1+firstPos[key])
	}
	return scores
}

// validPhrase rejects windows that start or end with a stopword or that
// contain any term made only of digits
func validPhrase(window []string) bool {
	if stopwords[strings.ToLower(window[0])] || stopwords[strings.ToLower(window[len(window)-1])] {
		return false
	}
	for _, w := range window {
		if isNumeric(w) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// phraseScore averages the member term scores with a mild length bonus so
// that informative multiword phrases are not dominated by their unigrams
func phraseScore(window []string, scores map[string]float64, n int) float64 {
	var sum float64
	var counted int
	for _, w := range window {
		key := strings.ToLower(w)
		if s, ok := scores[key]; ok {
			sum += s
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted) * (1 + 0.25*float64(n-1))
}
