package keywords

import (
	"strings"

	"github.com/kljensen/snowball"
)

// Mode selects how keyphrases are reduced to comparable tokens
type Mode string

const (
	// ModeBasic lowercases phrases and splits them on whitespace
	ModeBasic Mode = "basic"
	// ModeEnriched additionally strips non-alphabetic characters, drops
	// stopwords and reduces surviving tokens to their stem form
	ModeEnriched Mode = "enriched"
)

// ParseMode maps a config string to a Mode, defaulting to enriched
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(s)) == ModeBasic {
		return ModeBasic
	}
	return ModeEnriched
}

// Preprocess flattens a keyphrase list into a token sequence ready for
// set-based comparison. Empty input yields an empty sequence, never an error,
// and identical input and mode always produce identical output.
func Preprocess(phrases []string, mode Mode) []string {
	var tokens []string
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		for _, word := range strings.Fields(strings.ToLower(phrase)) {
			if mode != ModeEnriched {
				tokens = append(tokens, word)
				continue
			}
			word = stripNonAlpha(word)
			if word == "" || stopwords[word] {
				continue
			}
			stemmed, err := snowball.Stem(word, "english", false)
			if err != nil {
				stemmed = word
			}
			tokens = append(tokens, stemmed)
		}
	}
	return tokens
}

// TokenSet builds a membership set from a token sequence, dropping empties
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok != "" {
			set[strings.ToLower(tok)] = struct{}{}
		}
	}
	return set
}

// stripNonAlpha keeps only a-z characters, matching the comparison
// normalization applied before stemming
func stripNonAlpha(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
