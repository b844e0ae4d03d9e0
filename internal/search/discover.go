package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/truthscope/internal/keywords"
	"github.com/ppiankov/truthscope/internal/util"
)

// Searcher is the query-to-results capability behind discovery.
type Searcher interface {
	Search(ctx context.Context, query string, n int) ([]Item, error)
}

// Discoverer turns a claim headline into candidate source URLs: it extracts
// search terms from the headline, queries the search backend and filters the
// results down to well-formed URLs.
type Discoverer struct {
	searcher  Searcher
	extractor keywords.Extractor
	maxTerms  int
	logger    *zap.Logger
}

// NewDiscoverer creates a discoverer.
func NewDiscoverer(searcher Searcher, extractor keywords.Extractor, maxTerms int, logger *zap.Logger) *Discoverer {
	if maxTerms <= 0 {
		maxTerms = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{
		searcher:  searcher,
		extractor: extractor,
		maxTerms:  maxTerms,
		logger:    logger,
	}
}

// Discover returns up to n candidate URLs for the headline. A nil error
// with an empty slice means the search genuinely found nothing; a search or
// extraction failure is reported as an error so callers can tell the two
// apart.
func (d *Discoverer) Discover(ctx context.Context, headline string, n int) ([]Item, error) {
	if strings.TrimSpace(headline) == "" {
		return nil, fmt.Errorf("empty headline")
	}

	// Single-word terms make better search queries than full phrases.
	terms, err := d.extractor.Extract(ctx, headline, d.maxTerms, 1)
	if err != nil {
		return nil, fmt.Errorf("extract search terms: %w", err)
	}
	query := strings.Join(terms, " ")
	if query == "" {
		query = headline
	}

	items, err := d.searcher.Search(ctx, query, n)
	if err != nil {
		return nil, err
	}

	valid := make([]Item, 0, len(items))
	for _, it := range items {
		if it.URL != "" && util.IsValidURL(it.URL) {
			valid = append(valid, it)
		}
	}
	d.logger.Info("sources discovered",
		zap.String("query", query),
		zap.Int("returned", len(items)),
		zap.Int("valid", len(valid)))
	return valid, nil
}
