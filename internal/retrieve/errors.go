package retrieve

import "errors"

// ErrInvalidURL marks a source rejected before any network work.
var ErrInvalidURL = errors.New("invalid URL format")

// ErrScraperUnavailable marks a batch failed by the extraction service
// being down.
var ErrScraperUnavailable = errors.New("scraper service is not available")
