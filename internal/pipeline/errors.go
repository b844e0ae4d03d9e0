package pipeline

import "errors"

// Stage-level errors. Any of these aborts the run; the degraded report
// carries the cause with level unknown.
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrNoHeadline     = errors.New("failed to extract headline")
	ErrDiscovery      = errors.New("source discovery failed")
	ErrNoSourcesFound = errors.New("no relevant articles found")
)
