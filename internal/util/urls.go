// Package util holds small helpers shared across the pipeline.
package util

import "regexp"

// urlPattern matches http/https URLs with a domain name, localhost, or a
// dotted IP address, an optional port and an optional path or query.
var urlPattern = regexp.MustCompile(`(?i)^(?:http|https)://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// IsValidURL reports whether s is a well-formed absolute http(s) URL.
// Used both for input-type detection and for filtering discovered sources
// before any network work is spent on them.
func IsValidURL(s string) bool {
	return urlPattern.MatchString(s)
}
