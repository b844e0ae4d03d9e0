package trust

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultWeight is applied to domains without a registry entry
const DefaultWeight = 1.0

// LookupPolicy decides how a host is resolved against the registry.
// The registry carries a few full-subdomain entries (for example a specific
// news subdomain weighted differently from its parent), which base-domain
// normalization would collapse; exact-first lookup keeps those reachable.
type LookupPolicy string

const (
	// LookupExactFirst tries the www-stripped host before the base domain
	LookupExactFirst LookupPolicy = "exact_first"
	// LookupBaseOnly looks up the normalized base domain only
	LookupBaseOnly LookupPolicy = "base_only"
)

// ParsePolicy maps a config string to a LookupPolicy, defaulting to exact_first
func ParsePolicy(s string) LookupPolicy {
	if LookupPolicy(strings.ToLower(s)) == LookupBaseOnly {
		return LookupBaseOnly
	}
	return LookupExactFirst
}

// Registry maps source domains to trust weights. It is immutable after
// construction and safe for concurrent use without synchronization.
type Registry struct {
	weights map[string]float64
	policy  LookupPolicy
}

// NewRegistry builds a registry from a weight table. The table is copied;
// later mutation of the argument does not affect the registry.
func NewRegistry(weights map[string]float64, policy LookupPolicy) *Registry {
	copied := make(map[string]float64, len(weights))
	for domain, w := range weights {
		copied[strings.ToLower(domain)] = w
	}
	return &Registry{weights: copied, policy: policy}
}

// NewDefaultRegistry builds a registry from the built-in weight table
func NewDefaultRegistry(policy LookupPolicy) *Registry {
	return NewRegistry(defaultWeights, policy)
}

// NewRegistryWithOverrides layers a custom weight table over the built-in
// one. Overridden domains replace the defaults; the rest stay.
func NewRegistryWithOverrides(overrides map[string]float64, policy LookupPolicy) *Registry {
	merged := make(map[string]float64, len(defaultWeights)+len(overrides))
	for domain, w := range defaultWeights {
		merged[domain] = w
	}
	for domain, w := range overrides {
		merged[strings.ToLower(domain)] = w
	}
	return NewRegistry(merged, policy)
}

// LoadWeights reads a domain→weight table from a YAML file
func LoadWeights(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trust weights: %w", err)
	}
	var weights map[string]float64
	if err := yaml.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("parse trust weights: %w", err)
	}
	return weights, nil
}

// WeightFor returns the trust weight for a URL's domain. It never fails:
// malformed URLs map to the default weight.
func (r *Registry) WeightFor(rawURL string) float64 {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return DefaultWeight
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return DefaultWeight
	}
	host = strings.TrimPrefix(host, "www.")

	if r.policy == LookupExactFirst {
		if w, ok := r.weights[host]; ok {
			return w
		}
	}
	if w, ok := r.weights[BaseDomain(host)]; ok {
		return w
	}
	return DefaultWeight
}

// Len returns the number of registered domains
func (r *Registry) Len() int {
	return len(r.weights)
}

// BaseDomain reduces a host to its registrable domain. Hosts with more than
// two labels keep the last two, unless the second-to-last label is the "co"
// compound-suffix marker (co.in, co.uk), in which case the last three are
// kept. Two-label hosts pass through unchanged.
func BaseDomain(host string) string {
	parts := strings.Split(host, ".")
	switch {
	case len(parts) > 2 && parts[len(parts)-2] != "co":
		return strings.Join(parts[len(parts)-2:], ".")
	case len(parts) > 3 && parts[len(parts)-2] == "co":
		return strings.Join(parts[len(parts)-3:], ".")
	default:
		return host
	}
}
