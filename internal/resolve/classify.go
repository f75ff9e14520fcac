// internal/resolve/classify.go
//
// Pure host classification.
//
// Context
// -------
// The canonical host is constrained to exactly two dot-separated labels
// (enforced by config validation), so any subdomain host has exactly
// three.  This is a deliberate structural assumption, not a general
// multi-level-subdomain parser; it keeps classification to a split and
// two comparisons on the hot path.
package resolve

import "strings"

// Canonical is the parsed platform root domain.
type Canonical struct {
	Host string // "plume.blog"
	name string // "plume"
	tld  string // "blog"
}

// ParseCanonical splits the configured canonical host.  Config validation
// guarantees the two-label shape; ok is false if it was bypassed.
func ParseCanonical(host string) (Canonical, bool) {
	parts := strings.Split(host, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Canonical{}, false
	}
	return Canonical{Host: host, name: parts[0], tld: parts[1]}, true
}

// Class is the shape of an inbound host.
type Class int

const (
	// ClassCanonical – the platform's own domain, or no Host header at
	// all (some test clients and health checkers omit it).
	ClassCanonical Class = iota

	// ClassSubdomain – {sub}.{canonical}; the candidate subdomain still
	// needs denylist and existence checks.
	ClassSubdomain

	// ClassCustomCandidate – anything else; either a registered custom
	// domain or an invalid host, decided by a tenant lookup.
	ClassCustomCandidate
)

// Classify buckets a port-stripped host and returns the candidate
// subdomain for ClassSubdomain.
func (c Canonical) Classify(host string) (Class, string) {
	if host == "" || host == c.Host {
		return ClassCanonical, ""
	}
	parts := strings.Split(host, ".")
	if len(parts) == 3 && parts[1] == c.name && parts[2] == c.tld {
		return ClassSubdomain, parts[0]
	}
	return ClassCustomCandidate, ""
}

// StripPort removes any ":port" suffix from a Host header.
func StripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
