// internal/resolve/target.go
//
// Redirect-target value type.
//
// Context
// -------
// Tenants store their custom and retirement domains as free text, with or
// without a protocol ("newsite.com", "https://newsite.com").  Redirect
// targets built from them must preserve the client's scheme when none was
// given, which HTTP spells as a protocol-relative URL ("//host/path").
// Centralising the formatting here replaces ad-hoc "does the string
// contain ://" concatenation at every redirect site.
package resolve

import "strings"

// Target is a redirect destination.  An empty Scheme renders as
// protocol-relative so the client keeps whatever scheme it arrived with.
type Target struct {
	Scheme string // "https", "http", or "" for protocol-relative
	Host   string
	Path   string
}

// String renders the Location header value.
func (t Target) String() string {
	var b strings.Builder
	if t.Scheme != "" {
		b.WriteString(t.Scheme)
		b.WriteString(":")
	}
	b.WriteString("//")
	b.WriteString(t.Host)
	if t.Path == "" {
		b.WriteString("/")
	} else {
		b.WriteString(t.Path)
	}
	return b.String()
}

// TargetFromDomain splits an operator-entered domain into scheme and host
// exactly once, then attaches path.  "newsite.com" stays protocol-relative;
// "https://newsite.com" keeps its scheme.
func TargetFromDomain(domain, path string) Target {
	scheme := ""
	if i := strings.Index(domain, "://"); i != -1 {
		scheme = domain[:i]
		domain = domain[i+len("://"):]
	}
	return Target{Scheme: scheme, Host: domain, Path: path}
}

// StripFirstSegment removes the leading path segment: a retired blog's new
// domain serves content at its root, so "/blog/hello/" forwards as
// "/hello/" and "/rss/" collapses to "/".
func StripFirstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i != -1 {
		return trimmed[i:]
	}
	return "/"
}
