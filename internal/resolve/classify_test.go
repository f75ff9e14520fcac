// internal/resolve/classify_test.go
//
// Unit-tests for host classification.
//
// Run: go test ./internal/resolve -v

package resolve

import "testing"

func mustCanonical(t *testing.T, host string) Canonical {
	t.Helper()
	c, ok := ParseCanonical(host)
	if !ok {
		t.Fatalf("ParseCanonical(%q) rejected a valid host", host)
	}
	return c
}

func TestParseCanonical(t *testing.T) {
	if _, ok := ParseCanonical("plume.blog"); !ok {
		t.Fatal("two-label host rejected")
	}
	for _, bad := range []string{"", "plume", "a.plume.blog", ".blog", "plume."} {
		if _, ok := ParseCanonical(bad); ok {
			t.Errorf("ParseCanonical(%q) accepted a malformed host", bad)
		}
	}
}

func TestClassify(t *testing.T) {
	c := mustCanonical(t, "plume.blog")

	cases := []struct {
		host    string
		class   Class
		sub     string
	}{
		{"plume.blog", ClassCanonical, ""},
		{"", ClassCanonical, ""}, // missing Host header
		{"alice.plume.blog", ClassSubdomain, "alice"},
		{"bob.plume.blog", ClassSubdomain, "bob"},
		{"alice.other.blog", ClassCustomCandidate, ""},
		{"alice.plume.com", ClassCustomCandidate, ""},
		{"deep.alice.plume.blog", ClassCustomCandidate, ""},
		{"example.com", ClassCustomCandidate, ""},
		{"localhost", ClassCustomCandidate, ""},
	}
	for _, tc := range cases {
		class, sub := c.Classify(tc.host)
		if class != tc.class || sub != tc.sub {
			t.Errorf("Classify(%q) = (%v, %q), want (%v, %q)",
				tc.host, class, sub, tc.class, tc.sub)
		}
	}
}

func TestStripPort(t *testing.T) {
	if got := StripPort("alice.plume.blog:8080"); got != "alice.plume.blog" {
		t.Errorf("StripPort kept the port: %q", got)
	}
	if got := StripPort("plume.blog"); got != "plume.blog" {
		t.Errorf("StripPort mangled a portless host: %q", got)
	}
}
