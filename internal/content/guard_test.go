// internal/content/guard_test.go
//
// Visibility and ownership predicate tests.

package content

import (
	"errors"
	"testing"
	"time"

	"github.com/plumeblog/plume/internal/resolve"
	"github.com/plumeblog/plume/internal/tenant"
	"github.com/plumeblog/plume/internal/viewer"
)

func daysFromNow(n int) *time.Time {
	d := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, n)
	return &d
}

func TestPostPublished(t *testing.T) {
	cases := []struct {
		name string
		at   *time.Time
		want bool
	}{
		{"draft", nil, false},
		{"published yesterday", daysFromNow(-1), true},
		{"published today", daysFromNow(0), true},
		{"scheduled tomorrow", daysFromNow(1), false},
	}
	for _, tc := range cases {
		p := &Post{PublishedAt: tc.at}
		if got := p.Published(); got != tc.want {
			t.Errorf("%s: Published() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanViewPost(t *testing.T) {
	owner := viewer.Viewer{ID: 1, Username: "alice"}
	stranger := viewer.Viewer{ID: 2, Username: "bob"}

	draft := &Post{ID: 1, OwnerID: 1}
	scheduled := &Post{ID: 2, OwnerID: 1, PublishedAt: daysFromNow(3)}
	public := &Post{ID: 3, OwnerID: 1, PublishedAt: daysFromNow(-3)}

	if !CanViewPost(draft, owner, true) {
		t.Error("owner cannot see their own draft")
	}
	if CanViewPost(draft, stranger, true) || CanViewPost(draft, viewer.Viewer{}, false) {
		t.Error("draft leaked to a non-owner")
	}
	if CanViewPost(scheduled, stranger, true) {
		t.Error("scheduled post leaked to a non-owner")
	}
	if !CanViewPost(public, viewer.Viewer{}, false) {
		t.Error("published post hidden from anonymous viewer")
	}
}

func TestRequireOwner(t *testing.T) {
	res := resolve.TenantScoped(&tenant.Record{ID: 1, Username: "alice"})
	alice := viewer.Viewer{ID: 1, Username: "alice"}
	bob := viewer.Viewer{ID: 2, Username: "bob"}

	if err := RequireOwner(res, alice, true); err != nil {
		t.Errorf("owner rejected: %v", err)
	}
	if err := RequireOwner(res, bob, true); !errors.Is(err, ErrNotOwner) {
		t.Errorf("cross-tenant write allowed: %v", err)
	}
	if err := RequireOwner(res, viewer.Viewer{}, false); !errors.Is(err, ErrNotOwner) {
		t.Errorf("anonymous write allowed: %v", err)
	}
	if err := RequireOwner(resolve.CanonicalResolution(), alice, true); !errors.Is(err, ErrNotOwner) {
		t.Errorf("canonical-host write allowed: %v", err)
	}
}
