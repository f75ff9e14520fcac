// internal/content/guard.go
//
// Ownership and visibility predicates.
//
// Context
// -------
// Reads and writes obey different rules:
//
//   • Public reads see only published content (publish date set and not
//     in the future).  The authenticated owner additionally sees drafts
//     and scheduled posts.
//   • Writes require the authenticated identity to BE the resolved
//     tenant: cross-tenant writes fail with ErrNotOwner (mapped to 403 at
//     the handler boundary), never with a redirect.
//
// Handlers compose these predicates explicitly instead of inheriting
// behavior, so each endpoint's authorization is visible at its call site.
package content

import (
	"errors"

	"github.com/plumeblog/plume/internal/resolve"
	"github.com/plumeblog/plume/internal/viewer"
)

var (
	// ErrNotFound is returned when no row matches a content lookup.
	ErrNotFound = errors.New("content not found")

	// ErrNotOwner rejects writes (and owner-only reads) by anyone other
	// than the resolved tenant.
	ErrNotOwner = errors.New("not the content owner")

	// ErrSlugTaken surfaces a per-owner slug collision.
	ErrSlugTaken = errors.New("slug already used")

	// ErrReservedSlug rejects page slugs that shadow system routes.
	ErrReservedSlug = errors.New("slug is reserved")

	// ErrNotUTF8 rejects imported files that do not decode as UTF-8.
	ErrNotUTF8 = errors.New("file is not valid UTF-8")

	// ErrNotApproved rejects image uploads from unapproved accounts.
	ErrNotApproved = errors.New("account not approved for uploads")

	// ErrImageTooLarge rejects oversized image uploads.
	ErrImageTooLarge = errors.New("image exceeds the size limit")
)

// IsOwner reports whether the request is authenticated as the owner of
// the resolved blog.  False for anonymous viewers, canonical-host
// requests, and other tenants.
func IsOwner(res resolve.Resolution, v viewer.Viewer, authed bool) bool {
	return authed && res.HasTenant() && v.IsOwnerOf(res.Subdomain())
}

// RequireOwner is the write-side guard: the viewer must be authenticated
// as the resolved tenant.
func RequireOwner(res resolve.Resolution, v viewer.Viewer, authed bool) error {
	if !IsOwner(res, v, authed) {
		return ErrNotOwner
	}
	return nil
}

// CanViewPost is the read-side guard for a single post: the owner sees
// everything, everyone else only published entries.
func CanViewPost(p *Post, v viewer.Viewer, authed bool) bool {
	if authed && v.ID == p.OwnerID {
		return true
	}
	return p.Published()
}
