// internal/content/slug.go
//
// Slug derivation and per-owner disambiguation.
//
// Rules (MakeSlug)
// ----------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one “-”.  That strips
//    spaces, punctuation, emoji, and non-ASCII.
// 3. Collapse consecutive “-” to a single “-”.
// 4. Trim leading / trailing “-”.
// 5. If the result is empty, return "post".
//
// Notes
// -----
// • No Unicode transliteration; slugs are ASCII-only.
// • Slugs are capped at 100 bytes; callers may truncate earlier.
// • Submitting the literal SlugRegen value asks for regeneration from the
//   title instead of a literal slug.

package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SlugRegen is the sentinel a tenant submits in the slug field to request
// a fresh slug derived from the title.
const SlugRegen = ":gen"

// MakeSlug converts title → lower-kebab ASCII.
func MakeSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			// any non-ASCII or punctuation becomes a single dash
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "post"
	}
	if len(slug) > 100 {
		slug = slug[:100]
		slug = strings.TrimRightFunc(slug, func(r rune) bool { return r == '-' })
	}
	return slug
}

// uniqueSlug appends "-2", "-3", … until the slug is free within the
// owner's namespace for the given table.  excludeID skips the row being
// updated so a post can keep its own slug.  This is a fast-path check;
// the (owner_id, slug) unique index remains the authoritative guard.
func uniqueSlug(ctx context.Context, db *sqlx.DB, table string, ownerID int64, base string, excludeID int64) (string, error) {
	slug := base
	for n := 2; ; n++ {
		taken, err := slugTaken(ctx, db, table, ownerID, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(n)
	}
}

func slugTaken(ctx context.Context, db *sqlx.DB, table string, ownerID int64, slug string, excludeID int64) (bool, error) {
	// table is one of the two compile-time constants below, never user
	// input.
	q := `SELECT COUNT(*) FROM ` + table + ` WHERE owner_id = ? AND slug = ? AND id != ?`
	var n int
	if err := db.GetContext(ctx, &n, q, ownerID, slug, excludeID); err != nil {
		return false, fmt.Errorf("slug check: %w", err)
	}
	return n > 0, nil
}

const (
	postTable = "post"
	pageTable = "page"
)
