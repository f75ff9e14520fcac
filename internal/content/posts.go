// internal/content/posts.go
//
// Post repository.
//
// Slug life-cycle: derived from the title on create, disambiguated with a
// numeric suffix inside the owner's namespace, re-derivable on update via
// the SlugRegen sentinel.  The (owner_id, slug) unique index is the
// authoritative guard; a constraint violation surfaces as ErrSlugTaken so
// the caller can re-display the form.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/jmoiron/sqlx"
)

const postCols = `id, owner_id, title, slug, body, published_at, created_at, updated_at`

// CreatePost inserts a post, deriving its slug from the title.
func CreatePost(ctx context.Context, db *sqlx.DB, ownerID int64, title, body string, publishedAt *time.Time) (*Post, error) {
	slug, err := uniqueSlug(ctx, db, postTable, ownerID, MakeSlug(title), 0)
	if err != nil {
		return nil, err
	}

	body = stripControlChars(body)
	res, err := db.ExecContext(ctx,
		`INSERT INTO post (owner_id, title, slug, body, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		ownerID, title, slug, body, publishedAt)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	id, _ := res.LastInsertId()
	return PostByID(ctx, db, ownerID, id)
}

// UpdatePost applies an edit.  The submitted slug is normalised through
// MakeSlug; the SlugRegen sentinel regenerates it from the title instead.
func UpdatePost(ctx context.Context, db *sqlx.DB, p *Post, title, slug, body string, publishedAt *time.Time) error {
	base := slug
	if base == SlugRegen || base == "" {
		base = title
	}
	newSlug, err := uniqueSlug(ctx, db, postTable, p.OwnerID, MakeSlug(base), p.ID)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx,
		`UPDATE post
		    SET title = ?, slug = ?, body = ?, published_at = ?, updated_at = NOW()
		  WHERE id = ? AND owner_id = ?`,
		title, newSlug, stripControlChars(body), publishedAt, p.ID, p.OwnerID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("update post: %w", err)
	}
	p.Title, p.Slug, p.Body, p.PublishedAt = title, newSlug, body, publishedAt
	return nil
}

// DeletePost removes a post within the owner's namespace.
func DeletePost(ctx context.Context, db *sqlx.DB, ownerID, id int64) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM post WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PostByID fetches one post scoped to its owner.
func PostByID(ctx context.Context, db *sqlx.DB, ownerID, id int64) (*Post, error) {
	var p Post
	err := db.GetContext(ctx, &p,
		`SELECT `+postCols+` FROM post WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("post by id: %w", err)
	}
	return &p, nil
}

// PostBySlug fetches one post scoped to its owner.
func PostBySlug(ctx context.Context, db *sqlx.DB, ownerID int64, slug string) (*Post, error) {
	var p Post
	err := db.GetContext(ctx, &p,
		`SELECT `+postCols+` FROM post WHERE owner_id = ? AND slug = ?`, ownerID, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("post by slug: %w", err)
	}
	return &p, nil
}

// PublishedPosts lists publicly visible posts, newest first.
func PublishedPosts(ctx context.Context, db *sqlx.DB, ownerID int64) ([]Post, error) {
	var posts []Post
	err := db.SelectContext(ctx, &posts,
		`SELECT `+postCols+` FROM post
		  WHERE owner_id = ? AND published_at IS NOT NULL AND published_at <= CURDATE()
		  ORDER BY published_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("published posts: %w", err)
	}
	return posts, nil
}

// AllPosts lists every post for the owner's dashboard, newest first.
func AllPosts(ctx context.Context, db *sqlx.DB, ownerID int64) ([]Post, error) {
	var posts []Post
	err := db.SelectContext(ctx, &posts,
		`SELECT `+postCols+` FROM post WHERE owner_id = ? ORDER BY id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("all posts: %w", err)
	}
	return posts, nil
}

// DraftPosts lists unpublished posts, owner-only by construction since
// callers gate on IsOwner.
func DraftPosts(ctx context.Context, db *sqlx.DB, ownerID int64) ([]Post, error) {
	var posts []Post
	err := db.SelectContext(ctx, &posts,
		`SELECT `+postCols+` FROM post
		  WHERE owner_id = ? AND published_at IS NULL ORDER BY id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("draft posts: %w", err)
	}
	return posts, nil
}

//
// helpers
//

// ParsePublishDate turns user input into a publish date.  Empty input
// means draft.  dateparse accepts "2024-03-01", "Mar 1 2024", and most
// other sane spellings; the time of day is discarded.
func ParsePublishDate(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	t, err := dateparse.ParseAny(input)
	if err != nil {
		return nil, fmt.Errorf("unrecognized date %q: %w", input, err)
	}
	d := t.UTC().Truncate(24 * time.Hour)
	return &d, nil
}

// stripControlChars drops non-printable runes except tab and newline so
// pasted content cannot smuggle terminal escapes into stored bodies.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// isDuplicateKey recognises MySQL/MariaDB error 1062 without importing
// driver-specific types.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") || strings.Contains(msg, "Duplicate entry")
}
