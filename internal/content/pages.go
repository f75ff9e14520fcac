// internal/content/pages.go
//
// Page repository.
//
// Pages differ from posts in two ways: the tenant chooses the slug
// directly (it becomes a top-level path segment on their blog), and the
// slug must not shadow a system route, so the reserved-slug denylist is
// checked on every create and update.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/plumeblog/plume/internal/denylist"
)

const pageCols = `id, owner_id, title, slug, body, is_hidden, created_at, updated_at`

// CreatePage inserts a page with a tenant-chosen slug.
func CreatePage(ctx context.Context, db *sqlx.DB, ownerID int64, title, slug string, isHidden bool, body string) (*Page, error) {
	slug = MakeSlug(slug)
	if denylist.PageSlugDisallowed(slug) {
		return nil, ErrReservedSlug
	}
	if taken, err := slugTaken(ctx, db, pageTable, ownerID, slug, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrSlugTaken
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO page (owner_id, title, slug, body, is_hidden, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		ownerID, title, slug, stripControlChars(body), isHidden)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create page: %w", err)
	}
	id, _ := res.LastInsertId()
	return PageByID(ctx, db, ownerID, id)
}

// UpdatePage applies an edit, re-running the reserved and uniqueness
// checks against the possibly-changed slug.
func UpdatePage(ctx context.Context, db *sqlx.DB, p *Page, title, slug string, isHidden bool, body string) error {
	slug = MakeSlug(slug)
	if denylist.PageSlugDisallowed(slug) {
		return ErrReservedSlug
	}
	if taken, err := slugTaken(ctx, db, pageTable, p.OwnerID, slug, p.ID); err != nil {
		return err
	} else if taken {
		return ErrSlugTaken
	}

	_, err := db.ExecContext(ctx,
		`UPDATE page
		    SET title = ?, slug = ?, body = ?, is_hidden = ?, updated_at = NOW()
		  WHERE id = ? AND owner_id = ?`,
		title, slug, stripControlChars(body), isHidden, p.ID, p.OwnerID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugTaken
		}
		return fmt.Errorf("update page: %w", err)
	}
	p.Title, p.Slug, p.Body, p.IsHidden = title, slug, body, isHidden
	return nil
}

// DeletePage removes a page within the owner's namespace.
func DeletePage(ctx context.Context, db *sqlx.DB, ownerID, id int64) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM page WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// PageByID fetches one page scoped to its owner.
func PageByID(ctx context.Context, db *sqlx.DB, ownerID, id int64) (*Page, error) {
	var p Page
	err := db.GetContext(ctx, &p,
		`SELECT `+pageCols+` FROM page WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("page by id: %w", err)
	}
	return &p, nil
}

// PageBySlug fetches one page scoped to its owner.
func PageBySlug(ctx context.Context, db *sqlx.DB, ownerID int64, slug string) (*Page, error) {
	var p Page
	err := db.GetContext(ctx, &p,
		`SELECT `+pageCols+` FROM page WHERE owner_id = ? AND slug = ?`, ownerID, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("page by slug: %w", err)
	}
	return &p, nil
}

// VisiblePages lists non-hidden pages for public navigation.
func VisiblePages(ctx context.Context, db *sqlx.DB, ownerID int64) ([]Page, error) {
	var pages []Page
	err := db.SelectContext(ctx, &pages,
		`SELECT `+pageCols+` FROM page
		  WHERE owner_id = ? AND is_hidden = FALSE ORDER BY title`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("visible pages: %w", err)
	}
	return pages, nil
}

// AllPages lists every page for the owner's dashboard.
func AllPages(ctx context.Context, db *sqlx.DB, ownerID int64) ([]Page, error) {
	var pages []Page
	err := db.SelectContext(ctx, &pages,
		`SELECT `+pageCols+` FROM page WHERE owner_id = ? ORDER BY title`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("all pages: %w", err)
	}
	return pages, nil
}
