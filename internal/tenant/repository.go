// internal/tenant/repository.go
//
// sqlx query helpers for the `user` table.
//
// Context
// -------
// Every lookup is scoped by one of the two unique keys the resolver relies
// on: `username` (the subdomain slug) or `custom_domain` (verbatim host).
// Soft-deleted accounts are invisible everywhere; the cascade to content
// rows is handled by foreign keys.
package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/plumeblog/plume/internal/denylist"
	"github.com/plumeblog/plume/internal/viewer"
)

var (
	// ErrNotFound is returned when no live account matches the key.
	ErrNotFound = errors.New("tenant not found")

	// ErrUsernameTaken surfaces the unique-index backstop on username.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrReservedUsername rejects denylisted subdomain names at signup.
	ErrReservedUsername = errors.New("username is reserved")

	// ErrDomainTaken means another account already connected this domain.
	ErrDomainTaken = errors.New("custom domain already connected to a blog")

	// ErrBadDomain means the submitted custom domain is not a FQDN.
	ErrBadDomain = errors.New("custom domain is not a valid hostname")
)

var domainValidator = validator.New()

const selectCols = `id, username, email, blog_title, blog_byline,
	custom_domain, redirect_domain, is_approved, is_premium,
	notifications_on, deleted_at, created_at, updated_at`

// ByUsername fetches a single live account by its subdomain slug.
func ByUsername(ctx context.Context, db *sqlx.DB, username string) (*Record, error) {
	q := `SELECT ` + selectCols + `
	        FROM user
	       WHERE username = ? AND deleted_at IS NULL
	       LIMIT 1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tenant by username: %w", err)
	}
	return &rec, nil
}

// ByCustomDomain fetches the account serving host as its custom domain.
func ByCustomDomain(ctx context.Context, db *sqlx.DB, host string) (*Record, error) {
	q := `SELECT ` + selectCols + `
	        FROM user
	       WHERE custom_domain = ? AND deleted_at IS NULL
	       LIMIT 1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, host); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tenant by custom domain: %w", err)
	}
	return &rec, nil
}

// Create registers a new account.  The denylist check is a fast path; the
// unique index on username is the authoritative guard.
func Create(ctx context.Context, db *sqlx.DB, username, email string) (int64, error) {
	if denylist.UsernameDisallowed(username) {
		return 0, ErrReservedUsername
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO user (username, email, blog_title, created_at, updated_at)
		 VALUES (?, ?, ?, NOW(), NOW())`,
		username, email, username)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("create tenant: %w", err)
	}
	return res.LastInsertId()
}

// Settings is the mutable slice of an account a tenant may edit.
type Settings struct {
	BlogTitle       string
	BlogByline      string
	CustomDomain    *string
	RedirectDomain  *string
	NotificationsOn bool
}

// UpdateSettings applies a settings form.  A submitted custom domain must
// be a FQDN and not connected to any other account; the application check
// gives a friendly error, the unique index catches the race.
func UpdateSettings(ctx context.Context, db *sqlx.DB, id int64, s Settings) error {
	if s.CustomDomain != nil && *s.CustomDomain != "" {
		if err := domainValidator.Var(*s.CustomDomain, "fqdn"); err != nil {
			return ErrBadDomain
		}
		var other int
		err := db.GetContext(ctx, &other,
			`SELECT COUNT(*) FROM user
			  WHERE custom_domain = ? AND id != ? AND deleted_at IS NULL`,
			*s.CustomDomain, id)
		if err != nil {
			return fmt.Errorf("custom domain check: %w", err)
		}
		if other > 0 {
			return ErrDomainTaken
		}
	}

	_, err := db.ExecContext(ctx,
		`UPDATE user
		    SET blog_title = ?, blog_byline = ?, custom_domain = ?,
		        redirect_domain = ?, notifications_on = ?, updated_at = NOW()
		  WHERE id = ?`,
		s.BlogTitle, s.BlogByline, s.CustomDomain,
		s.RedirectDomain, s.NotificationsOn, id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDomainTaken
		}
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// Delete soft-deletes an account.  Content rows cascade via foreign keys
// when the row is later purged.
func Delete(ctx context.Context, db *sqlx.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE user SET deleted_at = NOW() WHERE id = ?`, id)
	return err
}

//
// viewer.Lookup adapter
//

// Repo adapts the package-level queries to the small interfaces other
// packages declare (viewer.Lookup today).
type Repo struct {
	DB *sqlx.DB
}

// ViewerByUsername satisfies viewer.Lookup for the session middleware.
func (r Repo) ViewerByUsername(ctx context.Context, username string) (viewer.Viewer, error) {
	rec, err := ByUsername(ctx, r.DB, username)
	if err != nil {
		return viewer.Viewer{}, err
	}
	return viewer.Viewer{ID: rec.ID, Username: rec.Username}, nil
}

//
// helpers
//

// isDuplicateKey recognises MySQL/MariaDB error 1062 without importing
// driver-specific types.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") || strings.Contains(msg, "Duplicate entry")
}
