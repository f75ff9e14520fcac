// internal/notifications/notifications.go
//
// Newsletter subscriber records.
//
// Context
// -------
// Readers subscribe to a blog by email; publishing a post later emails
// active subscribers.  The email transport is an external collaborator;
// this package only owns the rows: subscribe (with reactivation of a
// soft-unsubscribed address), unsubscribe by email or by the unguessable
// key embedded in every email footer, and the owner-facing listing.
package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrAlreadySubscribed means the address is already active for this
	// blog; surfaced as a field-level validation error.
	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrNotFound is returned when no subscription matches.
	ErrNotFound = errors.New("subscription not found")
)

// Subscriber mirrors one row in `notification`.
type Subscriber struct {
	ID             int64     `db:"id"`
	BlogUserID     int64     `db:"blog_user_id"`
	Email          string    `db:"email"`
	IsActive       bool      `db:"is_active"`
	UnsubscribeKey string    `db:"unsubscribe_key"`
	CreatedAt      time.Time `db:"created_at"`
}

// Subscribe adds email to a blog's list.  A previously unsubscribed
// address is reactivated in place so its unsubscribe key stays valid.
func Subscribe(ctx context.Context, db *sqlx.DB, blogUserID int64, email string) error {
	var existing Subscriber
	err := db.GetContext(ctx, &existing,
		`SELECT id, blog_user_id, email, is_active, unsubscribe_key, created_at
		   FROM notification
		  WHERE blog_user_id = ? AND email = ?`, blogUserID, email)
	switch {
	case err == nil && existing.IsActive:
		return ErrAlreadySubscribed
	case err == nil:
		_, err = db.ExecContext(ctx,
			`UPDATE notification SET is_active = TRUE WHERE id = ?`, existing.ID)
		if err != nil {
			return fmt.Errorf("reactivate subscription: %w", err)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx,
			`INSERT INTO notification (blog_user_id, email, is_active, unsubscribe_key, created_at)
			 VALUES (?, ?, TRUE, ?, NOW())`,
			blogUserID, email, uuid.NewString())
		if err != nil {
			return fmt.Errorf("create subscription: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("subscription lookup: %w", err)
	}
}

// Unsubscribe deactivates by (blog, email).
func Unsubscribe(ctx context.Context, db *sqlx.DB, blogUserID int64, email string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE notification SET is_active = FALSE
		  WHERE blog_user_id = ? AND email = ?`, blogUserID, email)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UnsubscribeByKey deletes the row behind a one-click footer link and
// returns the email that was removed.
func UnsubscribeByKey(ctx context.Context, db *sqlx.DB, key string) (string, error) {
	var sub Subscriber
	err := db.GetContext(ctx, &sub,
		`SELECT id, blog_user_id, email, is_active, unsubscribe_key, created_at
		   FROM notification WHERE unsubscribe_key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("unsubscribe key lookup: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`DELETE FROM notification WHERE id = ?`, sub.ID); err != nil {
		return "", fmt.Errorf("unsubscribe delete: %w", err)
	}
	return sub.Email, nil
}

// ActiveSubscribers lists a blog's live list for the owner dashboard.
func ActiveSubscribers(ctx context.Context, db *sqlx.DB, blogUserID int64) ([]Subscriber, error) {
	var subs []Subscriber
	err := db.SelectContext(ctx, &subs,
		`SELECT id, blog_user_id, email, is_active, unsubscribe_key, created_at
		   FROM notification
		  WHERE blog_user_id = ? AND is_active = TRUE
		  ORDER BY id`, blogUserID)
	if err != nil {
		return nil, fmt.Errorf("active subscribers: %w", err)
	}
	return subs, nil
}
