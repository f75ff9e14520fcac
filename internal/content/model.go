// internal/content/model.go
//
// Row types for tenant-owned content.  Every record belongs to exactly one
// owner (the tenant's user id); slugs are unique per (owner, kind) via
// database unique indexes, with application pre-checks supplying the
// friendly error messages.
package content

import "time"

// Post is a blog entry.  PublishedAt drives visibility: NULL is a draft,
// a future date is scheduled, past or today is public.  The column is a
// date, not a timestamp; "today" is evaluated in UTC.
type Post struct {
	ID          int64      `db:"id"`
	OwnerID     int64      `db:"owner_id"`
	Title       string     `db:"title"`
	Slug        string     `db:"slug"`
	Body        string     `db:"body"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Published reports whether the post is publicly visible right now.
func (p *Post) Published() bool {
	if p.PublishedAt == nil {
		return false
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return !p.PublishedAt.After(today)
}

// Page is standalone content (about, contact, …) served at /{slug}.
// Hidden pages are reachable by URL but left out of public navigation.
type Page struct {
	ID        int64     `db:"id"`
	OwnerID   int64     `db:"owner_id"`
	Title     string    `db:"title"`
	Slug      string    `db:"slug"`
	Body      string    `db:"body"`
	IsHidden  bool      `db:"is_hidden"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Image is an uploaded raster image, stored inline.  The slug is a short
// random token, not derived from the name, so URLs stay stable across
// renames.
type Image struct {
	ID        int64     `db:"id"`
	OwnerID   int64     `db:"owner_id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Extension string    `db:"extension"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
}

// Filename is the public name, e.g. "sunset.jpeg".
func (i *Image) Filename() string { return i.Slug + "." + i.Extension }

// Snapshot is an autosave copy of an in-progress post body.  History per
// owner is capped; see CreateSnapshot.
type Snapshot struct {
	ID        int64     `db:"id"`
	OwnerID   int64     `db:"owner_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
