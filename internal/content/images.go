// internal/content/images.go
//
// Image repository.
//
// Uploads are restricted to approved accounts and to 1 MB nominal (1.2 MB
// hard limit, so a "1 MB" photo straight off a phone still fits).  Slugs
// are the first eight hex digits of a UUID; raw reads are public and keyed
// by slug alone, since the slug is unguessable.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MaxImageBytes is the hard upload limit.
const MaxImageBytes = 1200 * 1000

const imageCols = `id, owner_id, name, slug, extension, data, created_at`

// CreateImage stores an upload for an approved owner.  filename supplies
// both the display name and the extension; jpg is normalised to jpeg.
func CreateImage(ctx context.Context, db *sqlx.DB, ownerID int64, approved bool, filename string, data []byte) (*Image, error) {
	if !approved {
		return nil, ErrNotApproved
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	name, ext := splitImageName(filename)
	slug := uuid.NewString()[:8]

	res, err := db.ExecContext(ctx,
		`INSERT INTO image (owner_id, name, slug, extension, data, created_at)
		 VALUES (?, ?, ?, ?, ?, NOW())`,
		ownerID, name, slug, ext, data)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Image{ID: id, OwnerID: ownerID, Name: name, Slug: slug, Extension: ext, Data: data}, nil
}

// ImageBySlug fetches an image for public raw serving.  Not owner-scoped:
// the random slug is the access token.
func ImageBySlug(ctx context.Context, db *sqlx.DB, slug string) (*Image, error) {
	var img Image
	err := db.GetContext(ctx, &img,
		`SELECT `+imageCols+` FROM image WHERE slug = ?`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("image by slug: %w", err)
	}
	return &img, nil
}

// ImagesByOwner lists an owner's uploads, newest first.
func ImagesByOwner(ctx context.Context, db *sqlx.DB, ownerID int64) ([]Image, error) {
	var imgs []Image
	err := db.SelectContext(ctx, &imgs,
		`SELECT `+imageCols+` FROM image WHERE owner_id = ? ORDER BY id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("images by owner: %w", err)
	}
	return imgs, nil
}

// RenameImage updates the display name only; slug and bytes are fixed.
func RenameImage(ctx context.Context, db *sqlx.DB, ownerID, id int64, name string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE image SET name = ? WHERE id = ? AND owner_id = ?`, name, id, ownerID)
	if err != nil {
		return fmt.Errorf("rename image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteImage removes an upload within the owner's namespace.
func DeleteImage(ctx context.Context, db *sqlx.DB, ownerID, id int64) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM image WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// splitImageName separates "my.photo.JPG" into ("my-photo", "jpeg").
func splitImageName(filename string) (name, ext string) {
	name = filename
	ext = "png"
	if i := strings.LastIndexByte(filename, '.'); i > 0 {
		name = filename[:i]
		ext = strings.ToLower(filename[i+1:])
	}
	name = strings.ReplaceAll(name, ".", "-")
	if ext == "jpg" {
		ext = "jpeg"
	}
	return name, ext
}
