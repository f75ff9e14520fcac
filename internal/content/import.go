// internal/content/import.go
//
// Text-file import: each uploaded file becomes a draft post titled after
// the filename.  All files are validated before anything is written, so a
// bad file in the middle of a batch never leaves a partial import behind.
package content

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
)

// ImportFile is one uploaded text file.
type ImportFile struct {
	Name string
	Data []byte
}

// ImportPosts creates one draft per file.  Returns ErrNotUTF8 (wrapped
// with the offending filename) without inserting anything if any file
// fails to decode.
func ImportPosts(ctx context.Context, db *sqlx.DB, ownerID int64, files []ImportFile) ([]Post, error) {
	for _, f := range files {
		if !utf8.Valid(f.Data) {
			return nil, fmt.Errorf("%s: %w", f.Name, ErrNotUTF8)
		}
	}

	posts := make([]Post, 0, len(files))
	for _, f := range files {
		p, err := CreatePost(ctx, db, ownerID, f.Name, string(f.Data), nil)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", f.Name, err)
		}
		posts = append(posts, *p)
	}
	return posts, nil
}
