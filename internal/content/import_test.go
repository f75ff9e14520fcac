// internal/content/import_test.go

package content

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestImportPostsRejectsBadEncodingUpfront(t *testing.T) {
	db, mock := newMockDB(t)

	files := []ImportFile{
		{Name: "good", Data: []byte("fine text")},
		{Name: "bad", Data: []byte{0xff, 0xfe, 0xfd}},
	}

	_, err := ImportPosts(context.Background(), db, 1, files)
	if !errors.Is(err, ErrNotUTF8) {
		t.Fatalf("err = %v, want ErrNotUTF8", err)
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Fatalf("error does not name the offending file: %v", err)
	}
	// Validation is all-or-nothing: nothing may touch the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL ran: %v", err)
	}
}
