// internal/content/slug_test.go
//
// Unit-tests for slug derivation and per-owner disambiguation.
//
// Run: go test ./internal/content -v

package content

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestMakeSlug(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":        "hello-world",
		"  spaces   galore  ":  "spaces-galore",
		"Déjà vu":              "d-j-vu",
		"already-kebab":        "already-kebab",
		"UPPER case 123":       "upper-case-123",
		"!!!":                  "post",
		"":                     "post",
		"emoji 🎉 party":        "emoji-party",
		"trailing punctuation!": "trailing-punctuation",
	}
	for in, want := range cases {
		if got := MakeSlug(in); got != want {
			t.Errorf("MakeSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeSlugCapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "abcdefghij "
	}
	slug := MakeSlug(long)
	if len(slug) > 100 {
		t.Fatalf("slug length %d exceeds the cap", len(slug))
	}
	if slug[len(slug)-1] == '-' {
		t.Fatalf("truncated slug ends in a dash: %q", slug)
	}
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

const slugCheckQuery = `SELECT COUNT(*) FROM post WHERE owner_id = ? AND slug = ? AND id != ?`

func TestUniqueSlugFirstFree(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(slugCheckQuery)).
		WithArgs(int64(1), "hello", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	got, err := uniqueSlug(context.Background(), db, postTable, 1, "hello", 0)
	if err != nil {
		t.Fatalf("uniqueSlug: %v", err)
	}
	if got != "hello" {
		t.Fatalf("slug = %q, want hello", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUniqueSlugAppendsSuffix(t *testing.T) {
	db, mock := newMockDB(t)

	// "hello" and "hello-2" are taken; "hello-3" is free.
	mock.ExpectQuery(regexp.QuoteMeta(slugCheckQuery)).
		WithArgs(int64(1), "hello", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(slugCheckQuery)).
		WithArgs(int64(1), "hello-2", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(slugCheckQuery)).
		WithArgs(int64(1), "hello-3", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	got, err := uniqueSlug(context.Background(), db, postTable, 1, "hello", 0)
	if err != nil {
		t.Fatalf("uniqueSlug: %v", err)
	}
	if got != "hello-3" {
		t.Fatalf("slug = %q, want hello-3", got)
	}
}

func TestUniqueSlugExcludesSelf(t *testing.T) {
	db, mock := newMockDB(t)

	// The row being updated keeps its own slug: the check excludes id 7.
	mock.ExpectQuery(regexp.QuoteMeta(slugCheckQuery)).
		WithArgs(int64(1), "hello", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	got, err := uniqueSlug(context.Background(), db, postTable, 1, "hello", 7)
	if err != nil {
		t.Fatalf("uniqueSlug: %v", err)
	}
	if got != "hello" {
		t.Fatalf("slug = %q, want hello", got)
	}
}
