// internal/content/posts_test.go
//
// Repository tests for posts using sqlmock.

package content

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreatePostDerivesSlug(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(slugCheckQuery)).
		WithArgs(int64(1), "hello-world", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO post (owner_id, title, slug, body, published_at, created_at, updated_at)`)).
		WithArgs(int64(1), "Hello, World!", "hello-world", "body", nil).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`SELECT .+ FROM post WHERE id = \? AND owner_id = \?`).
		WithArgs(int64(42), int64(1)).
		WillReturnRows(postRows().AddRow(42, 1, "Hello, World!", "hello-world", "body", nil, time.Now(), time.Now()))

	p, err := CreatePost(context.Background(), db, 1, "Hello, World!", "body", nil)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if p.Slug != "hello-world" {
		t.Fatalf("slug = %q", p.Slug)
	}
	if p.Published() {
		t.Fatal("draft reported as published")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCreatePostDuplicateSlug(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(slugCheckQuery)).
		WithArgs(int64(1), "hello", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// A concurrent insert won the race; the unique index fires.
	mock.ExpectExec(`INSERT INTO post`).
		WillReturnError(errors.New("Error 1062: Duplicate entry 'hello' for key 'post.owner_slug'"))

	_, err := CreatePost(context.Background(), db, 1, "hello", "body", nil)
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("err = %v, want ErrSlugTaken", err)
	}
}

func TestUpdatePostRegeneratesSlug(t *testing.T) {
	db, mock := newMockDB(t)

	p := &Post{ID: 7, OwnerID: 1, Title: "Old", Slug: "old", Body: "b"}

	mock.ExpectQuery(regexp.QuoteMeta(slugCheckQuery)).
		WithArgs(int64(1), "new-title", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE post`).
		WithArgs("New Title", "new-title", "b2", nil, int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := UpdatePost(context.Background(), db, p, "New Title", SlugRegen, "b2", nil); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if p.Slug != "new-title" {
		t.Fatalf("slug = %q, want new-title", p.Slug)
	}
}

func TestDeletePostNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post WHERE id = ? AND owner_id = ?`)).
		WithArgs(int64(99), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := DeletePost(context.Background(), db, 1, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPostBySlugNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .+ FROM post WHERE owner_id = \? AND slug = \?`).
		WithArgs(int64(1), "missing").
		WillReturnRows(postRows())

	_, err := PostBySlug(context.Background(), db, 1, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestParsePublishDate(t *testing.T) {
	if d, err := ParsePublishDate(""); err != nil || d != nil {
		t.Fatalf("empty input should mean draft, got (%v, %v)", d, err)
	}
	d, err := ParsePublishDate("2026-03-01")
	if err != nil {
		t.Fatalf("ParsePublishDate: %v", err)
	}
	if d.Hour() != 0 || d.Format("2006-01-02") != "2026-03-01" {
		t.Fatalf("date = %v", d)
	}
	if _, err := ParsePublishDate("not a date"); err == nil {
		t.Fatal("garbage input accepted")
	}
}

func TestStripControlChars(t *testing.T) {
	in := "line1\nline2\ttabbed\x1b[31mred\x00"
	want := "line1\nline2\ttabbed[31mred"
	if got := stripControlChars(in); got != want {
		t.Fatalf("stripControlChars = %q, want %q", got, want)
	}
}

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "title", "slug", "body", "published_at", "created_at", "updated_at",
	})
}
