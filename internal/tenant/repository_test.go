// internal/tenant/repository_test.go
//
// Repository tests using sqlmock.
//
// Run: go test ./internal/tenant -v

package tenant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "blog_title", "blog_byline",
		"custom_domain", "redirect_domain", "is_approved", "is_premium",
		"notifications_on", "deleted_at", "created_at", "updated_at",
	})
}

func TestByUsername(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .+ FROM user\s+WHERE username = \?`).
		WithArgs("alice").
		WillReturnRows(recordRows().AddRow(
			1, "alice", "a@example.com", "Alice's Blog", "",
			nil, nil, true, false, true, nil, now, now))

	rec, err := ByUsername(context.Background(), db, "alice")
	if err != nil {
		t.Fatalf("ByUsername: %v", err)
	}
	if rec.ID != 1 || rec.Username != "alice" || rec.HasCustomDomain() {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM user\s+WHERE username = \?`).
		WithArgs("ghost").
		WillReturnRows(recordRows())

	_, err := ByUsername(context.Background(), db, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestByCustomDomain(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	dom := "alice.net"
	mock.ExpectQuery(`(?s)SELECT .+ FROM user\s+WHERE custom_domain = \?`).
		WithArgs(dom).
		WillReturnRows(recordRows().AddRow(
			1, "alice", "a@example.com", "Alice's Blog", "",
			dom, nil, true, false, true, nil, now, now))

	rec, err := ByCustomDomain(context.Background(), db, dom)
	if err != nil {
		t.Fatalf("ByCustomDomain: %v", err)
	}
	if !rec.HasCustomDomain() || *rec.CustomDomain != dom {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestCreateReservedUsername(t *testing.T) {
	db, mock := newMockDB(t)

	// Reserved names are rejected before any SQL runs.
	_, err := Create(context.Background(), db, "www", "w@example.com")
	if !errors.Is(err, ErrReservedUsername) {
		t.Fatalf("err = %v, want ErrReservedUsername", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL ran: %v", err)
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO user`).
		WillReturnError(errors.New("Error 1062: Duplicate entry 'alice' for key 'user.username'"))

	_, err := Create(context.Background(), db, "alice", "a@example.com")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestUpdateSettingsBadDomain(t *testing.T) {
	db, _ := newMockDB(t)

	bad := "not a domain"
	err := UpdateSettings(context.Background(), db, 1, Settings{CustomDomain: &bad})
	if !errors.Is(err, ErrBadDomain) {
		t.Fatalf("err = %v, want ErrBadDomain", err)
	}
}

func TestUpdateSettingsDomainTaken(t *testing.T) {
	db, mock := newMockDB(t)

	dom := "taken.net"
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user`).
		WithArgs(dom, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := UpdateSettings(context.Background(), db, 1, Settings{CustomDomain: &dom})
	if !errors.Is(err, ErrDomainTaken) {
		t.Fatalf("err = %v, want ErrDomainTaken", err)
	}
}
