// internal/tenant/cache_test.go
//
// Cache behaviour: one DB hit per key, misses are not cached, and
// Invalidate forces a reload.

package tenant

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheLoadsOnce(t *testing.T) {
	db, mock := newMockDB(t)
	c := New(db, IdleTTL, MaxEntries)

	now := time.Now()
	mock.ExpectQuery(`(?s)SELECT .+ FROM user\s+WHERE username = \?`).
		WithArgs("alice").
		WillReturnRows(recordRows().AddRow(
			1, "alice", "a@example.com", "Alice's Blog", "",
			nil, nil, true, false, true, nil, now, now))

	ctx := context.Background()
	first, err := c.ByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	// Second call must be served from the cache: no further query was
	// registered, so a DB hit would fail the mock.
	second, err := c.ByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if first != second {
		t.Fatal("cache returned different record pointers")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCacheDoesNotCacheMisses(t *testing.T) {
	db, mock := newMockDB(t)
	c := New(db, IdleTTL, MaxEntries)

	mock.ExpectQuery(`(?s)SELECT .+ FROM user\s+WHERE username = \?`).
		WithArgs("ghost").
		WillReturnRows(recordRows())
	mock.ExpectQuery(`(?s)SELECT .+ FROM user\s+WHERE username = \?`).
		WithArgs("ghost").
		WillReturnRows(recordRows())

	ctx := context.Background()
	if _, err := c.ByUsername(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	// A second lookup hits the DB again; a signup may have landed since.
	if _, err := c.ByUsername(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCacheInvalidate(t *testing.T) {
	db, mock := newMockDB(t)
	c := New(db, IdleTTL, MaxEntries)

	now := time.Now()
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`(?s)SELECT .+ FROM user\s+WHERE username = \?`).
			WithArgs("alice").
			WillReturnRows(recordRows().AddRow(
				1, "alice", "a@example.com", "Alice's Blog", "",
				nil, nil, true, false, true, nil, now, now))
	}

	ctx := context.Background()
	rec, err := c.ByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	c.Invalidate(rec)

	if _, err := c.ByUsername(ctx, "alice"); err != nil {
		t.Fatalf("reload after invalidate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
