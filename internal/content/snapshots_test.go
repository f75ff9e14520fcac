// internal/content/snapshots_test.go

package content

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateSnapshotPrunes(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO snapshot`).
		WithArgs(int64(1), "Draft", "body").
		WillReturnResult(sqlmock.NewResult(9, 1))
	// The prune keeps only the newest `retention` rows for this owner.
	mock.ExpectExec(`DELETE FROM snapshot`).
		WithArgs(int64(1), int64(1), 250).
		WillReturnResult(sqlmock.NewResult(0, 3))

	id, err := CreateSnapshot(context.Background(), db, 1, "Draft", "body", 250)
	if err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}
	if id != 9 {
		t.Fatalf("id = %d, want 9", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
