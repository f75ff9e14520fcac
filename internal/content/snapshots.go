// internal/content/snapshots.go
//
// Snapshot repository.
//
// The editor autosaves the in-progress body on a timer, so snapshot rows
// grow without bound unless pruned.  Every insert keeps only the N most
// recent rows per owner (insertion order, id descending).  The prune is a
// check-then-act pair; a concurrent burst from the same tenant may briefly
// retain a few extra rows, which the next insert cleans up.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const snapshotCols = `id, owner_id, title, body, created_at`

// CreateSnapshot inserts an autosave copy and prunes history beyond
// retention rows for this owner.
func CreateSnapshot(ctx context.Context, db *sqlx.DB, ownerID int64, title, body string, retention int) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO snapshot (owner_id, title, body, created_at)
		 VALUES (?, ?, ?, NOW())`,
		ownerID, title, stripControlChars(body))
	if err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	id, _ := res.LastInsertId()

	// MySQL cannot reference the target table in a subquery directly;
	// the derived table works around it.
	_, err = db.ExecContext(ctx,
		`DELETE FROM snapshot
		  WHERE owner_id = ?
		    AND id NOT IN (
		        SELECT id FROM (
		            SELECT id FROM snapshot
		             WHERE owner_id = ?
		             ORDER BY id DESC
		             LIMIT ?
		        ) keep
		    )`,
		ownerID, ownerID, retention)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return id, nil
}

// SnapshotByID fetches one snapshot scoped to its owner.
func SnapshotByID(ctx context.Context, db *sqlx.DB, ownerID, id int64) (*Snapshot, error) {
	var s Snapshot
	err := db.GetContext(ctx, &s,
		`SELECT `+snapshotCols+` FROM snapshot WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("snapshot by id: %w", err)
	}
	return &s, nil
}

// SnapshotsByOwner lists autosave history, newest first.
func SnapshotsByOwner(ctx context.Context, db *sqlx.DB, ownerID int64) ([]Snapshot, error) {
	var snaps []Snapshot
	err := db.SelectContext(ctx, &snaps,
		`SELECT `+snapshotCols+` FROM snapshot WHERE owner_id = ? ORDER BY id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("snapshots by owner: %w", err)
	}
	return snaps, nil
}
