// internal/web/snapshots.go
//
// Autosave endpoints.  The editor POSTs the in-progress body on a timer;
// history beyond the retention cap is pruned inside CreateSnapshot.
package web

import (
	"net/http"

	"github.com/plumeblog/plume/internal/content"
)

func (h *Handlers) createSnapshot(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if !decodeInput(w, r, &in) {
		return
	}
	id, err := content.CreateSnapshot(r.Context(), h.DB, ownerID(r), in.Title, in.Body, h.SnapshotRetention)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) listSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := content.SnapshotsByOwner(r.Context(), h.DB, ownerID(r))
	if err != nil {
		fail(w, err)
		return
	}
	type row struct {
		ID        int64  `json:"id"`
		Title     string `json:"title"`
		CreatedAt string `json:"created_at"`
	}
	list := make([]row, 0, len(snaps))
	for _, s := range snaps {
		list = append(list, row{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) getSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	s, err := content.SnapshotByID(r.Context(), h.DB, ownerID(r), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    s.ID,
		"title": s.Title,
		"body":  s.Body,
	})
}
