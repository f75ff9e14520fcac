// internal/web/pages.go
//
// Owner page CRUD.  Unlike posts the slug is tenant-chosen, so reserved
// and duplicate slugs surface as 400s here.
package web

import (
	"net/http"

	"github.com/plumeblog/plume/internal/content"
)

type pageInput struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Body     string `json:"body"`
	IsHidden bool   `json:"is_hidden"`
}

type pageJSON struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Body     string `json:"body,omitempty"`
	IsHidden bool   `json:"is_hidden"`
}

func toPageJSON(p *content.Page, withBody bool) pageJSON {
	out := pageJSON{ID: p.ID, Title: p.Title, Slug: p.Slug, IsHidden: p.IsHidden}
	if withBody {
		out.Body = p.Body
	}
	return out
}

func (h *Handlers) listPages(w http.ResponseWriter, r *http.Request) {
	pages, err := content.AllPages(r.Context(), h.DB, ownerID(r))
	if err != nil {
		fail(w, err)
		return
	}
	list := make([]pageJSON, 0, len(pages))
	for i := range pages {
		list = append(list, toPageJSON(&pages[i], false))
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) createPage(w http.ResponseWriter, r *http.Request) {
	var in pageInput
	if !decodeInput(w, r, &in) {
		return
	}
	p, err := content.CreatePage(r.Context(), h.DB, ownerID(r), in.Title, in.Slug, in.IsHidden, in.Body)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPageJSON(p, true))
}

func (h *Handlers) getPage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	p, err := content.PageByID(r.Context(), h.DB, ownerID(r), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageJSON(p, true))
}

func (h *Handlers) updatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var in pageInput
	if !decodeInput(w, r, &in) {
		return
	}
	p, err := content.PageByID(r.Context(), h.DB, ownerID(r), id)
	if err != nil {
		fail(w, err)
		return
	}
	if err := content.UpdatePage(r.Context(), h.DB, p, in.Title, in.Slug, in.IsHidden, in.Body); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageJSON(p, true))
}

func (h *Handlers) deletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := content.DeletePage(r.Context(), h.DB, ownerID(r), id); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
