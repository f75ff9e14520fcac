// internal/web/posts.go
//
// Owner post CRUD.  All handlers run behind ownerOnly, so the resolved
// tenant IS the authenticated viewer; repository calls scope every query
// by that owner id and cross-tenant ids simply come back ErrNotFound.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/plumeblog/plume/internal/content"
	"github.com/plumeblog/plume/internal/resolve"
)

type postInput struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Body        string `json:"body"`
	PublishedAt string `json:"published_at"`
}

func decodeInput(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}

func urlID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed id")
		return 0, false
	}
	return id, true
}

func ownerID(r *http.Request) int64 {
	res, _ := resolve.FromContext(r.Context())
	return res.Tenant().ID
}

func (h *Handlers) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := content.AllPosts(r.Context(), h.DB, ownerID(r))
	if err != nil {
		fail(w, err)
		return
	}
	list := make([]postJSON, 0, len(posts))
	for i := range posts {
		list = append(list, toPostJSON(&posts[i], false))
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) listDrafts(w http.ResponseWriter, r *http.Request) {
	posts, err := content.DraftPosts(r.Context(), h.DB, ownerID(r))
	if err != nil {
		fail(w, err)
		return
	}
	list := make([]postJSON, 0, len(posts))
	for i := range posts {
		list = append(list, toPostJSON(&posts[i], false))
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if !decodeInput(w, r, &in) {
		return
	}
	pub, err := content.ParsePublishDate(in.PublishedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := content.CreatePost(r.Context(), h.DB, ownerID(r), in.Title, in.Body, pub)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostJSON(p, true))
}

func (h *Handlers) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	p, err := content.PostByID(r.Context(), h.DB, ownerID(r), id)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostJSON(p, true))
}

func (h *Handlers) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var in postInput
	if !decodeInput(w, r, &in) {
		return
	}
	pub, err := content.ParsePublishDate(in.PublishedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := content.PostByID(r.Context(), h.DB, ownerID(r), id)
	if err != nil {
		fail(w, err)
		return
	}
	if err := content.UpdatePost(r.Context(), h.DB, p, in.Title, in.Slug, in.Body, pub); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostJSON(p, true))
}

func (h *Handlers) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := content.DeletePost(r.Context(), h.DB, ownerID(r), id); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
