// internal/web/images.go
//
// Owner image management.  Uploads arrive as multipart/form-data with one
// or more "file" parts; each part becomes its own image row.
package web

import (
	"io"
	"net/http"

	"github.com/plumeblog/plume/internal/content"
	"github.com/plumeblog/plume/internal/resolve"
)

type imageJSON struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

func (h *Handlers) toImageJSON(img *content.Image, host string) imageJSON {
	return imageJSON{
		ID:       img.ID,
		Name:     img.Name,
		Slug:     img.Slug,
		Filename: img.Filename(),
		URL:      resolve.Target{Host: host, Path: "/images/" + img.Filename()}.String(),
	}
}

func (h *Handlers) listImages(w http.ResponseWriter, r *http.Request) {
	imgs, err := content.ImagesByOwner(r.Context(), h.DB, ownerID(r))
	if err != nil {
		fail(w, err)
		return
	}
	host := resolve.StripPort(r.Host)
	list := make([]imageJSON, 0, len(imgs))
	for i := range imgs {
		list = append(list, h.toImageJSON(&imgs[i], host))
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	// One extra MB of form overhead on top of the per-image cap.
	if err := r.ParseMultipartForm(content.MaxImageBytes + 1<<20); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart body")
		return
	}
	res, _ := resolve.FromContext(r.Context())
	rec := res.Tenant()

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no file parts")
		return
	}

	host := resolve.StripPort(r.Host)
	out := make([]imageJSON, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, content.MaxImageBytes+1))
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}

		img, err := content.CreateImage(r.Context(), h.DB, rec.ID, rec.IsApproved, fh.Filename, data)
		if err != nil {
			fail(w, err)
			return
		}
		out = append(out, h.toImageJSON(img, host))
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) renameImage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var in struct {
		Name string `json:"name"`
	}
	if !decodeInput(w, r, &in) {
		return
	}
	if err := content.RenameImage(r.Context(), h.DB, ownerID(r), id, in.Name); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := content.DeleteImage(r.Context(), h.DB, ownerID(r), id); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
