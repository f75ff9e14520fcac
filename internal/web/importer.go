// internal/web/importer.go
//
// Bulk import: multipart upload of text files, each becoming a draft.
// Validation is all-or-nothing; one bad file rejects the whole batch.
package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/plumeblog/plume/internal/content"
)

const maxImportBytes = 10 << 20

func (h *Handlers) importPosts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart body")
		return
	}

	parts := r.MultipartForm.File["file"]
	if len(parts) == 0 {
		writeError(w, http.StatusBadRequest, "no file parts")
		return
	}

	files := make([]content.ImportFile, 0, len(parts))
	for _, fh := range parts {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file part")
			return
		}
		files = append(files, content.ImportFile{
			Name: strings.TrimSuffix(fh.Filename, ".txt"),
			Data: data,
		})
	}

	posts, err := content.ImportPosts(r.Context(), h.DB, ownerID(r), files)
	if err != nil {
		fail(w, err)
		return
	}

	list := make([]postJSON, 0, len(posts))
	for i := range posts {
		list = append(list, toPostJSON(&posts[i], false))
	}
	writeJSON(w, http.StatusCreated, list)
}
