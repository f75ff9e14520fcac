// internal/web/respond.go
//
// JSON rendering and the error taxonomy mapping.  Domain errors carry no
// HTTP knowledge; this file is the single place where they become status
// codes.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/plumeblog/plume/internal/content"
	"github.com/plumeblog/plume/internal/notifications"
	"github.com/plumeblog/plume/internal/resolve"
	"github.com/plumeblog/plume/internal/tenant"
	"github.com/plumeblog/plume/internal/viewer"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnw("json encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps domain errors onto HTTP statuses.  Anything unmapped is a 500
// with the detail kept in the log, not the response.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, content.ErrNotFound),
		errors.Is(err, tenant.ErrNotFound),
		errors.Is(err, notifications.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, content.ErrNotOwner):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, content.ErrNotApproved):
		writeError(w, http.StatusForbidden, "account not approved for uploads")
	case errors.Is(err, content.ErrSlugTaken):
		writeError(w, http.StatusBadRequest, "slug already used")
	case errors.Is(err, content.ErrReservedSlug):
		writeError(w, http.StatusBadRequest, "slug is reserved")
	case errors.Is(err, content.ErrNotUTF8):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, content.ErrImageTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "image exceeds the size limit")
	case errors.Is(err, notifications.ErrAlreadySubscribed):
		writeError(w, http.StatusConflict, "email already subscribed")
	default:
		zap.S().Errorw("handler error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// requireTenant fetches the resolution and rejects canonical-host requests
// with 404: blog content only exists on a blog host.
func requireTenant(w http.ResponseWriter, r *http.Request) (resolve.Resolution, bool) {
	res, ok := resolve.FromContext(r.Context())
	if !ok || !res.HasTenant() {
		http.NotFound(w, r)
		return resolve.Resolution{}, false
	}
	return res, true
}

// ownerOnly wraps a handler with the write-side guard: the request must be
// tenant-scoped and authenticated as that tenant.  Mismatches get a plain
// 403, never a redirect.
func (h *Handlers) ownerOnly(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := requireTenant(w, r)
		if !ok {
			return
		}
		v, authed := viewer.FromContext(r.Context())
		if err := content.RequireOwner(res, v, authed); err != nil {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		fn(w, r)
	}
}
