// internal/web/newsletter.go
//
// Reader-facing newsletter endpoints plus the owner's subscriber list.
// Subscribe and unsubscribe are public: readers have no account.
package web

import (
	"net/http"

	"github.com/plumeblog/plume/internal/config"
	"github.com/plumeblog/plume/internal/notifications"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) subscribe(w http.ResponseWriter, r *http.Request) {
	res, ok := requireTenant(w, r)
	if !ok {
		return
	}
	var in struct {
		Email string `json:"email"`
	}
	if !decodeInput(w, r, &in) {
		return
	}
	if err := config.Validate().VarCtx(r.Context(), in.Email, "required,email"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if err := notifications.Subscribe(r.Context(), h.DB, res.Tenant().ID, in.Email); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "subscribed"})
}

func (h *Handlers) unsubscribe(w http.ResponseWriter, r *http.Request) {
	res, ok := requireTenant(w, r)
	if !ok {
		return
	}
	var in struct {
		Email string `json:"email"`
	}
	if !decodeInput(w, r, &in) {
		return
	}
	if err := notifications.Unsubscribe(r.Context(), h.DB, res.Tenant().ID, in.Email); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

// unsubscribeByKey is the one-click link from email footers; works on any
// host because the key alone identifies the row.
func (h *Handlers) unsubscribeByKey(w http.ResponseWriter, r *http.Request) {
	email, err := notifications.UnsubscribeByKey(r.Context(), h.DB, chi.URLParam(r, "key"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed", "email": email})
}

func (h *Handlers) listSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := notifications.ActiveSubscribers(r.Context(), h.DB, ownerID(r))
	if err != nil {
		fail(w, err)
		return
	}
	type row struct {
		Email        string `json:"email"`
		SubscribedAt string `json:"subscribed_at"`
	}
	list := make([]row, 0, len(subs))
	for _, s := range subs {
		list = append(list, row{Email: s.Email, SubscribedAt: s.CreatedAt.Format("2006-01-02")})
	}
	writeJSON(w, http.StatusOK, list)
}
