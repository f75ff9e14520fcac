// internal/web/blog.go
//
// Public blog reads.  These are the only handlers that record analytics,
// and only for viewers who are not the blog's owner.
package web

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/plumeblog/plume/internal/content"
	"github.com/plumeblog/plume/internal/resolve"
	"github.com/plumeblog/plume/internal/viewer"
)

type postJSON struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Body        string  `json:"body,omitempty"`
	PublishedAt *string `json:"published_at"`
}

func toPostJSON(p *content.Post, withBody bool) postJSON {
	out := postJSON{ID: p.ID, Title: p.Title, Slug: p.Slug}
	if withBody {
		out.Body = p.Body
	}
	if p.PublishedAt != nil {
		d := p.PublishedAt.Format("2006-01-02")
		out.PublishedAt = &d
	}
	return out
}

// blogIndex serves the blog's front matter and published posts.  On the
// canonical host there is no blog; the platform landing is static and
// served elsewhere, so this answers 404 there.
func (h *Handlers) blogIndex(w http.ResponseWriter, r *http.Request) {
	res, ok := requireTenant(w, r)
	if !ok {
		return
	}
	rec := res.Tenant()

	posts, err := content.PublishedPosts(r.Context(), h.DB, rec.ID)
	if err != nil {
		fail(w, err)
		return
	}

	v, authed := viewer.FromContext(r.Context())
	if !content.IsOwner(res, v, authed) {
		h.Rec.PageView(r.Context(), rec.ID, "index")
	}

	list := make([]postJSON, 0, len(posts))
	for i := range posts {
		list = append(list, toPostJSON(&posts[i], false))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title":  rec.BlogTitle,
		"byline": rec.BlogByline,
		"posts":  list,
	})
}

// postDetail serves one post.  Drafts and future-dated posts exist only
// for their owner; everyone else sees 404, indistinguishable from a post
// that never existed.
func (h *Handlers) postDetail(w http.ResponseWriter, r *http.Request) {
	res, ok := requireTenant(w, r)
	if !ok {
		return
	}
	rec := res.Tenant()

	p, err := content.PostBySlug(r.Context(), h.DB, rec.ID, chi.URLParam(r, "slug"))
	if err != nil {
		fail(w, err)
		return
	}

	v, authed := viewer.FromContext(r.Context())
	if !content.CanViewPost(p, v, authed) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if !content.IsOwner(res, v, authed) {
		h.Rec.PostView(r.Context(), p.ID)
	}

	writeJSON(w, http.StatusOK, toPostJSON(p, true))
}

// pageDetail serves one standalone page at /{slug}.  Hidden pages stay
// reachable by direct URL.
func (h *Handlers) pageDetail(w http.ResponseWriter, r *http.Request) {
	res, ok := requireTenant(w, r)
	if !ok {
		return
	}
	rec := res.Tenant()

	p, err := content.PageBySlug(r.Context(), h.DB, rec.ID, chi.URLParam(r, "slug"))
	if err != nil {
		fail(w, err)
		return
	}

	v, authed := viewer.FromContext(r.Context())
	if !content.IsOwner(res, v, authed) {
		h.Rec.PageView(r.Context(), rec.ID, p.Slug)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    p.ID,
		"title": p.Title,
		"slug":  p.Slug,
		"body":  p.Body,
	})
}

// imageRaw streams stored image bytes.  The slug is the access token, so
// no ownership check applies; a year of caching is safe because content
// under a slug never changes.
func (h *Handlers) imageRaw(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	slug := filename
	if i := strings.LastIndexByte(filename, '.'); i > 0 {
		slug = filename[:i]
	}

	img, err := content.ImageBySlug(r.Context(), h.DB, slug)
	if err != nil {
		fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/"+img.Extension)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, img.Filename(), img.CreatedAt, bytes.NewReader(img.Data))
}

// dashboard is the entry point after login.  Tenant hosts bounce to the
// canonical dashboard; unauthenticated visitors bounce to login.
func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	res, _ := resolve.FromContext(r.Context())
	if res.HasTenant() {
		tgt := resolve.Target{Host: h.Canonical.Host, Path: "/dashboard"}
		http.Redirect(w, r, tgt.String(), http.StatusFound)
		return
	}

	v, authed := viewer.FromContext(r.Context())
	if !authed {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username": v.Username,
		"blog_url": resolve.Target{Host: v.Username + "." + h.Canonical.Host, Path: "/"}.String(),
	})
}
