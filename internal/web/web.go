// internal/web/web.go
//
// HTTP surface of the platform.
//
// Context
// -------
// Every route below runs behind the resolve middleware, so handlers read
// an immutable Resolution from the request context instead of parsing
// hosts.  Handlers are composed from explicit steps: a guard (ownerOnly
// or requireTenant), then the repository call, then the JSON response.
// Authorization is visible at each call site on purpose.
//
// Public reads live at the blog's own paths (/, /blog/{slug}, /{slug});
// the owner's write surface is the /api subtree.  Page detail is mounted
// last so it only catches slugs no other route claimed.
package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/plumeblog/plume/internal/analytics"
	"github.com/plumeblog/plume/internal/resolve"
)

// Handlers bundles the dependencies of the HTTP layer.
type Handlers struct {
	DB        *sqlx.DB
	Rec       *analytics.Recorder
	Canonical resolve.Canonical

	// SnapshotRetention caps autosave history per owner.
	SnapshotRetention int
}

// Routes assembles the router.  The resolve middleware is applied by the
// caller so tests can mount these routes with a fixture resolution.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	// Public blog surface.
	r.Get("/", h.blogIndex)
	r.Get("/blog/{slug}", h.postDetail)
	r.Get("/images/{filename}", h.imageRaw)

	// Newsletter.
	r.Post("/newsletter", h.subscribe)
	r.Post("/newsletter/unsubscribe", h.unsubscribe)
	r.Get("/newsletter/unsubscribe/{key}", h.unsubscribeByKey)

	// Dashboard entry point; redirects per host class.
	r.Get("/dashboard", h.dashboard)

	// Owner write surface.
	r.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ownerOnly(h.listPosts))
			r.Post("/", h.ownerOnly(h.createPost))
			r.Get("/drafts", h.ownerOnly(h.listDrafts))
			r.Get("/{id}", h.ownerOnly(h.getPost))
			r.Patch("/{id}", h.ownerOnly(h.updatePost))
			r.Delete("/{id}", h.ownerOnly(h.deletePost))
			r.Get("/{id}/analytics", h.ownerOnly(h.postAnalytics))
		})
		r.Route("/pages", func(r chi.Router) {
			r.Get("/", h.ownerOnly(h.listPages))
			r.Post("/", h.ownerOnly(h.createPage))
			r.Get("/{id}", h.ownerOnly(h.getPage))
			r.Patch("/{id}", h.ownerOnly(h.updatePage))
			r.Delete("/{id}", h.ownerOnly(h.deletePage))
			r.Get("/{id}/analytics", h.ownerOnly(h.pageAnalytics))
		})
		r.Route("/images", func(r chi.Router) {
			r.Get("/", h.ownerOnly(h.listImages))
			r.Post("/", h.ownerOnly(h.uploadImage))
			r.Patch("/{id}", h.ownerOnly(h.renameImage))
			r.Delete("/{id}", h.ownerOnly(h.deleteImage))
		})
		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", h.ownerOnly(h.listSnapshots))
			r.Post("/", h.ownerOnly(h.createSnapshot))
			r.Get("/{id}", h.ownerOnly(h.getSnapshot))
		})
		r.Post("/import", h.ownerOnly(h.importPosts))
		r.Get("/subscribers", h.ownerOnly(h.listSubscribers))
	})

	// Catch-all page detail; must stay last.
	r.Get("/{slug}", h.pageDetail)

	return r
}
