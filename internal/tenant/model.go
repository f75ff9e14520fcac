package tenant

import "time"

// Record mirrors one row in the persistent `user` table.  A tenant is a
// registered account that owns the subdomain `<username>.<canonical-host>`
// and, optionally, an independently registered custom domain.
//
//   - CustomDomain – serves the blog on the tenant's own domain.
//   - RedirectDomain – the blog is retired; every request under the
//     subdomain or custom domain permanently forwards there.
//
// Both domain columns carry unique indexes; CustomDomain additionally
// feeds the verbatim host lookup in the resolver.
type Record struct {
	ID              int64      `db:"id"`
	Username        string     `db:"username"`
	Email           string     `db:"email"`
	BlogTitle       string     `db:"blog_title"`
	BlogByline      string     `db:"blog_byline"`
	CustomDomain    *string    `db:"custom_domain"`
	RedirectDomain  *string    `db:"redirect_domain"`
	IsApproved      bool       `db:"is_approved"`
	IsPremium       bool       `db:"is_premium"`
	NotificationsOn bool       `db:"notifications_on"`
	DeletedAt       *time.Time `db:"deleted_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// HasCustomDomain reports a non-empty custom domain.
func (r *Record) HasCustomDomain() bool {
	return r.CustomDomain != nil && *r.CustomDomain != ""
}

// HasRedirectDomain reports a non-empty retirement target.
func (r *Record) HasRedirectDomain() bool {
	return r.RedirectDomain != nil && *r.RedirectDomain != ""
}
