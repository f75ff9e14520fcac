// internal/denylist/denylist.go
//
// Static reserved-name tables.
//
// Context
// -------
// Two lists, both plain configuration rather than persisted state:
//
//   • Usernames – subdomains a tenant may never claim, either because the
//     platform uses them (www, mail, smtp, …) or because they would be
//     abused for phishing (admin, support, billing, …).  The host resolver
//     redirects these to the canonical host instead of erroring.
//
//   • Page slugs – leading path segments owned by system routes (the
//     dashboard, exports, settings, feeds).  Page creation and update
//     reject them so a tenant page can never shadow a platform route.
package denylist

// disallowedUsernames never resolve to a tenant blog.
var disallowedUsernames = map[string]struct{}{
	"about":      {},
	"abuse":      {},
	"admin":      {},
	"api":        {},
	"app":        {},
	"billing":    {},
	"blog":       {},
	"cdn":        {},
	"contact":    {},
	"dashboard":  {},
	"dev":        {},
	"docs":       {},
	"ftp":        {},
	"help":       {},
	"imap":       {},
	"login":      {},
	"mail":       {},
	"metrics":    {},
	"news":       {},
	"ns1":        {},
	"ns2":        {},
	"pop3":       {},
	"postmaster": {},
	"root":       {},
	"security":   {},
	"signup":     {},
	"smtp":       {},
	"staging":    {},
	"static":     {},
	"status":     {},
	"support":    {},
	"test":       {},
	"webmail":    {},
	"www":        {},
}

// disallowedPageSlugs collide with system routes mounted before the
// catch-all page handler.
var disallowedPageSlugs = map[string]struct{}{
	"accounts":      {},
	"analytics":     {},
	"api":           {},
	"atom":          {},
	"blog":          {},
	"dashboard":     {},
	"export":        {},
	"images":        {},
	"import":        {},
	"metrics":       {},
	"new":           {},
	"newsletter":    {},
	"notifications": {},
	"pages":         {},
	"post-backups":  {},
	"posts":         {},
	"rss":           {},
	"sitemap.xml":   {},
	"webring":       {},
}

// UsernameDisallowed reports whether name is reserved as a subdomain.
func UsernameDisallowed(name string) bool {
	_, ok := disallowedUsernames[name]
	return ok
}

// PageSlugDisallowed reports whether slug collides with a system route.
func PageSlugDisallowed(slug string) bool {
	_, ok := disallowedPageSlugs[slug]
	return ok
}
