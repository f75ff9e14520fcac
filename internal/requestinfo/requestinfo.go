// internal/requestinfo/requestinfo.go
//
// Per-request metadata used by the analytics recorder: a parsed user-agent
// fingerprint (mainly the bot flag) and a best-effort country lookup.  The
// structs are inert—no database handles, no large buffers—so they are safe
// to log or JSON-encode.
//
// Dependencies
// • github.com/avct/uasurfer           (UA parsing)
// • github.com/oschwald/geoip2-golang  (MaxMind lookup, optional)
package requestinfo

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

// UA holds the parsed user-agent properties the recorder cares about.
type UA struct {
	Raw     string // entire User-Agent header
	Browser string // "Chrome", "Firefox", "Safari", …
	IsBot   bool   // true if UA matches a crawler signature
}

// Geo holds IP-based geolocation hints.  Best-effort: empty when no
// GeoLite2 database is configured or the address has no match.
type Geo struct {
	IP         net.IP
	CountryISO string // "US", "CA", "FR", …
}

// Info is attached to the request context by Enrich.
type Info struct {
	UA        UA
	Geo       Geo
	Timestamp time.Time
}

//
// package-level state
//

// geoReader is a singleton MaxMind handle.  Safe for concurrent reads,
// which is all we ever perform.  nil disables country lookups.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2 database at startup.  An empty path is a
// no-op so deployments without the database still work.
func InitGeo(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

type ctxKey struct{} // unexported, collision-proof

// WithInfo stores info in ctx.  Enrich calls it on every request; tests
// use it to fake a client fingerprint.
func WithInfo(ctx context.Context, info *Info) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// FromContext returns the pointer previously stored by Enrich, or nil if
// the middleware has not run.
func FromContext(ctx context.Context) *Info {
	v, _ := ctx.Value(ctxKey{}).(*Info)
	return v
}

//
// internal helpers
//

func parseUA(uaHeader string) UA {
	u := uasurfer.Parse(uaHeader)
	return UA{
		Raw:     uaHeader,
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		IsBot:   u.IsBot(),
	}
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.Country(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{IP: ip, CountryISO: rec.Country.IsoCode}
}
