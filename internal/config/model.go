// internal/config/model.go
//
// Typed configuration model for Plume.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                    – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `PLUME_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client after unmarshalling (see ResolveSecrets), so
// the rest of the app only ever sees plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing or the canonical host is malformed.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "strings"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Site section
//

// Site identifies the platform's own root domain.  CanonicalHost must have
// exactly two dot-separated labels (e.g. `plume.blog`); the subdomain
// classifier in internal/resolve depends on that shape, so it is enforced
// here at load time rather than rediscovered on every request.
type Site struct {
	CanonicalHost string `koanf:"canonical_host" validate:"required,two_label_host"`
}

//
// Database section
//

// Database holds the control-plane DSN and its secret.
//
// The *template* (`GlobalDSN`) is kept in YAML so operators can tweak
// host, port, or flags without touching Vault.  The *secret* portion
// (`GlobalPassword`) may be a `vault:` URI that is resolved at boot,
// keeping credentials out of flat files and git history.
type Database struct {
	GlobalDSN      string `koanf:"global_dsn"      validate:"required"`
	GlobalPassword string `koanf:"global_password"`
}

// DSN returns the usable connection string, substituting the resolved
// password for the `{password}` placeholder when the template carries one.
func (d Database) DSN() string {
	return strings.Replace(d.GlobalDSN, "{password}", d.GlobalPassword, 1)
}

//
// Geo section
//

// Geo points at an optional GeoLite2 database used to stamp analytic rows
// with a country code.  Empty path disables the lookup entirely.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Content section
//

// Content holds tenant-content tunables.  SnapshotRetention caps the
// autosave history kept per tenant; older rows are pruned on each insert.
type Content struct {
	SnapshotRetention int `koanf:"snapshot_retention" validate:"min=1"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or PLUME_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Site     Site     `koanf:"site"`
	Database Database `koanf:"database"`
	Geo      Geo      `koanf:"geo"`
	Content  Content  `koanf:"content"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
