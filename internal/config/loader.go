// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `PLUME_`, where `__` maps to “.”
     (e.g., `PLUME_SITE__CANONICAL_HOST → site.canonical_host`).

After merging, the tree is unmarshalled into strongly-typed structs,
validated, enriched with the runtime root path, and cached in an
`atomic.Pointer` for lock-free reads.  `Reload()` simply calls `Load()`
again and swaps the pointer.

Secrets
-------
`ResolveSecrets()` rewrites any `vault:mount/path#key` value through the
Vault client and swaps the cached pointer.  cmd/web calls it right after
Load() when VAULT_ADDR is set; without Vault the raw values pass through.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/web` work from any sub-directory.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.
*/
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/plumeblog/plume/internal/vault"
)

var current atomic.Pointer[Config]

// DefaultSnapshotRetention bounds autosave history when YAML leaves the
// knob unset.
const DefaultSnapshotRetention = 250

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves PLUME_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv("PLUME_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, validates, and caches Config.
func Load() (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}

	// Env overrides: PLUME_SITE__CANONICAL_HOST → site.canonical_host
	if err := k.Load(env.Provider("PLUME_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if cfg.Content.SnapshotRetention == 0 {
		cfg.Content.SnapshotRetention = DefaultSnapshotRetention
	}
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"canonical_host", cfg.Site.CanonicalHost,
		"force_https", cfg.HTTP.ForceHTTPS,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── vault secrets ───────────────────────────────*/

// ResolveSecrets replaces `vault:mount/path#key` values with the secret
// they point at and swaps the cached Config.  Only the database password
// carries a secret today; extend the switch when more fields need one.
func ResolveSecrets(ctx context.Context, cli *vault.Client) error {
	cfg := *current.Load() // shallow copy; Config holds no pointers

	resolved, err := resolveVaultURI(ctx, cli, cfg.Database.GlobalPassword)
	if err != nil {
		return err
	}
	cfg.Database.GlobalPassword = resolved

	current.Store(&cfg)
	return nil
}

func resolveVaultURI(ctx context.Context, cli *vault.Client, val string) (string, error) {
	const prefix = "vault:"
	if !strings.HasPrefix(val, prefix) {
		return val, nil
	}
	ref := strings.TrimPrefix(val, prefix)
	path, key, _ := strings.Cut(ref, "#")
	return cli.GetKV(ctx, path, key, 5*time.Minute)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config  { return current.Load() }
func Reload() error { _, err := Load(); return err }
