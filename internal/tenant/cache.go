// internal/tenant/cache.go
//
// Lookup cache for tenant records.
//
// Context
// -------
// The resolver hits the `user` table on every tenant-scoped request, by
// username for subdomain hosts and by custom domain otherwise.  This cache
// keeps hot records in a sync.Map, collapses concurrent cold loads through
// singleflight, and evicts on idle TTL or LRU pressure (see evictor.go).
// Records are treated as immutable once loaded; settings updates call
// Invalidate so the next request reloads.
package tenant

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"

	"github.com/plumeblog/plume/internal/metrics"
)

// Static defaults.  Override via the Cache fields before first use.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 1000
	EvictInterval = 5 * time.Minute
)

type entry struct {
	rec      *Record
	lastSeen int64 // UnixNano
}

// Cache lazily loads tenant records and stores them under two key spaces,
// "u:<username>" and "d:<custom-domain>".
type Cache struct {
	db          *sqlx.DB
	sfg         singleflight.Group
	m           sync.Map
	evictTicker *time.Ticker
	idleTTL     time.Duration
	maxEntries  int
}

// New constructs a Cache and starts the background evictor.
func New(db *sqlx.DB, idleTTL time.Duration, maxEntries int) *Cache {
	c := &Cache{
		db:         db,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// ByUsername returns the tenant owning the given subdomain slug.
func (c *Cache) ByUsername(ctx context.Context, username string) (*Record, error) {
	return c.get(ctx, "u:"+username, func() (*Record, error) {
		return ByUsername(ctx, c.db, username)
	})
}

// ByCustomDomain returns the tenant serving host as its custom domain.
func (c *Cache) ByCustomDomain(ctx context.Context, host string) (*Record, error) {
	return c.get(ctx, "d:"+host, func() (*Record, error) {
		return ByCustomDomain(ctx, c.db, host)
	})
}

// Invalidate drops both key spaces for a record after a settings change.
func (c *Cache) Invalidate(rec *Record) {
	c.m.Delete("u:" + rec.Username)
	if rec.HasCustomDomain() {
		c.m.Delete("d:" + *rec.CustomDomain)
	}
}

func (c *Cache) get(_ context.Context, key string, load func() (*Record, error)) (*Record, error) {
	if v, ok := c.m.Load(key); ok {
		ent := v.(*entry)
		atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
		return ent.rec, nil
	}

	v, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		// Double-check after singleflight barrier.
		if v, ok := c.m.Load(key); ok {
			ent := v.(*entry)
			atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
			return ent.rec, nil
		}
		rec, err := load()
		if err != nil {
			if err != ErrNotFound {
				metrics.TenantLoadErrorsTotal.Inc()
			}
			return nil, err
		}
		c.m.Store(key, &entry{rec: rec, lastSeen: time.Now().UnixNano()})
		metrics.TenantLoadTotal.Inc()
		metrics.ActiveTenants.Inc()
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Record), nil
}
