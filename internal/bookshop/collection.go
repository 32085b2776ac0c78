// internal/bookshop/collection.go
//
// In-memory collection of all active bookshops.
//
// Context
// -------
// Every resolution request needs the full entity set, so the collection
// loads it once, serves read-only snapshots, and refreshes on a TTL.
// Concurrent refreshes collapse into one query via singleflight, the
// same way the old tenant loader collapsed cold-start stampedes.  While
// loading, the collection also builds a slug index over shop names; any
// slug shared by more than one shop is recorded so that name-only URL
// lookups can surface the collision as an ambiguity instead of silently
// returning the first match.
//
// Notes
// -----
// • Snapshots returned by Shops are shared; callers must not mutate.
// • A refresh failure keeps serving the previous snapshot when one
//   exists.  Cold-start failure returns the error.

package bookshop

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/indiebookshop/directory/internal/metrics"
	"github.com/indiebookshop/directory/internal/slug"
)

// DefaultTTL is used when the config leaves cache.shop_ttl unset.
const DefaultTTL = 5 * time.Minute

// Collection caches all active bookshops with TTL refresh.  Zero value
// is unusable; construct with NewCollection.
type Collection struct {
	db  *sqlx.DB
	ttl time.Duration
	sfg singleflight.Group

	mu        sync.RWMutex
	shops     []Record
	bySlug    map[string][]uint64
	collided  map[string]struct{}
	loadedAt  time.Time
}

// NewCollection returns a ready collection.  No query runs until the
// first Shops call; use Warm during boot to fail fast.
func NewCollection(db *sqlx.DB, ttl time.Duration) *Collection {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Collection{db: db, ttl: ttl}
}

// Warm performs the initial load so startup can log the shop count and
// abort on a dead database.
func (c *Collection) Warm(ctx context.Context) (int, error) {
	if err := c.refresh(ctx); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shops), nil
}

// Shops returns the current snapshot, refreshing first when stale.
func (c *Collection) Shops(ctx context.Context) ([]Record, error) {
	c.mu.RLock()
	fresh := time.Since(c.loadedAt) <= c.ttl && !c.loadedAt.IsZero()
	snapshot := c.shops
	c.mu.RUnlock()

	if fresh {
		return snapshot, nil
	}

	_, err, _ := c.sfg.Do("refresh", func() (interface{}, error) {
		// Double-check after the singleflight barrier.
		c.mu.RLock()
		fresh := time.Since(c.loadedAt) <= c.ttl && !c.loadedAt.IsZero()
		c.mu.RUnlock()
		if fresh {
			return nil, nil
		}
		return nil, c.refresh(ctx)
	})
	if err != nil {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.loadedAt.IsZero() {
			return nil, err
		}
		// Stale beats absent: keep serving the old snapshot.
		zap.L().Warn("bookshop reload failed, serving stale snapshot",
			zap.Error(err), zap.Time("loaded_at", c.loadedAt))
		return c.shops, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shops, nil
}

// slugCollides reports whether the given name slug was shared by more
// than one shop in the last load.  Resolution handles ambiguity on its
// own by collecting every match; the index here exists to log and count
// collisions at load time, so the accessor stays package-private.
func (c *Collection) slugCollides(s string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.collided[s]
	return ok
}

// refresh loads all rows and rebuilds the slug index.
func (c *Collection) refresh(ctx context.Context) error {
	rows, err := AllActive(ctx, c.db)
	if err != nil {
		metrics.ShopReloadErrorsTotal.Inc()
		return err
	}

	bySlug := make(map[string][]uint64, len(rows))
	collided := make(map[string]struct{})
	for _, r := range rows {
		s := slug.Make(r.Name)
		if s == "" {
			continue // degenerate name; resolvable by id only
		}
		bySlug[s] = append(bySlug[s], r.ID)
		if len(bySlug[s]) == 2 {
			collided[s] = struct{}{}
		}
	}
	for s := range collided {
		zap.L().Warn("bookshop name slug collision",
			zap.String("slug", s),
			zap.Uint64s("ids", bySlug[s]))
	}

	c.mu.Lock()
	c.shops = rows
	c.bySlug = bySlug
	c.collided = collided
	c.loadedAt = time.Now()
	c.mu.Unlock()

	metrics.ShopReloadTotal.Inc()
	metrics.LoadedShops.Set(float64(len(rows)))
	metrics.SlugCollisions.Set(float64(len(collided)))
	zap.L().Debug("bookshop collection loaded",
		zap.Int("count", len(rows)),
		zap.Int("slug_collisions", len(collided)))
	return nil
}
