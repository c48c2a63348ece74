package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jipbab-note/backend/internal/domain"

	"go.uber.org/zap"
)

const (
	defaultCatalogTTL   = 15 * time.Minute
	defaultBuildTimeout = 60 * time.Second
)

// CatalogSource produces a fresh catalog snapshot.
type CatalogSource interface {
	Build(ctx context.Context) (*domain.IngredientCatalog, error)
}

// CatalogCache owns the current catalog snapshot and its rebuild
// lifecycle: time-boxed freshness, single-flight builds, and
// stale-while-revalidate serving. Construct one per process and inject it
// into handlers; it carries no ambient state.
type CatalogCache struct {
	source       CatalogSource
	ttl          time.Duration
	buildTimeout time.Duration
	logger       *zap.Logger

	mu       sync.Mutex
	current  *domain.IngredientCatalog
	inflight *catalogBuild
}

// catalogBuild is the shared handle for one in-flight build. Waiters
// block on done; catalog/err are set before done closes.
type catalogBuild struct {
	done    chan struct{}
	catalog *domain.IngredientCatalog
	err     error
}

func NewCatalogCache(source CatalogSource, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{
		source:       source,
		ttl:          ttl,
		buildTimeout: defaultBuildTimeout,
		logger:       logger,
	}
}

// Get returns the current snapshot. Fresh snapshots are served as-is. A
// stale snapshot is served immediately while exactly one background
// rebuild runs; the caller never waits on it. With no snapshot at all the
// caller blocks on the (single-flight) first build, and only that path
// can surface a build error.
func (c *CatalogCache) Get(ctx context.Context) (*domain.IngredientCatalog, error) {
	c.mu.Lock()
	current := c.current
	if current != nil && time.Since(current.BuiltAt) < c.ttl {
		c.mu.Unlock()
		return current, nil
	}

	build := c.startBuildLocked()
	c.mu.Unlock()

	if current != nil {
		// Stale-while-revalidate: hand back the old snapshot, let the
		// rebuild finish on its own.
		return current, nil
	}

	select {
	case <-build.done:
		return build.catalog, build.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// startBuildLocked joins the in-flight build or starts a new one. The
// check-and-set runs under c.mu so two callers can never race a second
// build into existence.
func (c *CatalogCache) startBuildLocked() *catalogBuild {
	if c.inflight != nil {
		return c.inflight
	}

	build := &catalogBuild{done: make(chan struct{})}
	c.inflight = build
	go c.runBuild(build)
	return build
}

// runBuild executes one build to completion. It is detached from any
// request context: a caller that triggered a background refresh and went
// away must not cancel it.
func (c *CatalogCache) runBuild(build *catalogBuild) {
	ctx, cancel := context.WithTimeout(context.Background(), c.buildTimeout)
	defer cancel()

	catalog, err := c.source.Build(ctx)

	c.mu.Lock()
	switch {
	case err == nil:
		c.current = catalog
		build.catalog = catalog
	case c.current != nil:
		// Rebuild failed but we still hold a good snapshot; keep serving
		// it and swallow the failure.
		c.logger.Warn("catalog rebuild failed, keeping previous snapshot", zap.Error(err))
		build.catalog = c.current
	default:
		build.err = err
	}
	c.inflight = nil
	c.mu.Unlock()

	close(build.done)
}
