package git

import (
	"context"
	"sync"
	"time"
)

// CachedService wraps a Service with a short TTL cache for the reads every
// refresh repeats (branch listing, current and default branch). Mutations
// invalidate the cache on success so the next read is fresh.
//
// Ref watcher refreshes call InvalidateRefs, which drops the listing and the
// current branch but keeps the default branch, so a burst of refreshes
// resolves the default branch once per TTL.
//
// Every invalidation bumps a generation counter. A read that started before
// an invalidation does not store its result.
type CachedService struct {
	inner Service
	ttl   time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
	gen   uint64
}

type cacheEntry struct {
	val    any
	err    error
	expiry time.Time
}

// Compile-time check.
var _ Service = (*CachedService)(nil)

// NewCachedService wraps inner with a TTL cache. A zero ttl disables caching.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		cache: make(map[string]cacheEntry, 4),
	}
}

// Invalidate clears all cached entries.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 4)
	c.gen++
	c.mu.Unlock()
}

// InvalidateRefs drops the branch listing and current branch. The default
// branch stays cached until its TTL runs out.
func (c *CachedService) InvalidateRefs() {
	c.mu.Lock()
	delete(c.cache, "branches")
	delete(c.cache, "current")
	c.gen++
	c.mu.Unlock()
}

// get returns a live entry, or the current generation to hand to set.
func (c *CachedService) get(key string) (val any, gen uint64, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[key]
	if !found || time.Now().After(e.expiry) {
		return nil, c.gen, false, nil
	}
	return e.val, c.gen, true, e.err
}

// set stores a result read at generation gen. Results from before an
// invalidation are dropped. Timeouts and cancellations are never cached since
// they say nothing about the repository.
func (c *CachedService) set(key string, gen uint64, val any, err error) {
	if c.ttl <= 0 {
		return
	}
	if r := ReasonOf(err); err != nil && (r == ReasonTimeout || r == ReasonCanceled) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.cache[key] = cacheEntry{val: val, err: err, expiry: time.Now().Add(c.ttl)}
}

// invalidateAndReturn is a helper for write methods.
func (c *CachedService) invalidateAndReturn(err error) error {
	if err == nil {
		c.Invalidate()
	}
	return err
}

// RepoRoot delegates to the inner service.
func (c *CachedService) RepoRoot() string { return c.inner.RepoRoot() }

// IsGitRepo delegates to the inner service (not cached).
func (c *CachedService) IsGitRepo(ctx context.Context) bool { return c.inner.IsGitRepo(ctx) }

// CurrentBranch returns the checked-out branch (cached).
func (c *CachedService) CurrentBranch(ctx context.Context) (string, error) {
	cached, gen, ok, err := c.get("current")
	if ok {
		return cached.(string), err
	}
	v, err := c.inner.CurrentBranch(ctx)
	c.set("current", gen, v, err)
	return v, err
}

// DefaultBranch returns the primary branch (cached).
func (c *CachedService) DefaultBranch(ctx context.Context) (string, error) {
	cached, gen, ok, err := c.get("default")
	if ok {
		return cached.(string), err
	}
	v, err := c.inner.DefaultBranch(ctx)
	c.set("default", gen, v, err)
	return v, err
}

// Branches returns the branch listing (cached).
func (c *CachedService) Branches(ctx context.Context) ([]Branch, error) {
	cached, gen, ok, err := c.get("branches")
	if ok {
		return cached.([]Branch), err
	}
	v, err := c.inner.Branches(ctx)
	c.set("branches", gen, v, err)
	return v, err
}

// CreateBranch creates a branch and invalidates the cache.
func (c *CachedService) CreateBranch(ctx context.Context, name, startPoint string) (Branch, error) {
	b, err := c.inner.CreateBranch(ctx, name, startPoint)
	return b, c.invalidateAndReturn(err)
}

// DeleteBranch deletes a branch and invalidates the cache.
func (c *CachedService) DeleteBranch(ctx context.Context, name string, force bool) error {
	return c.invalidateAndReturn(c.inner.DeleteBranch(ctx, name, force))
}

// CheckoutBranch switches branches and invalidates the cache.
func (c *CachedService) CheckoutBranch(ctx context.Context, name string) error {
	return c.invalidateAndReturn(c.inner.CheckoutBranch(ctx, name))
}

// RenameBranch renames a branch and invalidates the cache.
func (c *CachedService) RenameBranch(ctx context.Context, oldName, newName string) error {
	return c.invalidateAndReturn(c.inner.RenameBranch(ctx, oldName, newName))
}

// Commits delegates to the inner service (not cached, already bounded by limit).
func (c *CachedService) Commits(ctx context.Context, branch string, limit int) ([]Commit, error) {
	return c.inner.Commits(ctx, branch, limit)
}

// ChangedFiles delegates to the inner service (not cached).
func (c *CachedService) ChangedFiles(ctx context.Context, branchA, branchB string) ([]FileChange, error) {
	return c.inner.ChangedFiles(ctx, branchA, branchB)
}

// FileDiff delegates to the inner service (not cached).
func (c *CachedService) FileDiff(ctx context.Context, path, branchA, branchB string) (string, error) {
	return c.inner.FileDiff(ctx, path, branchA, branchB)
}

// Fetch fetches and invalidates the cache.
func (c *CachedService) Fetch(ctx context.Context, remote string) error {
	return c.invalidateAndReturn(c.inner.Fetch(ctx, remote))
}
