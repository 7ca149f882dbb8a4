// Package query caches API reads by hierarchical key, retries failed reads
// and lets mutations invalidate what they change.
package query

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/eventops/rooming-dashboard/internal/metrics"
)

const (
	DefaultStaleTime = 5 * time.Minute
	DefaultCacheTime = 10 * time.Minute
)

type Config struct {
	// StaleTime is how long a result is served without refetching.
	StaleTime time.Duration
	// CacheTime is how long an unused entry is kept at all.
	CacheTime time.Duration
	Retry     RetryFunc
	Backoff   Backoff
}

func DefaultConfig() Config {
	return Config{
		StaleTime: DefaultStaleTime,
		CacheTime: DefaultCacheTime,
		Retry:     DefaultRetry,
		Backoff:   Backoff{Base: time.Second, Max: 30 * time.Second},
	}
}

type entry struct {
	parts      []string
	data       any
	updatedAt  time.Time
	accessedAt time.Time
	stale      bool
}

type Client struct {
	cfg     Config
	log     zerolog.Logger
	now     func() time.Time
	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]*entry

	// gen counts invalidations and removals. marks records, per prefix, the
	// generation that last touched it.
	gen   uint64
	marks map[string]mark
}

type mark struct {
	parts []string
	gen   uint64
}

func New(cfg Config, log zerolog.Logger) *Client {
	if cfg.Retry == nil {
		cfg.Retry = DefaultRetry
	}
	return &Client{
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		entries: make(map[string]*entry),
		marks:   make(map[string]mark),
	}
}

// Fetch returns the cached value for key while it is fresh; otherwise it
// calls fn, retrying per the client's policy, and caches the result.
// Concurrent fetches of one key share a single call, unless an invalidation
// happened in between. A result whose key was invalidated while it was in
// flight is cached as stale.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	id := key.String()
	if v, ok := c.fresh(id); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	started := c.generation()
	v, err, _ := c.group.Do(id+"@"+strconv.FormatUint(started, 10), func() (any, error) {
		out, err := c.retrying(ctx, func(ctx context.Context) (any, error) {
			return fn(ctx)
		})
		if err != nil {
			return nil, err
		}
		c.setSince(key, out, started)
		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}

// Mutate runs fn exactly once and, on success, hands the result to onSuccess.
func Mutate[T any](ctx context.Context, fn func(ctx context.Context) (T, error), onSuccess func(T)) (T, error) {
	out, err := fn(ctx)
	if err != nil {
		return out, err
	}
	if onSuccess != nil {
		onSuccess(out)
	}
	return out, nil
}

// GetQueryData returns the cached value for key regardless of freshness.
func GetQueryData[T any](c *Client, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[key.String()]
	if !ok {
		return zero, false
	}
	t, ok := e.data.(T)
	return t, ok
}

// SetQueryData stores v under key as a fresh result.
func (c *Client) SetQueryData(key Key, v any) {
	c.set(key, v)
}

// Invalidate marks every entry under prefix stale, so the next Fetch refetches.
func (c *Client) Invalidate(prefix Key) int {
	p := prefix.parts()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.markLocked(prefix)
	n := 0
	for _, e := range c.entries {
		if hasPrefix(e.parts, p) && !e.stale {
			e.stale = true
			n++
		}
	}
	metrics.QueryInvalidationsTotal.Add(float64(n))
	c.log.Debug().Str("prefix", prefix.String()).Int("entries", n).Msg("query cache invalidated")
	return n
}

// Remove drops every entry under prefix.
func (c *Client) Remove(prefix Key) int {
	p := prefix.parts()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.markLocked(prefix)
	n := 0
	for id, e := range c.entries {
		if hasPrefix(e.parts, p) {
			delete(c.entries, id)
			n++
		}
	}
	return n
}

// Len reports the number of cached entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Client) fresh(id string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.collect(now)

	e, ok := c.entries[id]
	if !ok {
		metrics.QueryCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	e.accessedAt = now
	if e.stale || now.Sub(e.updatedAt) >= c.cfg.StaleTime {
		metrics.QueryCacheTotal.WithLabelValues("stale").Inc()
		return nil, false
	}
	metrics.QueryCacheTotal.WithLabelValues("hit").Inc()
	return e.data, true
}

func (c *Client) set(key Key, v any) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key.String()] = &entry{
		parts:      key.parts(),
		data:       v,
		updatedAt:  now,
		accessedAt: now,
	}
}

// setSince stores v, marking it stale when an invalidation covering key
// happened after generation started.
func (c *Client) setSince(key Key, v any, started uint64) {
	now := c.now()
	parts := key.parts()
	c.mu.Lock()
	defer c.mu.Unlock()

	stale := false
	for _, m := range c.marks {
		if m.gen > started && hasPrefix(parts, m.parts) {
			stale = true
			break
		}
	}
	id := key.String()
	if cur, ok := c.entries[id]; ok && stale && !cur.stale {
		// a newer read already replaced it
		return
	}
	c.entries[id] = &entry{
		parts:      parts,
		data:       v,
		updatedAt:  now,
		accessedAt: now,
		stale:      stale,
	}
}

func (c *Client) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// markLocked records an invalidation of prefix. mu must be held.
func (c *Client) markLocked(prefix Key) {
	c.gen++
	c.marks[prefix.String()] = mark{parts: prefix.parts(), gen: c.gen}
}

// collect evicts entries unused for longer than CacheTime. mu must be held.
func (c *Client) collect(now time.Time) {
	if c.cfg.CacheTime <= 0 {
		return
	}
	for id, e := range c.entries {
		if now.Sub(e.accessedAt) > c.cfg.CacheTime {
			delete(c.entries, id)
		}
	}
}

func (c *Client) retrying(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	failures := 0
	for {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if !c.cfg.Retry(failures, err) {
			return nil, err
		}

		delay := c.cfg.Backoff.Delay(failures)
		failures++
		metrics.QueryRetriesTotal.Inc()
		c.log.Debug().Err(err).Int("attempt", failures).Dur("delay", delay).Msg("retrying query")

		if serr := sleep(ctx, delay); serr != nil {
			return nil, err
		}
	}
}
