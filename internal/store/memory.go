package store

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/sync/singleflight"
)

// Metrics receives cache lifecycle events.
type Metrics interface {
	Hit()
	Miss()
	Eviction()
	Expire()
}

// NoopMetrics discards every event.
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Expire()   {}

type options struct {
	clock          clock.Clock
	metrics        Metrics
	computeTimeout time.Duration
}

// Option customizes a TTLCache.
type Option func(*options)

// WithClock replaces the wall clock, mostly useful with clock.NewMock in tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMetrics reports hits, misses, evictions and expirations to m.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithComputeTimeout bounds a shared compute call started by GetOrCompute.
// Zero leaves it unbounded.
func WithComputeTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.computeTimeout = d
		}
	}
}

type entry[V any] struct {
	value     V
	expiresAt time.Time // zero => never expires
}

// TTLCache is a concurrency-safe in-memory cache whose entries expire a fixed
// time after they were written. Expiry is passive: stale entries are dropped
// when they are next looked at. When the cache is full the least recently
// used entry is evicted.
type TTLCache[V any] struct {
	mu sync.Mutex

	// recency-ordered entries; bounded by maxSize
	lru *simplelru.LRU[string, entry[V]]

	maxSize int           // 0 = unlimited
	ttl     time.Duration // 0 = entries never expire

	clock          clock.Clock
	metrics        Metrics
	computeTimeout time.Duration

	// collapses concurrent misses on the same key into a single compute call
	sf singleflight.Group
}

// New creates a TTLCache holding at most maxSize entries, each living for ttl.
// If maxSize is <= 0 the cache is unbounded; if ttl is <= 0 entries never expire.
func New[V any](maxSize int, ttl time.Duration, opts ...Option) *TTLCache[V] {
	o := options{
		clock:   clock.New(),
		metrics: NoopMetrics{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	if maxSize < 0 {
		maxSize = 0
	}
	size := maxSize
	if size == 0 {
		size = math.MaxInt
	}
	// NewLRU only fails for a non-positive size.
	lru, _ := simplelru.NewLRU[string, entry[V]](size, nil)

	return &TTLCache[V]{
		lru:            lru,
		maxSize:        maxSize,
		ttl:            ttl,
		clock:          o.clock,
		metrics:        o.metrics,
		computeTimeout: o.computeTimeout,
	}
}

// Get returns the live value stored under key.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lookup(key)
	if ok {
		c.metrics.Hit()
	} else {
		c.metrics.Miss()
	}
	return v, ok
}

// Set stores value under key, replacing any previous value and restarting its TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	ent := entry[V]{value: value}
	if c.ttl > 0 {
		ent.expiresAt = now.Add(c.ttl)
	}

	// Make room from stale entries before the LRU drops a live one.
	if c.maxSize > 0 && !c.lru.Contains(key) && c.lru.Len() >= c.maxSize {
		c.purgeExpired(now)
	}

	if evicted := c.lru.Add(key, ent); evicted {
		c.metrics.Eviction()
	}
}

// GetOrCompute returns the live value for key, or calls compute, stores its
// result and returns it. Errors from compute are returned and nothing is cached.
//
// Concurrent callers missing on the same key share a single compute call. That
// call is detached from any one caller's cancellation and bounded only by the
// compute timeout; each caller still stops waiting when its own ctx is done.
func (c *TTLCache[V]) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, error) {
	var zero V

	if v, ok := c.Get(key); ok {
		return v, nil
	}

	ch := c.sf.DoChan(key, func() (any, error) {
		// A flight that finished just before this one may already have stored it.
		c.mu.Lock()
		v, ok := c.lookup(key)
		c.mu.Unlock()
		if ok {
			return v, nil
		}

		cctx := context.WithoutCancel(ctx)
		if c.computeTimeout > 0 {
			var cancel context.CancelFunc
			cctx, cancel = context.WithTimeout(cctx, c.computeTimeout)
			defer cancel()
		}

		v, err := compute(cctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}

// Len returns the number of live entries.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeExpired(c.clock.Now())
	return c.lru.Len()
}

// lookup must be called with c.mu held.
func (c *TTLCache[V]) lookup(key string) (V, bool) {
	var zero V

	ent, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if ent.expired(c.clock.Now()) {
		c.lru.Remove(key)
		c.metrics.Expire()
		return zero, false
	}
	return ent.value, true
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (c *TTLCache[V]) purgeExpired(now time.Time) {
	for _, key := range c.lru.Keys() {
		if ent, ok := c.lru.Peek(key); ok && ent.expired(now) {
			c.lru.Remove(key)
			c.metrics.Expire()
		}
	}
}
