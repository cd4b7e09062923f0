// Package querycache is a small keyed result cache with staleness windows,
// retries and in-flight deduplication. Pages and API handlers share one
// Client per server so a detail lookup can reuse an already fetched list.
package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when a lookup resolves to no entity.
var ErrNotFound = errors.New("not found")

// Status of a cached query.
type Status int

const (
	StatusPending Status = iota
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "pending"
	}
}

// Result is the cached state of one query key.
type Result struct {
	Data      any
	Status    Status
	Err       error
	UpdatedAt time.Time
}

// Options configure a Client. A zero StaleTime or RetryDelay falls back to
// the default; Retry is taken as given.
type Options struct {
	StaleTime  time.Duration
	Retry      int
	RetryDelay time.Duration
}

const (
	DefaultStaleTime  = 5 * time.Minute
	DefaultRetry      = 1
	DefaultRetryDelay = 200 * time.Millisecond
)

// Client holds query results keyed by Key.
type Client struct {
	mu      sync.RWMutex
	entries map[string]*Result
	group   singleflight.Group
	opts    Options
	now     func() time.Time
}

// New creates an empty Client.
func New(opts Options) *Client {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.Retry < 0 {
		opts.Retry = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	return &Client{
		entries: make(map[string]*Result),
		opts:    opts,
		now:     time.Now,
	}
}

// Key builds a query key from its parts, e.g. Key("project", 5).
func Key(parts ...any) string {
	b, err := json.Marshal(parts)
	if err != nil {
		return fmt.Sprint(parts...)
	}
	return string(b)
}

// QueryOption overrides Client options for a single query.
type QueryOption func(*Options)

// WithStaleTime sets the freshness window for one query.
func WithStaleTime(d time.Duration) QueryOption {
	return func(o *Options) { o.StaleTime = d }
}

// WithRetry sets the retry count for one query.
func WithRetry(n int) QueryOption {
	return func(o *Options) { o.Retry = n }
}

// GetQueryData returns the data last stored under key, if the query succeeded.
func (c *Client) GetQueryData(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || e.Status != StatusSuccess {
		return nil, false
	}
	return e.Data, true
}

// State returns a copy of the cached result for key.
func (c *Client) State(key string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	return *e, true
}

// SetQueryData stores data under key as a fresh success.
func (c *Client) SetQueryData(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &Result{Data: data, Status: StatusSuccess, UpdatedAt: c.now()}
}

// Invalidate drops the entry for key so the next Fetch runs the query.
func (c *Client) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateQueries drops every entry whose key starts with parts, so
// InvalidateQueries("properties") also drops Key("properties", "featured", 6).
func (c *Client) InvalidateQueries(parts ...any) int {
	exact := Key(parts...)
	prefix := strings.TrimSuffix(exact, "]") + ","
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if k == exact || strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Reset drops every entry.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Result)
}

// Fetch returns fresh cached data for key or runs fn and caches its result.
func (c *Client) Fetch(ctx context.Context, key string, fn func(ctx context.Context) (any, error), opts ...QueryOption) (any, error) {
	o := c.opts
	for _, opt := range opts {
		opt(&o)
	}

	if data, ok := c.fresh(key, o.StaleTime); ok {
		return data, nil
	}

	// The shared fetch outlives any one caller; each caller stops waiting
	// when its own ctx is done.
	ch := c.group.DoChan(key, func() (any, error) {
		c.markPending(key)
		data, err := c.run(context.WithoutCancel(ctx), fn, o)
		if isContextErr(err) {
			c.dropPending(key)
		} else {
			c.store(key, data, err)
		}
		return data, err
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Query is the typed form of Client.Fetch.
func Query[T any](ctx context.Context, c *Client, key string, fn func(ctx context.Context) (T, error), opts ...QueryOption) (T, error) {
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	}, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("querycache: key %s holds %T", key, v)
	}
	return t, nil
}

// GetQueryData is the typed form of Client.GetQueryData.
func GetQueryData[T any](c *Client, key string) (T, bool) {
	v, ok := c.GetQueryData(key)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

func (c *Client) fresh(key string, staleTime time.Duration) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || e.Status != StatusSuccess {
		return nil, false
	}
	if c.now().Sub(e.UpdatedAt) >= staleTime {
		return nil, false
	}
	return e.Data, true
}

func (c *Client) markPending(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		// stale data stays readable while the refetch runs
		if e.Status == StatusSuccess {
			return
		}
	}
	c.entries[key] = &Result{Status: StatusPending}
}

// dropPending removes a pending marker left by a fetch that produced no
// result. Earlier data, if any, is kept.
func (c *Client) dropPending(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && e.Status == StatusPending {
		delete(c.entries, key)
	}
}

func (c *Client) store(key string, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		prev := c.entries[key]
		r := &Result{Status: StatusError, Err: err, UpdatedAt: c.now()}
		if prev != nil && prev.Status == StatusSuccess {
			r.Data = prev.Data
		}
		c.entries[key] = r
		return
	}
	c.entries[key] = &Result{Data: data, Status: StatusSuccess, UpdatedAt: c.now()}
}

func (c *Client) run(ctx context.Context, fn func(ctx context.Context) (any, error), o Options) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= o.Retry; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(o.RetryDelay * time.Duration(1<<uint(attempt-1))):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		data, err := fn(ctx)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if isContextErr(err) {
		return false
	}
	var t interface{ Temporary() bool }
	if errors.As(err, &t) {
		return t.Temporary()
	}
	return true
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
