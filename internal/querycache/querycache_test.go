package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(opts Options) (*Client, *time.Time) {
	c := New(opts)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestKey(t *testing.T) {
	assert.Equal(t, `["projects"]`, Key("projects"))
	assert.Equal(t, `["project",5]`, Key("project", 5))
	assert.NotEqual(t, Key("project", 5), Key("project", "5"))
}

func TestClient_FetchCachesWhileFresh(t *testing.T) {
	c, now := newTestClient(Options{StaleTime: time.Minute})
	ctx := context.Background()
	calls := 0
	fn := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v, err := c.Fetch(ctx, "k", fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = c.Fetch(ctx, "k", fn)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, calls)

	*now = now.Add(2 * time.Minute)
	v, err = c.Fetch(ctx, "k", fn)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)
}

func TestClient_WithStaleTimeOverride(t *testing.T) {
	c, now := newTestClient(Options{StaleTime: time.Hour})
	ctx := context.Background()
	calls := 0
	fn := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	_, err := c.Fetch(ctx, "k", fn, WithStaleTime(time.Second))
	require.NoError(t, err)
	*now = now.Add(2 * time.Second)
	_, err = c.Fetch(ctx, "k", fn, WithStaleTime(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestClient_RetriesFailures(t *testing.T) {
	c, _ := newTestClient(Options{Retry: 2, RetryDelay: time.Millisecond})
	calls := 0
	v, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("boom")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, calls)
}

func TestClient_DoesNotRetryNotFound(t *testing.T) {
	c, _ := newTestClient(Options{Retry: 3, RetryDelay: time.Millisecond})
	calls := 0
	_, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		calls++
		return nil, ErrNotFound
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, calls)

	state, ok := c.State("k")
	require.True(t, ok)
	assert.Equal(t, StatusError, state.Status)
	_, ok = c.GetQueryData("k")
	assert.False(t, ok)
}

func TestClient_ErrorAfterSuccessKeepsData(t *testing.T) {
	c, now := newTestClient(Options{StaleTime: time.Second, Retry: 0})
	ctx := context.Background()
	c.SetQueryData("k", "old")
	*now = now.Add(time.Minute)

	_, err := c.Fetch(ctx, "k", func(ctx context.Context) (any, error) {
		return nil, errors.New("down")
	})
	require.Error(t, err)

	state, _ := c.State("k")
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, "old", state.Data)
}

func TestClient_DedupesConcurrentFetches(t *testing.T) {
	c := New(Options{})
	var calls int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), "k", fn)
			assert.NoError(t, err)
			assert.Equal(t, "v", v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := New(Options{})
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return "v", nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctxA, "k", fn)
		errA <- err
	}()
	<-started
	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	state, ok := c.State("k")
	require.True(t, ok)
	assert.Equal(t, StatusPending, state.Status)

	type result struct {
		v   any
		err error
	}
	doneB := make(chan result, 1)
	go func() {
		v, err := c.Fetch(context.Background(), "k", fn)
		doneB <- result{v, err}
	}()
	close(release)

	b := <-doneB
	require.NoError(t, b.err)
	assert.Equal(t, "v", b.v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	state, _ = c.State("k")
	assert.Equal(t, StatusSuccess, state.Status)
}

func TestClient_ContextErrorIsNotCached(t *testing.T) {
	c := New(Options{Retry: 2})
	var calls int32
	_, err := c.Fetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, context.DeadlineExceeded
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, ok := c.State("k")
	assert.False(t, ok)
}

func TestQuery_Typed(t *testing.T) {
	c := New(Options{})
	got, err := Query(context.Background(), c, Key("nums"), func(ctx context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	cached, ok := GetQueryData[[]int](c, Key("nums"))
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, cached)

	_, ok = GetQueryData[string](c, Key("nums"))
	assert.False(t, ok)
}

func TestClient_InvalidateAndReset(t *testing.T) {
	c := New(Options{})
	c.SetQueryData("a", 1)
	c.SetQueryData("b", 2)

	c.Invalidate("a")
	_, ok := c.GetQueryData("a")
	assert.False(t, ok)

	c.Reset()
	_, ok = c.GetQueryData("b")
	assert.False(t, ok)
}

func TestClient_InvalidateQueriesByPrefix(t *testing.T) {
	c, _ := newTestClient(Options{})
	c.SetQueryData(Key("properties"), []int{1})
	c.SetQueryData(Key("properties", "featured", 6), []int{1})
	c.SetQueryData(Key("property", 1), 1)

	assert.Equal(t, 2, c.InvalidateQueries("properties"))

	_, ok := c.GetQueryData(Key("properties"))
	assert.False(t, ok)
	_, ok = c.GetQueryData(Key("properties", "featured", 6))
	assert.False(t, ok)
	_, ok = c.GetQueryData(Key("property", 1))
	assert.True(t, ok)
}
