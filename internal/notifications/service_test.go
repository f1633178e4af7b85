package notifications

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olas-server/internal/cache"
	"olas-server/internal/types"
)

type fakeSource struct {
	mu      sync.Mutex
	events  []types.Event
	slow    []types.Event // held by a relay that times out while timedOut is set
	filters []types.Filter
	ctxErrs []error
	calls   atomic.Int32
	delay   time.Duration

	timedOut bool
}

func (f *fakeSource) Fetch(ctx context.Context, relays []string, filter types.Filter) ([]types.Event, bool) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	all := f.events
	if !f.timedOut {
		all = append(append([]types.Event(nil), f.events...), f.slow...)
	}
	var out []types.Event
	for _, evt := range all {
		if filter.Since == nil || evt.CreatedAt >= *filter.Since {
			out = append(out, evt)
		}
	}
	return out, !f.timedOut
}

func newTestService(t *testing.T, src *fakeSource) *Service {
	t.Helper()
	backend := cache.NewMemory(100, time.Minute)
	t.Cleanup(func() { backend.Close() })
	return NewService(src, cache.NewNotificationCacheStore(backend), cache.NewNotificationReadStore(backend, time.Hour), Config{
		Relays: []string{"wss://relay.example.com"},
	})
}

func TestServiceLoadIsIncremental(t *testing.T) {
	src := &fakeSource{events: []types.Event{ev("a", 7, "bob", 100), ev("b", 1, "carol", 200)}}
	svc := newTestService(t, src)
	ctx := context.Background()

	got, err := svc.Load(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(got))
	require.Len(t, src.filters, 1)
	assert.Nil(t, src.filters[0].Since)
	assert.Equal(t, []string{me}, src.filters[0].PTags)
	assert.Equal(t, Kinds(), src.filters[0].Kinds)

	src.mu.Lock()
	src.events = append(src.events, ev("c", 9735, "erin", 300))
	src.mu.Unlock()

	got, err = svc.Load(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(got))
	require.Len(t, src.filters, 2)
	require.NotNil(t, src.filters[1].Since)
	assert.Equal(t, int64(200), *src.filters[1].Since)
}

func TestServiceLoadPicksUpSameSecondArrivals(t *testing.T) {
	src := &fakeSource{events: []types.Event{ev("a", 7, "bob", 200)}}
	svc := newTestService(t, src)
	ctx := context.Background()

	_, err := svc.Load(ctx, me)
	require.NoError(t, err)

	src.mu.Lock()
	src.events = append(src.events, ev("b", 7, "carol", 200))
	src.mu.Unlock()

	got, err := svc.Load(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestServiceLoadIncompleteFetchKeepsWatermark(t *testing.T) {
	src := &fakeSource{
		events:   []types.Event{ev("fast", 1, "bob", 300)},
		slow:     []types.Event{ev("slow", 7, "carol", 250)},
		timedOut: true,
	}
	svc := newTestService(t, src)
	ctx := context.Background()

	got, err := svc.Load(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, []string{"fast"}, ids(got))

	src.mu.Lock()
	src.timedOut = false
	src.mu.Unlock()

	got, err = svc.Load(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, []string{"fast", "slow"}, ids(got))
	require.Len(t, src.filters, 2)
	require.NotNil(t, src.filters[1].Since)
	assert.Zero(t, *src.filters[1].Since)

	_, err = svc.Load(ctx, me)
	require.NoError(t, err)
	require.Len(t, src.filters, 3)
	assert.Equal(t, int64(300), *src.filters[2].Since, "watermark advances once a fetch completes")
}

func TestServiceLoadOutlivesCancelledCaller(t *testing.T) {
	src := &fakeSource{events: []types.Event{ev("a", 7, "bob", 100)}, delay: 50 * time.Millisecond}
	svc := newTestService(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Load(ctx, me)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	<-done

	src.mu.Lock()
	defer src.mu.Unlock()
	require.Len(t, src.ctxErrs, 1)
	assert.NoError(t, src.ctxErrs[0])
}

func TestServiceLoadCollapsesConcurrentCalls(t *testing.T) {
	src := &fakeSource{events: []types.Event{ev("a", 7, "bob", 100)}, delay: 50 * time.Millisecond}
	svc := newTestService(t, src)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Load(context.Background(), me)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Less(t, src.calls.Load(), int32(5))
}

func TestServiceLoadLoggedOut(t *testing.T) {
	src := &fakeSource{}
	svc := newTestService(t, src)
	got, err := svc.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, src.calls.Load())
}

func TestServiceUnreadTracking(t *testing.T) {
	src := &fakeSource{events: []types.Event{ev("a", 7, "bob", 100), ev("b", 7, me, 500)}}
	svc := newTestService(t, src)
	ctx := context.Background()

	unread, err := svc.HasUnread(ctx, me)
	require.NoError(t, err)
	assert.False(t, unread, "nothing cached yet")

	_, err = svc.Load(ctx, me)
	require.NoError(t, err)

	unread, err = svc.HasUnread(ctx, me)
	require.NoError(t, err)
	assert.True(t, unread)

	require.NoError(t, svc.MarkSeen(ctx, me, 100))
	unread, err = svc.HasUnread(ctx, me)
	require.NoError(t, err)
	assert.False(t, unread, "own events never count as unread")
}

func TestMergeDedupesAndCaps(t *testing.T) {
	a := []types.Event{ev("x", 1, "bob", 100), ev("y", 1, "bob", 200)}
	b := []types.Event{ev("y", 1, "bob", 200), ev("z", 1, "bob", 300)}
	assert.Equal(t, []string{"z", "y"}, ids(merge(a, b, 2)))
}
