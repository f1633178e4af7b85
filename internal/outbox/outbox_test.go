package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olas-server/internal/relay"
	"olas-server/internal/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type fakePublisher struct {
	fail   map[string]bool
	relays [][]string
}

func (f *fakePublisher) Publish(ctx context.Context, relays []string, evt *types.Event) ([]relay.PublishResult, error) {
	f.relays = append(f.relays, relays)
	if f.fail[evt.ID] {
		return nil, errors.New("no relay accepted the event")
	}
	return []relay.PublishResult{{Relay: relays[0], Success: true}}, nil
}

func TestAddCountListRemove(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	evt := &types.Event{ID: "e1", PubKey: "me", Kind: 20, Content: "hi", Tags: [][]string{{"t", "x"}}, Sig: "sig"}
	require.NoError(t, s.Add(ctx, "me", evt, []string{"wss://a", "wss://b"}, "timeout"))
	require.NoError(t, s.Add(ctx, "me", evt, []string{"wss://c"}, "refused"))
	require.NoError(t, s.Add(ctx, "other", &types.Event{ID: "e2", Kind: 7}, nil, "timeout"))

	n, err := s.Count(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := s.List(ctx, "me")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, *evt, entries[0].Event)
	assert.Equal(t, []string{"wss://c"}, entries[0].Relays)
	assert.Equal(t, "refused", entries[0].LastError)

	require.NoError(t, s.Remove(ctx, "other", "e1"), "cannot remove someone else's event")
	n, _ = s.Count(ctx, "me")
	assert.Equal(t, 1, n)

	require.NoError(t, s.Remove(ctx, "me", "e1"))
	n, _ = s.Count(ctx, "me")
	assert.Zero(t, n)
}

func TestRetry(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "me", &types.Event{ID: "ok"}, nil, "timeout"))
	require.NoError(t, s.Add(ctx, "me", &types.Event{ID: "bad"}, []string{"wss://a"}, "timeout"))

	pub := &fakePublisher{fail: map[string]bool{"bad": true}}
	published, err := s.Retry(ctx, "me", pub, []string{"wss://fallback"})
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	assert.Contains(t, pub.relays, []string{"wss://fallback"})

	entries, err := s.List(ctx, "me")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bad", entries[0].Event.ID)
	assert.Equal(t, 2, entries[0].Attempts)
	assert.Equal(t, "no relay accepted the event", entries[0].LastError)
}
