package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olas-server/internal/nostr"
	"olas-server/internal/types"
)

const testPrivKey = "edc90d06fee17615229c8526dc005d959e4af3bdc0b48c5776c951bcafedec85"

// fakeRelay answers every REQ with its stored events followed by EOSE and
// accepts every EVENT unless reject is set.
type fakeRelay struct {
	mu       sync.Mutex
	events   []*types.Event
	received []types.Event
	filters  []map[string]interface{}
	reject   bool
}

func (f *fakeRelay) handler(t *testing.T) http.HandlerFunc {
	upgrader := websocket.Upgrader{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var msg []interface{}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			switch msg[0] {
			case "REQ":
				f.mu.Lock()
				f.filters = append(f.filters, msg[2].(map[string]interface{}))
				events := append([]*types.Event(nil), f.events...)
				f.mu.Unlock()
				for _, evt := range events {
					conn.WriteJSON([]interface{}{"EVENT", msg[1], evt})
				}
				conn.WriteJSON([]interface{}{"EOSE", msg[1]})
			case "EVENT":
				raw, _ := json.Marshal(msg[1])
				evt, err := nostr.DecodeEvent(raw)
				ok := err == nil
				f.mu.Lock()
				if ok {
					f.received = append(f.received, evt)
				}
				reject := f.reject
				f.mu.Unlock()
				conn.WriteJSON([]interface{}{"OK", evt.ID, ok && !reject, "blocked: test"})
			}
		}
	}
}

func startRelay(t *testing.T, f *fakeRelay) string {
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func signed(t *testing.T, kind int, createdAt int64, content string) *types.Event {
	t.Helper()
	signer, err := nostr.NewKeySigner(testPrivKey)
	require.NoError(t, err)
	evt, err := signer.Sign(types.UnsignedEvent{Kind: kind, CreatedAt: createdAt, Content: content})
	require.NoError(t, err)
	return evt
}

func TestFetchDedupesAndSorts(t *testing.T) {
	a := signed(t, 7, 100, "a")
	b := signed(t, 7, 300, "b")
	c := signed(t, 7, 200, "c")

	r1 := startRelay(t, &fakeRelay{events: []*types.Event{a, b}})
	r2 := startRelay(t, &fakeRelay{events: []*types.Event{b, c}})

	client := NewClient(2*time.Second, 0)
	events, allEOSE := client.Fetch(context.Background(), []string{r1, r2}, types.Filter{Kinds: []int{7}})

	assert.True(t, allEOSE)
	require.Len(t, events, 3)
	assert.Equal(t, []int64{300, 200, 100}, []int64{events[0].CreatedAt, events[1].CreatedAt, events[2].CreatedAt})
}

func TestFetchAppliesLimitAndSendsFilter(t *testing.T) {
	f := &fakeRelay{events: []*types.Event{signed(t, 1, 1, "x"), signed(t, 1, 2, "y")}}
	r := startRelay(t, f)

	since := int64(1)
	events, _ := NewClient(2*time.Second, 0).Fetch(context.Background(), []string{r}, types.Filter{
		Kinds: []int{1}, PTags: []string{"alice"}, Since: &since, Limit: 1,
	})

	require.Len(t, events, 1)
	assert.Equal(t, int64(2), events[0].CreatedAt)

	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.filters, 1)
	assert.Equal(t, []interface{}{"alice"}, f.filters[0]["#p"])
	assert.Equal(t, float64(1), f.filters[0]["since"])
}

func TestFetchUnreachableRelay(t *testing.T) {
	events, allEOSE := NewClient(300*time.Millisecond, 0).Fetch(context.Background(), []string{"ws://127.0.0.1:1"}, types.Filter{})
	assert.Empty(t, events)
	assert.False(t, allEOSE)
}

func TestSortEventsTieBreaksOnID(t *testing.T) {
	events := []types.Event{{ID: "a", CreatedAt: 5}, {ID: "c", CreatedAt: 5}, {ID: "b", CreatedAt: 9}}
	SortEvents(events)
	assert.Equal(t, []string{"b", "c", "a"}, []string{events[0].ID, events[1].ID, events[2].ID})
}

func TestPublish(t *testing.T) {
	ok := &fakeRelay{}
	bad := &fakeRelay{reject: true}
	evt := signed(t, 7, 100, "+")

	results, err := NewClient(0, 2*time.Second).Publish(context.Background(), []string{startRelay(t, ok), startRelay(t, bad)}, evt)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "blocked: test", results[1].Message)

	ok.mu.Lock()
	defer ok.mu.Unlock()
	require.Len(t, ok.received, 1)
	assert.Equal(t, evt.ID, ok.received[0].ID)
}

func TestPublishFailsWhenAllReject(t *testing.T) {
	evt := signed(t, 7, 100, "+")
	_, err := NewClient(0, 2*time.Second).Publish(context.Background(), []string{startRelay(t, &fakeRelay{reject: true})}, evt)
	assert.Error(t, err)

	_, err = NewClient(0, 0).Publish(context.Background(), nil, evt)
	assert.ErrorIs(t, err, ErrNoRelays)
}
