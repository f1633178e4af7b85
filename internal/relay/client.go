// Package relay talks NIP-01 to Nostr relays over websockets: one short-lived
// connection per relay per request, fanned out concurrently.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"olas-server/internal/nostr"
	"olas-server/internal/types"
)

const (
	DefaultFetchTimeout   = 1500 * time.Millisecond
	DefaultPublishTimeout = 5 * time.Second
)

var ErrNoRelays = errors.New("no relays configured")

// Client fetches from and publishes to relays
type Client struct {
	dialer         *websocket.Dialer
	fetchTimeout   time.Duration
	publishTimeout time.Duration
}

// NewClient creates a relay client; zero timeouts use the defaults
func NewClient(fetchTimeout, publishTimeout time.Duration) *Client {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &Client{
		dialer:         websocket.DefaultDialer,
		fetchTimeout:   fetchTimeout,
		publishTimeout: publishTimeout,
	}
}

// Fetch queries all relays, dedupes by ID and returns events sorted by
// created_at DESC with ID DESC as tie-break, trimmed to filter.Limit.
// The bool reports whether every relay sent EOSE before the timeout.
func (c *Client) Fetch(ctx context.Context, relays []string, filter types.Filter) ([]types.Event, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	var wg sync.WaitGroup
	eventChan := make(chan types.Event, 1000)
	eoseChan := make(chan bool, len(relays))

	for _, relay := range relays {
		wg.Add(1)
		go func(relayURL string) {
			defer wg.Done()
			c.fetchFromRelay(ctx, relayURL, filter, eventChan, eoseChan)
		}(relay)
	}

	go func() {
		wg.Wait()
		close(eventChan)
		close(eoseChan)
	}()

	seenIDs := make(map[string]bool)
	var events []types.Event

collectLoop:
	for {
		select {
		case evt, ok := <-eventChan:
			if !ok {
				break collectLoop
			}
			if seenIDs[evt.ID] {
				continue
			}
			seenIDs[evt.ID] = true
			events = append(events, evt)
		case <-ctx.Done():
			slog.Debug("relay fetch timed out", "events", len(events))
			break collectLoop
		}
	}

	eoseCount := 0
drain:
	for {
		select {
		case _, ok := <-eoseChan:
			if !ok {
				break drain
			}
			eoseCount++
		default:
			break drain
		}
	}

	SortEvents(events)
	if filter.Limit > 0 && len(events) > filter.Limit {
		events = events[:filter.Limit]
	}
	return events, eoseCount == len(relays)
}

// SortEvents orders by created_at DESC, then by ID DESC
func SortEvents(events []types.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CreatedAt != events[j].CreatedAt {
			return events[i].CreatedAt > events[j].CreatedAt
		}
		return events[i].ID > events[j].ID
	})
}

// BuildREQFilter converts a Filter into its NIP-01 JSON object
func BuildREQFilter(filter types.Filter) map[string]interface{} {
	reqFilter := map[string]interface{}{}
	if filter.Limit > 0 {
		reqFilter["limit"] = filter.Limit
	}
	if len(filter.IDs) > 0 {
		reqFilter["ids"] = filter.IDs
	}
	if len(filter.Authors) > 0 {
		reqFilter["authors"] = filter.Authors
	}
	if len(filter.Kinds) > 0 {
		reqFilter["kinds"] = filter.Kinds
	}
	if len(filter.PTags) > 0 {
		reqFilter["#p"] = filter.PTags
	}
	if len(filter.ETags) > 0 {
		reqFilter["#e"] = filter.ETags
	}
	if filter.Since != nil {
		reqFilter["since"] = *filter.Since
	}
	if filter.Until != nil {
		reqFilter["until"] = *filter.Until
	}
	return reqFilter
}

func (c *Client) fetchFromRelay(ctx context.Context, relayURL string, filter types.Filter, eventChan chan<- types.Event, eoseChan chan<- bool) {
	conn, _, err := c.dialer.DialContext(ctx, relayURL, nil)
	if err != nil {
		slog.Debug("relay connect failed", "relay", relayURL, "error", err)
		return
	}
	defer conn.Close()

	// Unblock ReadJSON when the context ends
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	subID := "sub-" + uuid.NewString()[:8]
	req := []interface{}{"REQ", subID, BuildREQFilter(filter)}
	if err := conn.WriteJSON(req); err != nil {
		slog.Debug("relay REQ failed", "relay", relayURL, "error", err)
		return
	}

	for {
		var msg []json.RawMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		var msgType string
		if len(msg) < 2 || json.Unmarshal(msg[0], &msgType) != nil {
			continue
		}

		switch msgType {
		case "EVENT":
			if len(msg) < 3 {
				continue
			}
			evt, err := nostr.DecodeEvent(msg[2])
			if err != nil {
				slog.Debug("dropping relay event", "relay", relayURL, "error", err)
				continue
			}
			select {
			case eventChan <- evt:
			case <-ctx.Done():
				return
			}
		case "EOSE":
			conn.WriteJSON([]interface{}{"CLOSE", subID})
			eoseChan <- true
			return
		case "CLOSED", "NOTICE":
			var detail string
			json.Unmarshal(msg[len(msg)-1], &detail)
			slog.Debug("relay message", "relay", relayURL, "type", msgType, "detail", detail)
			if msgType == "CLOSED" {
				return
			}
		}
	}
}

// PublishResult is one relay's answer to an EVENT
type PublishResult struct {
	Relay   string
	Success bool
	Message string
}

// Publish sends a signed event to every relay concurrently and waits for OK
// responses. It returns an error only when no relay accepted the event.
func (c *Client) Publish(ctx context.Context, relays []string, evt *types.Event) ([]PublishResult, error) {
	if len(relays) == 0 {
		return nil, ErrNoRelays
	}

	ctx, cancel := context.WithTimeout(ctx, c.publishTimeout)
	defer cancel()

	results := make([]PublishResult, len(relays))
	var g errgroup.Group
	for i, relay := range relays {
		g.Go(func() error {
			results[i] = c.publishToRelay(ctx, relay, evt)
			return nil
		})
	}
	g.Wait()

	for _, r := range results {
		if r.Success {
			return results, nil
		}
	}
	return results, fmt.Errorf("event %s rejected by all %d relays", nostr.ShortID(evt.ID), len(relays))
}

func (c *Client) publishToRelay(ctx context.Context, relayURL string, evt *types.Event) PublishResult {
	res := PublishResult{Relay: relayURL}

	conn, _, err := c.dialer.DialContext(ctx, relayURL, nil)
	if err != nil {
		res.Message = err.Error()
		return res
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := conn.WriteJSON([]interface{}{"EVENT", evt}); err != nil {
		res.Message = err.Error()
		return res
	}

	for {
		var msg []json.RawMessage
		if err := conn.ReadJSON(&msg); err != nil {
			res.Message = "no OK received"
			return res
		}
		if len(msg) < 3 {
			continue
		}
		var msgType, eventID string
		if json.Unmarshal(msg[0], &msgType) != nil || msgType != "OK" {
			continue
		}
		if json.Unmarshal(msg[1], &eventID) != nil || eventID != evt.ID {
			continue
		}
		json.Unmarshal(msg[2], &res.Success)
		if len(msg) >= 4 {
			json.Unmarshal(msg[3], &res.Message)
		}
		return res
	}
}
