package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"olas-server/internal/relay"
	"olas-server/internal/types"
)

// Source fetches events from relays
type Source interface {
	Fetch(ctx context.Context, relays []string, filter types.Filter) ([]types.Event, bool)
}

// Config tunes the notification service
type Config struct {
	Relays      []string
	Limit       int           // max notifications kept per user
	CacheTTL    time.Duration // how long a user's notification list is cached
	LoadTimeout time.Duration // bound on one shared relay round trip
}

// Service loads a user's notifications incrementally and tracks read state
type Service struct {
	source Source
	cache  types.NotificationCacheStore
	reads  types.NotificationReadStore
	config Config
	group  singleflight.Group
	now    func() time.Time
}

func NewService(source Source, cache types.NotificationCacheStore, reads types.NotificationReadStore, config Config) *Service {
	if config.Limit <= 0 {
		config.Limit = 200
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = time.Hour
	}
	if config.LoadTimeout <= 0 {
		config.LoadTimeout = 15 * time.Second
	}
	return &Service{
		source: source,
		cache:  cache,
		reads:  reads,
		config: config,
		now:    time.Now,
	}
}

// Load returns the user's notification events, newest first. Cached results
// are extended with anything newer than the newest cached event. Concurrent
// loads for the same user share one relay round trip.
func (s *Service) Load(ctx context.Context, pubkey string) ([]types.Event, error) {
	if pubkey == "" {
		return nil, nil
	}

	// Waiters share the result, so one caller going away must not cut it short
	v, err, _ := s.group.Do(pubkey, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.LoadTimeout)
		defer cancel()
		return s.load(loadCtx, pubkey)
	})
	if err != nil {
		return nil, err
	}
	events := v.([]types.Event)
	return append([]types.Event(nil), events...), nil
}

func (s *Service) load(ctx context.Context, pubkey string) ([]types.Event, error) {
	filter := types.Filter{
		PTags: []string{pubkey},
		Kinds: Kinds(),
		Limit: s.config.Limit,
	}

	cached, found, err := s.cache.Get(ctx, pubkey)
	if err != nil {
		return nil, fmt.Errorf("notification cache: %w", err)
	}
	var existing []types.Event
	if found {
		existing = cached.Events
		// Same-second arrivals are refetched; merge drops the duplicates
		since := cached.NewestSeen
		filter.Since = &since
	}

	fresh, complete := s.source.Fetch(ctx, s.config.Relays, filter)
	slog.Debug("notifications fetched", "fresh", len(fresh), "cached", len(existing), "incremental", found, "complete", complete)

	merged := merge(existing, fresh, s.config.Limit)

	// A relay that never sent EOSE may still hold older events, so the
	// watermark only moves on a complete fetch
	var newest int64
	if found {
		newest = cached.NewestSeen
	}
	if complete && len(merged) > 0 && merged[0].CreatedAt > newest {
		newest = merged[0].CreatedAt
	}

	if err := s.cache.Set(ctx, pubkey, &types.CachedNotifications{
		Events:     merged,
		NewestSeen: newest,
		CachedAt:   s.now().Unix(),
	}, s.config.CacheTTL); err != nil {
		slog.Warn("failed to cache notifications", "error", err)
	}
	return merged, nil
}

// merge combines two event lists, dropping duplicate IDs, newest first, capped at limit
func merge(a, b []types.Event, limit int) []types.Event {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]types.Event, 0, len(a)+len(b))
	for _, list := range [][]types.Event{b, a} {
		for _, evt := range list {
			if seen[evt.ID] {
				continue
			}
			seen[evt.ID] = true
			out = append(out, evt)
		}
	}
	relay.SortEvents(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MarkSeen records that the user has viewed their notifications at ts
func (s *Service) MarkSeen(ctx context.Context, pubkey string, ts int64) error {
	if pubkey == "" {
		return nil
	}
	return s.reads.SetLastRead(ctx, pubkey, ts)
}

// HasUnread reports whether the cached feed holds anything from someone else
// newer than the last time the user looked. It never touches relays.
func (s *Service) HasUnread(ctx context.Context, pubkey string) (bool, error) {
	if pubkey == "" {
		return false, nil
	}
	cached, found, err := s.cache.Get(ctx, pubkey)
	if err != nil || !found {
		return false, err
	}
	lastRead, _, err := s.reads.GetLastRead(ctx, pubkey)
	if err != nil {
		return false, err
	}
	for _, evt := range cached.Events {
		if evt.PubKey != pubkey && evt.CreatedAt > lastRead {
			return true, nil
		}
	}
	return false, nil
}
