package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"olas-server/internal/types"
)

const (
	profilePrefix    = "profile:"
	notifReadPrefix  = "notif_read:"
	notifCachePrefix = "notif_cache:"
	sessionPrefix    = "session:"
)

// ProfileCache provides typed access to cached kind-0 profiles
type ProfileCache struct {
	backend Backend
	config  CacheConfig
}

func NewProfileCache(backend Backend, config CacheConfig) *ProfileCache {
	return &ProfileCache{backend: backend, config: config}
}

// GetMultiple returns cached profiles and the pubkeys that still need fetching.
// Pubkeys cached as not-found are returned with a nil profile and are not missing.
func (c *ProfileCache) GetMultiple(ctx context.Context, pubkeys []string) (map[string]*types.ProfileInfo, []string) {
	keys := make([]string, len(pubkeys))
	for i, pk := range pubkeys {
		keys[i] = profilePrefix + pk
	}

	found, err := c.backend.GetMany(ctx, keys)
	if err != nil {
		slog.Warn("profile cache lookup failed", "error", err)
		found = nil
	}

	profiles := make(map[string]*types.ProfileInfo, len(pubkeys))
	var missing []string
	for _, pk := range pubkeys {
		data, ok := found[profilePrefix+pk]
		if !ok {
			missing = append(missing, pk)
			continue
		}
		var cached types.CachedProfile
		if err := json.Unmarshal(data, &cached); err != nil {
			missing = append(missing, pk)
			continue
		}
		profiles[pk] = cached.Profile
	}
	return profiles, missing
}

// SetMultiple stores profiles; nil profiles are stored as "not found" with a short TTL
func (c *ProfileCache) SetMultiple(ctx context.Context, profiles map[string]*types.ProfileInfo) {
	now := time.Now().Unix()
	found := make(map[string][]byte)
	notFound := make(map[string][]byte)
	for pk, p := range profiles {
		data, err := json.Marshal(types.CachedProfile{Profile: p, FetchedAt: now, NotFound: p == nil})
		if err != nil {
			continue
		}
		if p == nil {
			notFound[profilePrefix+pk] = data
		} else {
			found[profilePrefix+pk] = data
		}
	}
	if err := c.backend.SetMany(ctx, found, c.config.ProfileTTL); err != nil {
		slog.Warn("profile cache store failed", "error", err)
	}
	if err := c.backend.SetMany(ctx, notFound, c.config.ProfileNotFoundTTL); err != nil {
		slog.Warn("profile cache store failed", "error", err)
	}
}

// NotificationReadStore implements types.NotificationReadStore on a cache backend
type NotificationReadStore struct {
	backend Backend
	ttl     time.Duration
}

func NewNotificationReadStore(backend Backend, ttl time.Duration) *NotificationReadStore {
	return &NotificationReadStore{backend: backend, ttl: ttl}
}

func (s *NotificationReadStore) GetLastRead(ctx context.Context, pubkey string) (int64, bool, error) {
	data, found, err := s.backend.Get(ctx, notifReadPrefix+pubkey)
	if err != nil {
		slog.Error("notification read get error", "error", err)
		return 0, false, nil
	}
	if !found {
		return 0, false, nil
	}
	ts, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return ts, true, nil
}

func (s *NotificationReadStore) SetLastRead(ctx context.Context, pubkey string, timestamp int64) error {
	err := s.backend.Set(ctx, notifReadPrefix+pubkey, []byte(strconv.FormatInt(timestamp, 10)), s.ttl)
	if err != nil {
		slog.Error("notification read set error", "error", err)
	}
	return err
}

// NotificationCacheStore implements types.NotificationCacheStore on a cache backend
type NotificationCacheStore struct {
	backend Backend
}

func NewNotificationCacheStore(backend Backend) *NotificationCacheStore {
	return &NotificationCacheStore{backend: backend}
}

func (s *NotificationCacheStore) Get(ctx context.Context, pubkey string) (*types.CachedNotifications, bool, error) {
	data, found, err := s.backend.Get(ctx, notifCachePrefix+pubkey)
	if err != nil {
		slog.Error("notification cache get error", "error", err)
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	var cached types.CachedNotifications
	if err := json.Unmarshal(data, &cached); err != nil {
		slog.Error("notification cache unmarshal error", "error", err)
		return nil, false, nil
	}
	return &cached, true, nil
}

func (s *NotificationCacheStore) Set(ctx context.Context, pubkey string, cached *types.CachedNotifications, ttl time.Duration) error {
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal notifications: %w", err)
	}
	if err := s.backend.Set(ctx, notifCachePrefix+pubkey, data, ttl); err != nil {
		slog.Error("notification cache set error", "error", err)
		return err
	}
	return nil
}

// SessionStore implements types.SessionStore on a cache backend
type SessionStore struct {
	backend Backend
	ttl     time.Duration
}

func NewSessionStore(backend Backend, ttl time.Duration) *SessionStore {
	return &SessionStore{backend: backend, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, id string) (*types.Session, bool, error) {
	data, found, err := s.backend.Get(ctx, sessionPrefix+id)
	if err != nil || !found {
		return nil, false, err
	}
	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("decode session: %w", err)
	}
	return &session, true, nil
}

func (s *SessionStore) Set(ctx context.Context, session *types.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.backend.Set(ctx, sessionPrefix+session.ID, data, s.ttl)
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.backend.Delete(ctx, sessionPrefix+id)
}
