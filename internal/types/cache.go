package types

import (
	"context"
	"time"
)

// CachedProfile is a profile lookup result. NotFound entries stop repeated
// relay queries for pubkeys without a kind 0.
type CachedProfile struct {
	Profile   *ProfileInfo `json:"profile,omitempty"`
	FetchedAt int64        `json:"fetched_at"`
	NotFound  bool         `json:"not_found"`
}

// CachedNotifications is the stored notification list of one user
type CachedNotifications struct {
	Events     []Event `json:"events"`
	NewestSeen int64   `json:"newest_seen"` // created_at of the newest event held
	CachedAt   int64   `json:"cached_at"`
}

// Wallet is the wallet linked to a session
type Wallet struct {
	Type     string `json:"type"` // "nwc", "nip-60", "webln"
	Name     string `json:"name,omitempty"`
	WalletID string `json:"wallet_id,omitempty"`
}

// AppSettings are per-session application preferences
type AppSettings struct {
	AdvancedMode bool `json:"advanced_mode"`
}

// Session is a logged-in browser session
type Session struct {
	ID             string      `json:"id"`
	UserPubKey     string      `json:"user_pub_key"`       // hex encoded
	PrivKey        string      `json:"priv_key,omitempty"` // hex encoded; empty for read-only logins
	Wallet         *Wallet     `json:"wallet,omitempty"`
	Settings       AppSettings `json:"settings"`
	MutedPubkeys   []string    `json:"muted_pubkeys,omitempty"`
	MuteListLoaded bool        `json:"mute_list_loaded"`
	CreatedAt      int64       `json:"created_at"`
}

// CanSign reports whether the session holds a signing key
func (s *Session) CanSign() bool {
	return s != nil && s.PrivKey != ""
}

// NotificationReadStore remembers when each user last opened the
// notifications page
type NotificationReadStore interface {
	GetLastRead(ctx context.Context, pubkey string) (ts int64, found bool, err error)
	SetLastRead(ctx context.Context, pubkey string, ts int64) error
}

// NotificationCacheStore keeps the last fetched notifications per user so
// later loads only ask relays for newer events
type NotificationCacheStore interface {
	Get(ctx context.Context, pubkey string) (*CachedNotifications, bool, error)
	Set(ctx context.Context, pubkey string, cached *CachedNotifications, ttl time.Duration) error
}

// SessionStore persists browser sessions
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, bool, error)
	Set(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}
