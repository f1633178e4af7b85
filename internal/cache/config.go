package cache

import "time"

// CacheConfig holds cache TTL configuration
type CacheConfig struct {
	ProfileTTL           time.Duration
	ProfileNotFoundTTL   time.Duration
	SessionTTL           time.Duration
	NotificationReadTTL  time.Duration
	NotificationCacheTTL time.Duration
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		ProfileTTL:           1 * time.Hour,
		ProfileNotFoundTTL:   30 * time.Second, // lets a later page load retry
		SessionTTL:           24 * time.Hour,
		NotificationReadTTL:  30 * 24 * time.Hour,
		NotificationCacheTTL: 1 * time.Hour,
	}
}
