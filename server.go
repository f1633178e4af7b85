package main

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"olas-server/internal/auth"
	"olas-server/internal/cache"
	"olas-server/internal/config"
	"olas-server/internal/notifications"
	"olas-server/internal/outbox"
	"olas-server/internal/relay"
	"olas-server/internal/types"
)

//go:embed static
var staticFiles embed.FS

// RelayClient is the relay transport the handlers need
type RelayClient interface {
	Fetch(ctx context.Context, relays []string, filter types.Filter) ([]types.Event, bool)
	Publish(ctx context.Context, relays []string, evt *types.Event) ([]relay.PublishResult, error)
}

// Server holds every dependency of the HTTP handlers
type Server struct {
	cfg           *config.Config
	relays        RelayClient
	notifications *notifications.Service
	profiles      *cache.ProfileCache
	sessions      types.SessionStore
	outbox        *outbox.Store
	csrf          *auth.CSRFManager
	keys          *auth.Keys
	backend       cache.Backend
	cacheBackend  string
	sessionMaxAge time.Duration
	templates     map[string]*template.Template
	now           func() time.Time

	limitersMu sync.Mutex
	limiters   map[string]*rate.Limiter
}

// Deps are the collaborators handed to NewServer
type Deps struct {
	Config      *config.Config
	Relays      RelayClient
	Backend     cache.Backend
	BackendType string
	CacheConfig cache.CacheConfig
	Outbox      *outbox.Store
	Keys        *auth.Keys
}

func NewServer(d Deps) *Server {
	s := &Server{
		cfg:           d.Config,
		relays:        d.Relays,
		profiles:      cache.NewProfileCache(d.Backend, d.CacheConfig),
		sessions:      cache.NewSessionStore(d.Backend, d.CacheConfig.SessionTTL),
		outbox:        d.Outbox,
		csrf:          auth.NewCSRFManager(d.Keys.CSRF),
		keys:          d.Keys,
		backend:       d.Backend,
		cacheBackend:  d.BackendType,
		sessionMaxAge: d.CacheConfig.SessionTTL,
		templates:     compileTemplates(),
		now:           time.Now,
		limiters:      make(map[string]*rate.Limiter),
	}
	s.notifications = notifications.NewService(
		d.Relays,
		cache.NewNotificationCacheStore(d.Backend),
		cache.NewNotificationReadStore(d.Backend, d.CacheConfig.NotificationReadTTL),
		notifications.Config{Relays: d.Config.Relays, CacheTTL: d.CacheConfig.NotificationCacheTTL},
	)
	return s
}

// limiter returns the reaction rate limiter for a session
func (s *Server) limiter(sessionID string) *rate.Limiter {
	s.limitersMu.Lock()
	defer s.limitersMu.Unlock()
	l, ok := s.limiters[sessionID]
	if !ok {
		l = rate.NewLimiter(rate.Limit(s.cfg.ReactRate), s.cfg.ReactBurst)
		s.limiters[sessionID] = l
	}
	return l
}

func (s *Server) forgetLimiter(sessionID string) {
	s.limitersMu.Lock()
	delete(s.limiters, sessionID)
	s.limitersMu.Unlock()
}

// Request body size limit for form posts
const maxBodySize = 32 * 1024

// limitBody wraps an HTTP handler to limit request body size
func limitBody(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

// securityHeaders wraps an HTTP handler to add security headers
func securityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Media comes from arbitrary hosts; scripts and styles only from here
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src * data:; media-src *; style-src 'self' 'unsafe-inline'; script-src 'self'")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next(w, r)
	}
}

// Routes builds the HTTP handler tree
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.FileServerFS(staticFiles))
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/metrics", s.metricsHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/html/notifications", http.StatusFound)
			return
		}
		http.NotFound(w, r)
	})

	mux.HandleFunc("/html/login", securityHeaders(limitBody(s.htmlLoginHandler, maxBodySize)))
	mux.HandleFunc("/html/logout", securityHeaders(limitBody(s.htmlLogoutHandler, maxBodySize)))
	mux.HandleFunc("/html/notifications", securityHeaders(s.htmlNotificationsHandler))
	mux.HandleFunc("/html/settings", securityHeaders(s.htmlSettingsHandler))
	mux.HandleFunc("/html/settings/advanced", securityHeaders(limitBody(s.htmlAdvancedToggleHandler, maxBodySize)))
	mux.HandleFunc("/html/settings/wallet", securityHeaders(limitBody(s.htmlWalletHandler, maxBodySize)))
	mux.HandleFunc("/html/settings/wallet/unlink", securityHeaders(limitBody(s.htmlWalletUnlinkHandler, maxBodySize)))
	mux.HandleFunc("/html/settings/key", securityHeaders(s.htmlKeyHandler))
	mux.HandleFunc("/html/settings/relays", securityHeaders(s.htmlRelaysHandler))
	mux.HandleFunc("/html/settings/muted", securityHeaders(s.htmlMutedHandler))
	mux.HandleFunc("/html/settings/unpublished", securityHeaders(s.htmlUnpublishedHandler))
	mux.HandleFunc("/html/settings/unpublished/retry", securityHeaders(limitBody(s.htmlUnpublishedRetryHandler, maxBodySize)))
	mux.HandleFunc("/html/settings/unpublished/remove", securityHeaders(limitBody(s.htmlUnpublishedRemoveHandler, maxBodySize)))
	mux.HandleFunc("/html/compose", securityHeaders(s.htmlComposeHandler))
	mux.HandleFunc("/html/compose/new", securityHeaders(s.htmlNewPostHandler))
	mux.HandleFunc("/html/post", securityHeaders(limitBody(s.htmlPostHandler, maxBodySize)))
	mux.HandleFunc("/html/event/", securityHeaders(s.htmlEventHandler))
	mux.HandleFunc("/html/react", securityHeaders(limitBody(s.htmlReactHandler, maxBodySize)))

	return RequestLoggingMiddleware(mux)
}

// healthHandler reports 503 while the cache backend is unreachable
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := s.backend.Ping(ctx); err != nil {
		LoggerFromContext(ctx).Warn("health check failed", "backend", s.cacheBackend, "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded"}`))
		return
	}
	w.Write([]byte(`{"status":"ok"}`))
}
