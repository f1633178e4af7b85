package main

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"olas-server/internal/auth"
	"olas-server/internal/config"
	"olas-server/internal/nips"
	"olas-server/internal/nostr"
	"olas-server/internal/types"
)

const (
	sessionCookieName = "olas_session"
	anonCookieName    = "olas_anon"
	anonCookieMaxAge  = 30 * 60
)

var (
	errInvalidKey = errors.New("invalid key")
	hexKeyPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// getSession returns the session named by the signed session cookie, or nil
func (s *Server) getSession(r *http.Request) *types.Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	id, ok := auth.VerifyValue(s.keys.Cookie, cookie.Value)
	if !ok {
		return nil
	}
	session, found, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		LoggerFromContext(r.Context()).Warn("session lookup failed", "error", err)
		return nil
	}
	if !found {
		return nil
	}
	return session
}

// requireAuth redirects to login when there is no session.
// Returns nil if it redirected; the caller should return immediately.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) *types.Session {
	session := s.getSession(r)
	if session == nil {
		s.redirectWithError(w, r, "/html/login", config.I18n("msg.login_first"))
		return nil
	}
	return session
}

// requireSigner is requireAuth for actions that publish events
func (s *Server) requireSigner(w http.ResponseWriter, r *http.Request, returnURL string) *types.Session {
	session := s.requireAuth(w, r)
	if session == nil {
		return nil
	}
	if !session.CanSign() {
		s.respondWithError(w, r, returnURL, config.I18n("msg.read_only"))
		return nil
	}
	return session
}

// requireCSRF validates the form's token against the session ID
func (s *Server) requireCSRF(w http.ResponseWriter, r *http.Request, sessionID, returnURL string) bool {
	if !s.csrf.ValidateToken(sessionID, r.FormValue("csrf_token")) {
		s.respondWithError(w, r, returnURL, config.I18n("msg.invalid_csrf"))
		return false
	}
	return true
}

// requirePost redirects anything but a POST to returnURL
func requirePost(w http.ResponseWriter, r *http.Request, returnURL string) bool {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
		return false
	}
	return true
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request, pubkey, privkey string) (*types.Session, error) {
	session := &types.Session{
		ID:         uuid.NewString(),
		UserPubKey: pubkey,
		PrivKey:    privkey,
		CreatedAt:  s.now().Unix(),
	}
	if err := s.sessions.Set(r.Context(), session); err != nil {
		return nil, err
	}
	maxAge := int(s.sessionMaxAge.Seconds())
	s.setCookie(w, r, sessionCookieName, auth.SignValue(s.keys.Cookie, session.ID), "/", maxAge, http.SameSiteLaxMode)
	return session, nil
}

func (s *Server) destroySession(w http.ResponseWriter, r *http.Request, session *types.Session) {
	if session != nil {
		if err := s.sessions.Delete(r.Context(), session.ID); err != nil {
			LoggerFromContext(r.Context()).Warn("session delete failed", "error", err)
		}
		s.forgetLimiter(session.ID)
	}
	s.deleteCookie(w, r, sessionCookieName, "/")
}

// saveSession persists changes to a session, logging failures
func (s *Server) saveSession(r *http.Request, session *types.Session) error {
	err := s.sessions.Set(r.Context(), session)
	if err != nil {
		LoggerFromContext(r.Context()).Error("session save failed", "error", err)
	}
	return err
}

// anonSessionID returns a per-browser ID that binds CSRF tokens for
// logged-out forms, creating the cookie if needed
func (s *Server) anonSessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(anonCookieName); err == nil {
		if id, ok := auth.VerifyValue(s.keys.Cookie, cookie.Value); ok {
			return id
		}
	}
	id := uuid.NewString()
	s.setCookie(w, r, anonCookieName, auth.SignValue(s.keys.Cookie, id), "/html/login", anonCookieMaxAge, http.SameSiteStrictMode)
	return id
}

// parseLoginKey accepts nsec, npub or a 64 char hex private key. npub logins
// are read-only and return an empty private key.
func parseLoginKey(input string) (pubkey, privkey string, err error) {
	input = strings.TrimSpace(input)
	switch {
	case strings.HasPrefix(input, "nsec1"):
		privkey, err = nips.DecodePrivkey(input)
		if err != nil {
			return "", "", errInvalidKey
		}
	case strings.HasPrefix(input, "npub1"):
		pubkey, err = nips.DecodePubkey(input)
		if err != nil {
			return "", "", errInvalidKey
		}
		return pubkey, "", nil
	case hexKeyPattern.MatchString(strings.ToLower(input)):
		privkey = strings.ToLower(input)
	default:
		return "", "", errInvalidKey
	}

	pubkey, err = nostr.PubKeyFromPrivKey(privkey)
	if err != nil {
		return "", "", errInvalidKey
	}
	return pubkey, privkey, nil
}
