package main

import (
	"net/http"

	"olas-server/internal/auth"
	"olas-server/internal/config"
	"olas-server/internal/types"
	"olas-server/internal/util"
)

// pageData fills the fields every page shares. Call once per request: it
// consumes the flash cookies.
func (s *Server) pageData(w http.ResponseWriter, r *http.Request, session *types.Session, titleKey, nav string) PageData {
	data := PageData{
		Title:    config.I18n(titleKey),
		Nav:      nav,
		LoggedIn: session != nil,
		CanSign:  session.CanSign(),
		Flash:    s.getFlashMessages(w, r),
	}
	if session != nil {
		data.CSRFToken = s.csrf.GenerateToken(session.ID)
		unread, err := s.notifications.HasUnread(r.Context(), session.UserPubKey)
		if err != nil {
			LoggerFromContext(r.Context()).Warn("unread check failed", "error", err)
		}
		data.HasUnread = unread
	}
	return data
}

// htmlLoginHandler shows the login page (GET) or processes login (POST)
func (s *Server) htmlLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.htmlLoginSubmitHandler(w, r)
		return
	}

	if s.getSession(r) != nil {
		http.Redirect(w, r, "/html/notifications", http.StatusSeeOther)
		return
	}

	data := struct{ PageData }{s.pageData(w, r, nil, "login.title", "login")}
	data.CSRFToken = s.csrf.GenerateToken(s.anonSessionID(w, r))
	s.renderPage(w, pageLogin, data)
}

func (s *Server) htmlLoginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(anonCookieName)
	if err != nil {
		s.redirectWithError(w, r, "/html/login", config.I18n("msg.invalid_csrf"))
		return
	}
	anonID, ok := auth.VerifyValue(s.keys.Cookie, cookie.Value)
	if !ok {
		s.redirectWithError(w, r, "/html/login", config.I18n("msg.invalid_csrf"))
		return
	}
	if !s.requireCSRF(w, r, anonID, "/html/login") {
		return
	}

	pubkey, privkey, err := parseLoginKey(r.FormValue("key"))
	if err != nil {
		s.redirectWithError(w, r, "/html/login", config.I18n("msg.invalid_key"))
		return
	}

	if _, err := s.createSession(w, r, pubkey, privkey); err != nil {
		LoggerFromContext(r.Context()).Error("failed to create session", "error", err)
		util.RespondServiceUnavailable(w, "Could not start a session")
		return
	}
	// The anonymous ID is single-use
	s.deleteCookie(w, r, anonCookieName, "/html/login")

	LoggerFromContext(r.Context()).Info("user logged in", "read_only", privkey == "")
	s.redirectWithSuccess(w, r, "/html/notifications", config.I18n("msg.logged_in"))
}

// htmlLogoutHandler ends the session. App settings live on the session, so
// they reset with it.
func (s *Server) htmlLogoutHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, "/html/settings") {
		return
	}
	session := s.getSession(r)
	if session != nil && !s.requireCSRF(w, r, session.ID, "/html/settings") {
		return
	}
	s.destroySession(w, r, session)
	s.redirectWithSuccess(w, r, "/html/login", config.I18n("msg.logged_out"))
}
