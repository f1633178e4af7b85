package main

import (
	"net/http"
	"strings"
)

// shouldSecureCookie reports whether cookies for r need the Secure flag
func (s *Server) shouldSecureCookie(r *http.Request) bool {
	if s.cfg.SecureCookies || r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setCookie sets an HTTP-only cookie with standard security defaults.
// maxAge -1 deletes the cookie.
func (s *Server) setCookie(w http.ResponseWriter, r *http.Request, name, value, path string, maxAge int, sameSite http.SameSite) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.shouldSecureCookie(r),
		SameSite: sameSite,
	})
}

func (s *Server) deleteCookie(w http.ResponseWriter, r *http.Request, name, path string) {
	s.setCookie(w, r, name, "", path, -1, http.SameSiteLaxMode)
}
