package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"olas-server/internal/util"
)

const (
	flashSuccessCookie = "flash_success"
	flashErrorCookie   = "flash_error"
)

// FlashMessages holds success and error messages read from cookies
type FlashMessages struct {
	Success string
	Error   string
}

func (s *Server) setFlash(w http.ResponseWriter, r *http.Request, name, message string) {
	// One minute is plenty for the redirect that follows
	s.setCookie(w, r, name, url.QueryEscape(message), "/", 60, http.SameSiteLaxMode)
}

// getFlashMessages reads and clears flash message cookies.
// Call this once per request, early in the handler.
func (s *Server) getFlashMessages(w http.ResponseWriter, r *http.Request) FlashMessages {
	var messages FlashMessages
	read := func(name string, into *string) {
		cookie, err := r.Cookie(name)
		if err != nil {
			return
		}
		if decoded, err := url.QueryUnescape(cookie.Value); err == nil {
			*into = decoded
		}
		s.deleteCookie(w, r, name, "/")
	}
	read(flashSuccessCookie, &messages.Success)
	read(flashErrorCookie, &messages.Error)
	return messages
}

// redirectWithSuccess redirects to a URL and sets a success flash message
func (s *Server) redirectWithSuccess(w http.ResponseWriter, r *http.Request, url string, message string) {
	s.setFlash(w, r, flashSuccessCookie, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// redirectWithError redirects to a URL and sets an error flash message
func (s *Server) redirectWithError(w http.ResponseWriter, r *http.Request, url string, message string) {
	s.setFlash(w, r, flashErrorCookie, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// isHelmRequest reports whether the request came from an enhanced link or
// form that swaps a fragment instead of loading a page
func isHelmRequest(r *http.Request) bool {
	return r.Header.Get("H-Request") == "true"
}

// respondWithError returns an out-of-band flash for fragment requests and
// redirects with a flash cookie otherwise
func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, returnURL string, message string) {
	if !isHelmRequest(r) {
		s.redirectWithError(w, r, returnURL, message)
		return
	}
	var buf strings.Builder
	data := struct{ Message, Type string }{message, "error"}
	if err := s.templates[pageBase].ExecuteTemplate(&buf, "oob-flash", data); err != nil {
		slog.Error("failed to render OOB flash", "error", err)
	}
	util.SetHTMLHeaders(w, "")
	util.WriteHTML(w, buf.String())
}
