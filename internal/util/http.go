package util

import "net/http"

// SetHTMLHeaders marks the response as HTML. maxAge is a Cache-Control
// max-age in seconds; empty means personal and uncacheable.
func SetHTMLHeaders(w http.ResponseWriter, maxAge string) {
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	if maxAge == "" {
		h.Set("Cache-Control", "private, no-store")
	} else {
		h.Set("Cache-Control", "max-age="+maxAge)
	}
}

func WriteHTML(w http.ResponseWriter, html string) error {
	_, err := w.Write([]byte(html))
	return err
}

// respondError writes a plain text error that is never cached
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Cache-Control", "no-store")
	http.Error(w, message, status)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	respondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	respondError(w, http.StatusNotFound, message)
}

func RespondMethodNotAllowed(w http.ResponseWriter, message string) {
	respondError(w, http.StatusMethodNotAllowed, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	respondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter, message string) {
	respondError(w, http.StatusInternalServerError, message)
}

// RespondServiceUnavailable is for failures of the cache or outbox stores
func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	respondError(w, http.StatusServiceUnavailable, message)
}
