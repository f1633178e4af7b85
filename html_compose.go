package main

import (
	"errors"
	"net/http"
	"net/url"

	"olas-server/internal/compose"
	"olas-server/internal/config"
	"olas-server/internal/util"
)

type composePage struct {
	PageData
	PostTypes []compose.PostType
}

// htmlComposeHandler shows the post type selector
func (s *Server) htmlComposeHandler(w http.ResponseWriter, r *http.Request) {
	session := s.requireSigner(w, r, "/html/settings")
	if session == nil {
		return
	}
	s.renderPage(w, pageCompose, composePage{
		PageData:  s.pageData(w, r, session, "compose.title", "compose"),
		PostTypes: compose.PostTypes,
	})
}

type newPostPage struct {
	PageData
	PostType compose.PostType
}

func (s *Server) htmlNewPostHandler(w http.ResponseWriter, r *http.Request) {
	session := s.requireSigner(w, r, "/html/settings")
	if session == nil {
		return
	}
	pt, ok := compose.Lookup(r.URL.Query().Get("type"))
	if !ok {
		http.Redirect(w, r, "/html/compose", http.StatusSeeOther)
		return
	}
	page := newPostPage{
		PageData: s.pageData(w, r, session, "compose.title", "compose"),
		PostType: pt,
	}
	page.Title = pt.Label
	s.renderPage(w, pageNewPost, page)
}

// htmlPostHandler publishes a picture or short video post
func (s *Server) htmlPostHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, "/html/compose") {
		return
	}
	typeID := r.FormValue("type")
	formURL := "/html/compose/new?type=" + url.QueryEscape(typeID)

	session := s.requireSigner(w, r, formURL)
	if session == nil || !s.requireCSRF(w, r, session.ID, formURL) {
		return
	}

	unsigned, err := compose.Build(compose.Draft{
		TypeID:   typeID,
		MediaURL: r.FormValue("media_url"),
		MimeType: r.FormValue("mime_type"),
		Alt:      r.FormValue("alt"),
		Caption:  r.FormValue("caption"),
	}, s.now())
	if err != nil {
		if errors.Is(err, compose.ErrUnknownType) {
			formURL = "/html/compose"
		}
		s.redirectWithError(w, r, formURL, err.Error())
		return
	}

	evt, published, err := s.publish(r.Context(), session, unsigned)
	if err != nil {
		LoggerFromContext(r.Context()).Error("failed to publish post", "error", err)
		util.RespondInternalError(w, "Could not publish")
		return
	}
	msg := "msg.published"
	if !published {
		msg = "msg.publish_queued"
	}
	s.redirectWithSuccess(w, r, "/html/event/"+evt.ID, config.I18n(msg))
}
