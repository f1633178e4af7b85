package main

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"olas-server/internal/config"
	"olas-server/internal/content"
	"olas-server/internal/nostr"
	"olas-server/internal/util"
	"olas-server/templates"
)

// Page template names
const (
	pageBase          = "base"
	pageNotifications = "notifications"
	pageSettings      = "settings"
	pageKey           = "key"
	pageRelays        = "relays"
	pageMuted         = "muted"
	pageWallet        = "wallet"
	pageUnpublished   = "unpublished"
	pageCompose       = "compose"
	pageNewPost       = "new-post"
	pageEvent         = "event"
	pageLogin         = "login"
)

var kindNames = map[int]string{
	nostr.KindText:       "note",
	nostr.KindReaction:   "reaction",
	nostr.KindPicture:    "picture",
	nostr.KindShortVideo: "short video",
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"i18n":          config.I18n,
		"renderContent": content.Render,
		"shortID":       nostr.ShortID,
		"isoTime": func(ts int64) string {
			return time.Unix(ts, 0).UTC().Format(time.RFC3339)
		},
		"kindLabel": func(kind int) string {
			if name, ok := kindNames[kind]; ok {
				return name
			}
			return "kind " + strconv.Itoa(kind)
		},
	}
}

func compileTemplates() map[string]*template.Template {
	funcs := templateFuncs()
	base := templates.GetBaseTemplates()
	pages := map[string]string{
		pageBase:          `{{define "content"}}{{end}}`,
		pageNotifications: templates.GetNotificationsTemplate(),
		pageSettings:      templates.GetSettingsTemplate(),
		pageKey:           templates.GetKeyTemplate(),
		pageRelays:        templates.GetRelaysTemplate(),
		pageMuted:         templates.GetMutedTemplate(),
		pageWallet:        templates.GetWalletTemplate(),
		pageUnpublished:   templates.GetUnpublishedTemplate(),
		pageCompose:       templates.GetComposeTemplate(),
		pageNewPost:       templates.GetNewPostTemplate(),
		pageEvent:         templates.GetEventTemplate(),
		pageLogin:         templates.GetLoginTemplate(),
	}
	compiled := make(map[string]*template.Template, len(pages))
	for name, page := range pages {
		compiled[name] = template.Must(util.ParseTemplate(name, funcs, base, page))
	}
	return compiled
}

// PageData is embedded by every page's template data
type PageData struct {
	Title     string
	Nav       string
	LoggedIn  bool
	CanSign   bool
	HasUnread bool
	CSRFToken string
	Flash     FlashMessages
}

// renderTemplate executes one named template of a page into w. The output is
// buffered so a template error never leaves a half written page.
func (s *Server) renderTemplate(w http.ResponseWriter, page, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates[page].ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template error", "page", page, "template", name, "error", err)
		util.RespondInternalError(w, "Internal server error")
		return
	}
	util.SetHTMLHeaders(w, "")
	w.Write(buf.Bytes())
}

func (s *Server) renderPage(w http.ResponseWriter, page string, data any) {
	s.renderTemplate(w, page, pageBase, data)
}
