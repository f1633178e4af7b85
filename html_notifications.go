package main

import (
	"net/http"

	"olas-server/internal/config"
	"olas-server/internal/notifications"
	"olas-server/internal/types"
	"olas-server/internal/util"
)

type tabLink struct {
	Value  string
	Title  string
	Active bool
}

type notificationsPage struct {
	PageData
	Tabs  []tabLink
	Items []notifications.Item
}

// htmlNotificationsHandler renders the notification feed. Tab switches made
// by enhanced links get just the feed fragment; only a full page load marks
// notifications as seen.
func (s *Server) htmlNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		util.RespondMethodNotAllowed(w, "Method not allowed")
		return
	}

	ctx := r.Context()
	logger := LoggerFromContext(ctx)
	session := s.getSession(r)
	tab := notifications.ParseTab(r.URL.Query().Get("tab"))

	var pubkey string
	var events []types.Event
	if session != nil {
		pubkey = session.UserPubKey
		var err error
		events, err = s.notifications.Load(ctx, pubkey)
		if err != nil {
			logger.Error("failed to load notifications", "error", err)
		}
		notificationLoads.Add(1)
		events = s.withoutMuted(r, session, events)
	}

	filtered := notifications.Filter(events, tab, pubkey)
	profiles := s.fetchProfiles(ctx, notifications.Authors(filtered))
	items := notifications.BuildItems(filtered, pubkey, profiles, s.now())

	if isHelmRequest(r) {
		s.renderTemplate(w, pageNotifications, "notifications-feed", notificationsPage{Items: items})
		return
	}

	if session != nil {
		if err := s.notifications.MarkSeen(ctx, pubkey, s.now().Unix()); err != nil {
			logger.Warn("failed to mark notifications seen", "error", err)
		}
	}

	page := notificationsPage{
		PageData: s.pageData(w, r, session, "notifications.title", "notifications"),
		Items:    items,
	}
	for _, t := range notifications.Tabs {
		page.Tabs = append(page.Tabs, tabLink{
			Value:  string(t),
			Title:  config.I18n("tab." + string(t)),
			Active: t == tab,
		})
	}
	s.renderPage(w, pageNotifications, page)
}

// withoutMuted drops events by authors on the user's mute list
func (s *Server) withoutMuted(r *http.Request, session *types.Session, events []types.Event) []types.Event {
	muted := s.muteList(r, session)
	if len(muted) == 0 {
		return events
	}
	set := make(map[string]bool, len(muted))
	for _, pk := range muted {
		set[pk] = true
	}
	return util.FilterSlice(events, func(evt types.Event) bool {
		return !set[evt.PubKey]
	})
}
