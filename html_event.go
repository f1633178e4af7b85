package main

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"olas-server/internal/compose"
	"olas-server/internal/config"
	"olas-server/internal/reactions"
	"olas-server/internal/types"
	"olas-server/internal/util"
)

// validEventID matches a 64-character lowercase hex string (nostr event ID)
var validEventID = regexp.MustCompile(`^[a-f0-9]{64}$`)

type eventPage struct {
	PageData
	Event         types.Event
	AuthorName    string
	AuthorNpub    string
	AuthorPicture string
	TimeAgo       string
	Media         []compose.Media
	Button        reactions.Button
}

// fetchEvent returns one event by ID, or nil when no relay has it
func (s *Server) fetchEvent(ctx context.Context, id string) *types.Event {
	events, _ := s.relays.Fetch(ctx, s.cfg.Relays, types.Filter{IDs: []string{id}, Limit: 1})
	for _, evt := range events {
		if evt.ID == id {
			return &evt
		}
	}
	return nil
}

func (s *Server) fetchReactions(ctx context.Context, id string) []types.Event {
	events, _ := s.relays.Fetch(ctx, s.cfg.Relays, reactions.Filter(id))
	return reactions.ForEvent(events, id)
}

func (s *Server) htmlEventHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/html/event/")
	if !validEventID.MatchString(id) {
		util.RespondNotFound(w, config.I18n("msg.event_not_found"))
		return
	}

	ctx := r.Context()
	evt := s.fetchEvent(ctx, id)
	if evt == nil {
		util.RespondNotFound(w, config.I18n("msg.event_not_found"))
		return
	}

	// Reactions and the author profile are independent lookups
	var all []types.Event
	var profiles map[string]*types.ProfileInfo
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		all = s.fetchReactions(gctx, id)
		return nil
	})
	g.Go(func() error {
		profiles = s.fetchProfiles(gctx, []string{evt.PubKey})
		return nil
	})
	g.Wait()

	session := s.getSession(r)
	var pubkey string
	if session != nil {
		pubkey = session.UserPubKey
	}

	page := eventPage{
		PageData:   s.pageData(w, r, session, "event.title", ""),
		Event:      *evt,
		AuthorNpub: npubOrHex(evt.PubKey),
		TimeAgo:    util.TimeAgo(evt.CreatedAt, s.now()),
		Media:      compose.ParseMedia(evt.Tags),
		Button:     reactions.NewButton(all, nil, pubkey, true),
	}
	page.AuthorName = util.TruncateStringRunes(page.AuthorNpub, 16)
	if p := profiles[evt.PubKey]; p != nil {
		if name := p.BestName(); name != "" {
			page.AuthorName = name
		}
		page.AuthorPicture = p.Picture
	}
	s.renderPage(w, pageEvent, page)
}

// htmlReactHandler likes an event. Enhanced forms get the refreshed button
// back; plain forms are redirected to the event.
func (s *Server) htmlReactHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, "/html/notifications") {
		return
	}
	id := strings.TrimSpace(r.FormValue("event_id"))
	if !validEventID.MatchString(id) {
		util.RespondBadRequest(w, "Invalid event ID")
		return
	}
	returnURL := "/html/event/" + id

	session := s.requireSigner(w, r, returnURL)
	if session == nil || !s.requireCSRF(w, r, session.ID, returnURL) {
		return
	}
	if !s.limiter(session.ID).Allow() {
		if isHelmRequest(r) {
			util.RespondTooManyRequests(w, config.I18n("msg.rate_limited"))
			return
		}
		s.redirectWithError(w, r, returnURL, config.I18n("msg.rate_limited"))
		return
	}

	ctx := r.Context()
	target := s.fetchEvent(ctx, id)
	if target == nil {
		s.respondWithError(w, r, returnURL, config.I18n("msg.event_not_found"))
		return
	}

	reaction, published, err := s.publish(ctx, session, reactions.Build(*target, s.now()))
	if err != nil {
		LoggerFromContext(ctx).Error("failed to publish reaction", "error", err)
		s.respondWithError(w, r, returnURL, err.Error())
		return
	}

	if !isHelmRequest(r) {
		if !published {
			s.redirectWithSuccess(w, r, returnURL, config.I18n("msg.publish_queued"))
			return
		}
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
		return
	}

	all := s.fetchReactions(ctx, id)
	if !containsEvent(all, reaction.ID) {
		all = append(all, *reaction)
	}
	s.renderTemplate(w, pageEvent, "react-button", eventPage{
		PageData: PageData{CanSign: true, CSRFToken: s.csrf.GenerateToken(session.ID)},
		Event:    *target,
		Button:   reactions.NewButton(all, nil, session.UserPubKey, true),
	})
}

func containsEvent(events []types.Event, id string) bool {
	for _, evt := range events {
		if evt.ID == id {
			return true
		}
	}
	return false
}
