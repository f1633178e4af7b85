package main

import (
	"encoding/base64"
	"html/template"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"olas-server/internal/config"
	"olas-server/internal/nips"
	"olas-server/internal/nostr"
	"olas-server/internal/outbox"
	"olas-server/internal/settings"
	"olas-server/internal/types"
	"olas-server/internal/util"
)

// muteList returns the user's muted pubkeys, fetching their public mute
// list from relays the first time and remembering it on the session
func (s *Server) muteList(r *http.Request, session *types.Session) []string {
	if session == nil {
		return nil
	}
	if session.MuteListLoaded {
		return session.MutedPubkeys
	}

	events, complete := s.relays.Fetch(r.Context(), s.cfg.Relays, types.Filter{
		Authors: []string{session.UserPubKey},
		Kinds:   []int{nostr.KindMuteList},
		Limit:   1,
	})
	if len(events) == 0 && !complete {
		// A relay timed out before answering; ask again next time
		return nil
	}
	if len(events) > 0 {
		session.MutedPubkeys = nostr.TagValues(events[0].Tags, "p")
	}
	session.MuteListLoaded = true
	s.saveSession(r, session)
	return session.MutedPubkeys
}

type settingsPage struct {
	PageData
	Entries []settings.Entry
}

func (s *Server) htmlSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := s.getSession(r)

	state := settings.State{
		BlossomServer: s.cfg.BlossomServer,
		Platform:      s.cfg.Platform,
		Build:         s.cfg.Build,
	}
	if session != nil {
		state.LoggedIn = true
		state.PubKey = npubOrHex(session.UserPubKey)
		state.AdvancedMode = session.Settings.AdvancedMode
		state.Wallet = session.Wallet

		if p := s.fetchProfiles(ctx, []string{session.UserPubKey})[session.UserPubKey]; p != nil {
			state.ProfileName = p.BestName()
			state.ProfilePicture = p.Picture
		}
		if state.AdvancedMode {
			n, err := s.outbox.Count(ctx, session.UserPubKey)
			if err != nil {
				LoggerFromContext(ctx).Warn("outbox count failed", "error", err)
			}
			state.UnpublishedCount = n
		}
		state.MuteCount = len(s.muteList(r, session))
		state.MuteKnown = session.MuteListLoaded
	}

	s.renderPage(w, pageSettings, settingsPage{
		PageData: s.pageData(w, r, session, "settings.title", "settings"),
		Entries:  settings.Build(state),
	})
}

func (s *Server) htmlAdvancedToggleHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, "/html/settings") {
		return
	}
	session := s.requireAuth(w, r)
	if session == nil || !s.requireCSRF(w, r, session.ID, "/html/settings") {
		return
	}

	session.Settings.AdvancedMode = !session.Settings.AdvancedMode
	if err := s.saveSession(r, session); err != nil {
		util.RespondServiceUnavailable(w, "Could not save settings")
		return
	}
	msg := "msg.advanced_off"
	if session.Settings.AdvancedMode {
		msg = "msg.advanced_on"
	}
	s.redirectWithSuccess(w, r, "/html/settings", config.I18n(msg))
}

type walletTypeOption struct {
	Value string
	Title string
}

type walletPage struct {
	PageData
	WalletTypes []walletTypeOption
}

// htmlWalletHandler shows (GET) or saves (POST) the wallet link form
func (s *Server) htmlWalletHandler(w http.ResponseWriter, r *http.Request) {
	session := s.requireAuth(w, r)
	if session == nil {
		return
	}

	if r.Method != http.MethodPost {
		page := walletPage{PageData: s.pageData(w, r, session, "settings.wallet_title", "settings")}
		for _, t := range []string{settings.WalletTypeNWC, settings.WalletTypeCashu, settings.WalletTypeWebLN} {
			page.WalletTypes = append(page.WalletTypes, walletTypeOption{Value: t, Title: settings.HumanWalletType(t)})
		}
		s.renderPage(w, pageWallet, page)
		return
	}

	if !s.requireCSRF(w, r, session.ID, "/html/settings/wallet") {
		return
	}
	wallet := &types.Wallet{
		Type: r.FormValue("type"),
		Name: util.TruncateStringRunes(strings.TrimSpace(r.FormValue("name")), 64),
	}
	switch wallet.Type {
	case settings.WalletTypeNWC, settings.WalletTypeWebLN:
	case settings.WalletTypeCashu:
		wallet.WalletID = uuid.NewString()
	default:
		s.redirectWithError(w, r, "/html/settings/wallet", config.I18n("wallet.type"))
		return
	}

	session.Wallet = wallet
	if err := s.saveSession(r, session); err != nil {
		util.RespondServiceUnavailable(w, "Could not save settings")
		return
	}
	s.redirectWithSuccess(w, r, "/html/settings", config.I18n("msg.wallet_linked"))
}

func (s *Server) htmlWalletUnlinkHandler(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, "/html/settings") {
		return
	}
	session := s.requireAuth(w, r)
	if session == nil || !s.requireCSRF(w, r, session.ID, "/html/settings") {
		return
	}

	session.Wallet = nil
	if err := s.saveSession(r, session); err != nil {
		util.RespondServiceUnavailable(w, "Could not save settings")
		return
	}
	s.redirectWithSuccess(w, r, "/html/settings", config.I18n("msg.wallet_unlinked"))
}

type keyPage struct {
	PageData
	Npub          string
	QRCodeDataURL template.URL
}

func (s *Server) htmlKeyHandler(w http.ResponseWriter, r *http.Request) {
	session := s.requireAuth(w, r)
	if session == nil {
		return
	}
	npub := npubOrHex(session.UserPubKey)
	s.renderPage(w, pageKey, keyPage{
		PageData:      s.pageData(w, r, session, "settings.key_title", "settings"),
		Npub:          npub,
		QRCodeDataURL: template.URL(generateQRCodeDataURL(r, "nostr:"+npub)),
	})
}

// generateQRCodeDataURL renders content as a PNG data URL, or "" on failure
func generateQRCodeDataURL(r *http.Request, content string) string {
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		LoggerFromContext(r.Context()).Error("failed to generate QR code", "error", err)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

type relaysPage struct {
	PageData
	Relays []string
}

func (s *Server) htmlRelaysHandler(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, pageRelays, relaysPage{
		PageData: s.pageData(w, r, s.getSession(r), "settings.relays_title", "settings"),
		Relays:   s.cfg.Relays,
	})
}

type mutedPage struct {
	PageData
	Muted []string
}

func (s *Server) htmlMutedHandler(w http.ResponseWriter, r *http.Request) {
	session := s.requireAuth(w, r)
	if session == nil {
		return
	}
	page := mutedPage{PageData: s.pageData(w, r, session, "settings.muted_title", "settings")}
	for _, pk := range s.muteList(r, session) {
		page.Muted = append(page.Muted, npubOrHex(pk))
	}
	s.renderPage(w, pageMuted, page)
}

type unpublishedPage struct {
	PageData
	Entries []outbox.Entry
}

func (s *Server) htmlUnpublishedHandler(w http.ResponseWriter, r *http.Request) {
	session := s.requireAuth(w, r)
	if session == nil {
		return
	}
	entries, err := s.outbox.List(r.Context(), session.UserPubKey)
	if err != nil {
		LoggerFromContext(r.Context()).Error("outbox list failed", "error", err)
		util.RespondInternalError(w, "Could not load unpublished events")
		return
	}
	s.renderPage(w, pageUnpublished, unpublishedPage{
		PageData: s.pageData(w, r, session, "settings.unpublished_title", "settings"),
		Entries:  entries,
	})
}

func (s *Server) htmlUnpublishedRetryHandler(w http.ResponseWriter, r *http.Request) {
	const returnURL = "/html/settings/unpublished"
	if !requirePost(w, r, returnURL) {
		return
	}
	session := s.requireAuth(w, r)
	if session == nil || !s.requireCSRF(w, r, session.ID, returnURL) {
		return
	}

	published, err := s.outbox.Retry(r.Context(), session.UserPubKey, s.relays, s.cfg.Relays)
	if err != nil {
		LoggerFromContext(r.Context()).Error("outbox retry failed", "error", err)
	}
	publishSuccessTotal.Add(int64(published))
	s.redirectWithSuccess(w, r, returnURL, config.I18n("msg.retried"))
}

func (s *Server) htmlUnpublishedRemoveHandler(w http.ResponseWriter, r *http.Request) {
	const returnURL = "/html/settings/unpublished"
	if !requirePost(w, r, returnURL) {
		return
	}
	session := s.requireAuth(w, r)
	if session == nil || !s.requireCSRF(w, r, session.ID, returnURL) {
		return
	}

	if err := s.outbox.Remove(r.Context(), session.UserPubKey, r.FormValue("event_id")); err != nil {
		LoggerFromContext(r.Context()).Error("outbox remove failed", "error", err)
	}
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func npubOrHex(pubkey string) string {
	if npub, err := nips.EncodePubkey(pubkey); err == nil {
		return npub
	}
	return pubkey
}
