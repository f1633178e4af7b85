package main

import (
	"context"
	"encoding/json"
	"net/url"

	"olas-server/internal/nostr"
	"olas-server/internal/types"
	"olas-server/internal/util"
)

// fetchProfiles returns kind 0 profiles for pubkeys, from cache where
// possible. Pubkeys without a profile map to nil.
func (s *Server) fetchProfiles(ctx context.Context, pubkeys []string) map[string]*types.ProfileInfo {
	if len(pubkeys) == 0 {
		return map[string]*types.ProfileInfo{}
	}
	profiles, missing := s.profiles.GetMultiple(ctx, pubkeys)
	profileCacheHits.Add(int64(len(pubkeys) - len(missing)))
	if len(missing) == 0 {
		return profiles
	}
	profileCacheMisses.Add(int64(len(missing)))

	events, _ := s.relays.Fetch(ctx, s.cfg.Relays, types.Filter{
		Authors: missing,
		Kinds:   []int{nostr.KindProfile},
		Limit:   len(missing) * 2,
	})

	fetched := make(map[string]*types.ProfileInfo, len(missing))
	for _, pk := range missing {
		fetched[pk] = nil
	}
	// Newest first, so the first event per author wins
	for _, evt := range events {
		if p, done := fetched[evt.PubKey]; !done || p != nil {
			continue
		}
		if p := parseProfile(evt.Content); p != nil {
			fetched[evt.PubKey] = p
		}
	}
	s.profiles.SetMultiple(ctx, fetched)

	for pk, p := range fetched {
		profiles[pk] = p
	}
	return profiles
}

func parseProfile(raw string) *types.ProfileInfo {
	var p types.ProfileInfo
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	p.Name = util.TruncateStringRunes(p.Name, 64)
	p.DisplayName = util.TruncateStringRunes(p.DisplayName, 64)
	p.Picture = validAvatarURL(p.Picture)
	return &p
}

// validAvatarURL keeps only public http(s) picture URLs
func validAvatarURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return ""
	}
	if !util.IsPublicHost(u.Hostname()) {
		return ""
	}
	return u.String()
}
