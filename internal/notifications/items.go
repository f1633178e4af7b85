package notifications

import (
	"time"

	"olas-server/internal/nips"
	"olas-server/internal/nostr"
	"olas-server/internal/types"
	"olas-server/internal/util"
)

// Item is a notification ready for rendering
type Item struct {
	Event         types.Event
	Label         string
	Icon          string
	AuthorNpub    string
	AuthorName    string
	AuthorPicture string
	TimeAgo       string
	ShowContent   bool
	TargetEventID string // event the notification points at, if any
}

// BuildItems decorates already filtered events. profiles may be nil or partial.
func BuildItems(events []types.Event, currentPubkey string, profiles map[string]*types.ProfileInfo, now time.Time) []Item {
	items := make([]Item, 0, len(events))
	for _, evt := range events {
		npub, err := nips.EncodePubkey(evt.PubKey)
		if err != nil {
			npub = evt.PubKey
		}

		item := Item{
			Event:      evt,
			Label:      Label(evt, currentPubkey),
			Icon:       Icon(evt.Kind),
			AuthorNpub: npub,
			AuthorName: util.TruncateStringRunes(npub, 16),
			TimeAgo:    util.TimeAgo(evt.CreatedAt, now),
			// Reposts carry the reposted event as content
			ShowContent:   !isRepost(evt.Kind) && evt.Content != "",
			TargetEventID: nostr.FirstTagValue(evt.Tags, "E", "e"),
		}
		if p := profiles[evt.PubKey]; p != nil {
			if name := p.BestName(); name != "" {
				item.AuthorName = name
			}
			item.AuthorPicture = p.Picture
		}
		items = append(items, item)
	}
	return items
}

func isRepost(kind int) bool {
	return kind == nostr.KindRepost || kind == nostr.KindGenericRepost
}

// Authors returns the distinct authors of events, in first-seen order
func Authors(events []types.Event) []string {
	seen := make(map[string]bool, len(events))
	var out []string
	for _, evt := range events {
		if !seen[evt.PubKey] {
			seen[evt.PubKey] = true
			out = append(out, evt.PubKey)
		}
	}
	return out
}
