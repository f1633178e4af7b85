// Package notifications classifies, labels and filters the events that make up a
// user's notification feed.
package notifications

import (
	"sort"
	"strconv"

	"olas-server/internal/nostr"
	"olas-server/internal/types"
)

type labeler func(evt types.Event, currentPubkey string) string

func fixed(label string) labeler {
	return func(types.Event, string) string { return label }
}

// commentLabel distinguishes replies to the user's post from replies to the
// user's comment. Only kind 1111 carries the root ("P") and parent ("p") author.
func commentLabel(evt types.Event, currentPubkey string) string {
	if evt.Kind != nostr.KindGenericReply {
		return "replied to your post"
	}
	if currentPubkey != "" {
		if nostr.TagValue(evt.Tags, "P") == currentPubkey {
			return "commented on your post"
		}
		if nostr.TagValue(evt.Tags, "p") == currentPubkey {
			return "replied to your comment"
		}
	}
	return "replied"
}

// kindLabels is the single source of truth for which kinds are notifications
// and how each is described.
var kindLabels = map[int]labeler{
	nostr.KindRepost:        fixed("reposted you"),
	nostr.KindGenericRepost: fixed("reposted you"),
	nostr.KindReaction:      fixed("reacted to your post"),
	nostr.KindText:          commentLabel,
	nostr.KindGenericReply:  commentLabel,
	nostr.KindNutzap:        fixed("zapped you"),
	nostr.KindZap:           fixed("zapped you"),
	nostr.KindBookmarkSet:   fixed("bookmarked your post"),
	nostr.KindFollow:        fixed("followed you"),
}

var kindIcons = map[int]string{
	nostr.KindRepost:        "🔁",
	nostr.KindGenericRepost: "🔁",
	nostr.KindReaction:      "❤️",
	nostr.KindText:          "💬",
	nostr.KindGenericReply:  "💬",
	nostr.KindNutzap:        "⚡",
	nostr.KindZap:           "⚡",
	nostr.KindBookmarkSet:   "🔖",
	nostr.KindFollow:        "👤",
}

// Label describes what the event's author did, from the point of view of the
// current user. Unknown kinds are labeled with their kind number.
func Label(evt types.Event, currentPubkey string) string {
	if fn, ok := kindLabels[evt.Kind]; ok {
		return fn(evt, currentPubkey)
	}
	return strconv.Itoa(evt.Kind)
}

// Icon returns the glyph shown next to a notification
func Icon(kind int) string {
	if icon, ok := kindIcons[kind]; ok {
		return icon
	}
	return "🔔"
}

// Kinds returns every kind that has a label, ascending; used to build relay filters
func Kinds() []int {
	kinds := make([]int, 0, len(kindLabels))
	for k := range kindLabels {
		kinds = append(kinds, k)
	}
	sort.Ints(kinds)
	return kinds
}
