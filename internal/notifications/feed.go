package notifications

import (
	"strings"

	"olas-server/internal/nostr"
	"olas-server/internal/relay"
	"olas-server/internal/types"
)

// Tab is the category selected on the notifications page
type Tab = types.NotificationTab

const (
	TabAll       = types.NotificationTabAll
	TabReplies   = types.NotificationTabReplies
	TabReactions = types.NotificationTabReactions
)

// Tabs in display order
var Tabs = []Tab{TabAll, TabReplies, TabReactions}

// ParseTab maps a query value to a Tab; anything unrecognized selects all
func ParseTab(s string) Tab {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabReplies:
		return TabReplies
	case TabReactions:
		return TabReactions
	default:
		return TabAll
	}
}

var tabPredicates = map[Tab]func(types.Event) bool{
	TabAll: func(types.Event) bool { return true },
	TabReplies: func(evt types.Event) bool {
		return evt.Kind == nostr.KindText || evt.Kind == nostr.KindGenericReply
	},
	TabReactions: func(evt types.Event) bool {
		return evt.Kind == nostr.KindReaction
	},
}

// Filter returns the events to show for a tab: never the current user's own
// events, newest first, equal timestamps ordered by event ID descending.
// The input slice is left untouched.
func Filter(events []types.Event, tab Tab, currentPubkey string) []types.Event {
	keep, ok := tabPredicates[tab]
	if !ok {
		keep = tabPredicates[TabAll]
	}

	out := make([]types.Event, 0, len(events))
	for _, evt := range events {
		if currentPubkey != "" && evt.PubKey == currentPubkey {
			continue
		}
		if keep(evt) {
			out = append(out, evt)
		}
	}

	relay.SortEvents(out)
	return out
}
