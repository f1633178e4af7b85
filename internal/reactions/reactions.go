// Package reactions builds like reactions and the state of the react button.
package reactions

import (
	"strconv"
	"time"

	"olas-server/internal/nostr"
	"olas-server/internal/types"
)

// Like is the content of a positive reaction
const Like = "+"

// Build returns the reaction to target: a "+" that references the event,
// its author and its kind.
func Build(target types.Event, now time.Time) types.UnsignedEvent {
	return types.UnsignedEvent{
		Kind:    nostr.KindReaction,
		Content: Like,
		Tags: [][]string{
			{"e", target.ID},
			{"p", target.PubKey},
			{"k", strconv.Itoa(target.Kind)},
		},
		CreatedAt: now.Unix(),
	}
}

// Filter selects the reactions to the given events
func Filter(eventIDs ...string) types.Filter {
	return types.Filter{
		Kinds: []int{nostr.KindReaction},
		ETags: eventIDs,
	}
}

// Button is the rendered state of a react button
type Button struct {
	Reacted   bool
	Count     int
	ShowCount bool
}

// NewButton derives the button state. all is every known reaction to the
// event, nil when reactions were not loaded. reactedByUser, when nil, is
// worked out from all.
func NewButton(all []types.Event, reactedByUser []types.Event, currentPubkey string, showCount bool) Button {
	if reactedByUser == nil && all != nil {
		reactedByUser = ByAuthor(all, currentPubkey)
	}
	return Button{
		Reacted:   len(reactedByUser) > 0,
		Count:     len(all),
		ShowCount: showCount && len(all) > 0,
	}
}

// ByAuthor returns the reactions made by pubkey; none when pubkey is empty
func ByAuthor(reactions []types.Event, pubkey string) []types.Event {
	out := []types.Event{}
	if pubkey == "" {
		return out
	}
	for _, r := range reactions {
		if r.PubKey == pubkey {
			out = append(out, r)
		}
	}
	return out
}

// ForEvent keeps only reactions whose target, the last "e" tag, is eventID.
// Earlier "e" tags reference the thread the target belongs to.
func ForEvent(reactions []types.Event, eventID string) []types.Event {
	out := []types.Event{}
	for _, r := range reactions {
		if r.Kind == nostr.KindReaction && nostr.LastTagValue(r.Tags, "e") == eventID {
			out = append(out, r)
		}
	}
	return out
}
