// Package settings builds the settings menu shown to a user.
package settings

import (
	"fmt"
	"strconv"

	"olas-server/internal/types"
)

// Entry is one row of the settings list. Section entries are headers and
// carry only a Title (possibly blank).
type Entry struct {
	Key       string
	Section   bool
	Title     string
	Subtitle  string
	RightText string
	Icon      string
	Href      string // GET link, if the row navigates
	Action    string // POST endpoint, if the row performs an action
	Unlink    string // POST endpoint for an inline unlink button
	Picture   string
}

// State is everything the menu depends on
type State struct {
	LoggedIn         bool
	PubKey           string
	ProfileName      string
	ProfilePicture   string
	AdvancedMode     bool
	UnpublishedCount int
	Wallet           *types.Wallet
	BlossomServer    string
	MuteCount        int
	MuteKnown        bool
	Platform         string
	Build            string
}

type builder struct {
	entries  []Entry
	sections int
}

func (b *builder) section(title string) {
	b.sections++
	b.entries = append(b.entries, Entry{
		Key:     fmt.Sprintf("section-%d", b.sections),
		Section: true,
		Title:   title,
	})
}

func (b *builder) add(e Entry) {
	b.entries = append(b.entries, e)
}

// Build returns the menu entries for the given state, in display order
func Build(s State) []Entry {
	b := &builder{}

	if s.LoggedIn {
		name := s.ProfileName
		if name == "" {
			name = s.PubKey
		}
		b.add(Entry{Key: "profile", Title: name, Picture: s.ProfilePicture, Href: "/html/settings/key"})

		if s.AdvancedMode && s.UnpublishedCount > 0 {
			b.section("")
			b.add(Entry{
				Key:       "unpublished-events",
				Title:     "Unpublished Events",
				Icon:      "⚠️",
				RightText: strconv.Itoa(s.UnpublishedCount),
				Href:      "/html/settings/unpublished",
			})
		}

		b.section("Wallet & zaps")
		if s.Wallet != nil {
			b.add(Entry{
				Key:      "wallet-balance",
				Title:    WalletName(s.Wallet),
				Subtitle: HumanWalletType(s.Wallet.Type),
				Icon:     "⚡",
				Unlink:   "/html/settings/wallet/unlink",
			})
			b.add(Entry{Key: "zaps", Title: "Zaps", Icon: "⚡"})
		} else {
			b.add(Entry{Key: "wallet", Title: "Wallet", Icon: "⚡", Href: "/html/settings/wallet"})
		}

		b.section("")
		b.add(Entry{Key: "blossom", Title: "Media Servers", Subtitle: s.BlossomServer, Icon: "🌸"})
	}

	b.section("")
	b.add(Entry{Key: "relays", Title: "Relays", Icon: "📡", Href: "/html/settings/relays"})
	b.add(Entry{Key: "key", Title: "Key", Icon: "🔑", Href: "/html/settings/key"})

	b.section("")
	muted := "0"
	if s.MuteKnown {
		muted = strconv.Itoa(s.MuteCount)
	}
	b.add(Entry{Key: "muted", Title: "Muted Users", Icon: "🔇", RightText: muted, Href: "/html/settings/muted"})
	b.add(Entry{Key: "logout", Title: "Logout", Icon: "🚪", Action: "/html/logout"})

	b.section("")
	b.add(Entry{Key: "advanced", Title: "Advanced", Subtitle: "Settings for advanced users", Action: "/html/settings/advanced"})
	if s.AdvancedMode {
		b.add(Entry{Key: "dev", Title: "Development", Icon: "🛠"})
	}

	b.section(fmt.Sprintf("Version %s (%s)", s.Platform, s.Build))
	return b.entries
}

// WalletName is the title shown for a linked wallet. Cashu wallets are
// named by the user; anything else is named by its type.
func WalletName(w *types.Wallet) string {
	if w.Type == WalletTypeCashu {
		if w.Name != "" {
			return w.Name
		}
		return w.WalletID
	}
	return w.Type
}

const (
	WalletTypeNWC   = "nwc"
	WalletTypeCashu = "nip-60"
	WalletTypeWebLN = "webln"
)

// HumanWalletType describes a wallet type for display
func HumanWalletType(walletType string) string {
	switch walletType {
	case WalletTypeNWC:
		return "Nostr Wallet Connect"
	case WalletTypeCashu:
		return "Cashu wallet (NIP-60)"
	case WalletTypeWebLN:
		return "WebLN"
	default:
		return walletType
	}
}
