// Package types provides shared type definitions used across internal packages.
package types

// Event is a signed NIP-01 event as relays deliver it
type Event struct {
	ID        string     `json:"id"`
	PubKey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int        `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Sig       string     `json:"sig"`
}

// UnsignedEvent is what builders produce; the signer adds pubkey, ID and sig
type UnsignedEvent struct {
	Kind      int
	Content   string
	Tags      [][]string
	CreatedAt int64
}

// Filter selects events in a REQ. Zero-valued fields do not constrain.
type Filter struct {
	IDs     []string
	Authors []string
	Kinds   []int
	PTags   []string // #p
	ETags   []string // #e
	Since   *int64
	Until   *int64
	Limit   int
}
