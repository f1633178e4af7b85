package nostr

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"olas-server/internal/types"
)

var (
	ErrMalformedEvent = errors.New("malformed event")
	ErrBadSignature   = errors.New("event id or signature does not verify")
)

// canonical is the NIP-01 array hashed into an event ID. HTML characters stay
// unescaped and nil tags serialize as [].
func canonical(evt *types.Event) ([]byte, error) {
	tags := evt.Tags
	if tags == nil {
		tags = [][]string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]any{0, evt.PubKey, evt.CreatedAt, evt.Kind, tags, evt.Content}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ComputeEventID returns the hex sha256 of the canonical serialization, or ""
// if the event cannot be serialized
func ComputeEventID(evt *types.Event) string {
	data, err := canonical(evt)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func decodeHex(s string, size int) ([]byte, bool) {
	if len(s) != size*2 {
		return nil, false
	}
	b, err := hex.DecodeString(s)
	return b, err == nil
}

// ValidateEventSignature checks that the ID matches the content and that the
// Schnorr signature over it belongs to the pubkey
func ValidateEventSignature(evt *types.Event) bool {
	sigBytes, ok := decodeHex(evt.Sig, schnorr.SignatureSize)
	if !ok {
		return false
	}
	pubBytes, ok := decodeHex(evt.PubKey, schnorr.PubKeyBytesLen)
	if !ok {
		return false
	}
	idBytes, ok := decodeHex(evt.ID, sha256.Size)
	if !ok || ComputeEventID(evt) != evt.ID {
		return false
	}

	sig, err := schnorr.ParseSignature(sigBytes)
	if err != nil {
		return false
	}
	pub, err := schnorr.ParsePubKey(pubBytes)
	if err != nil {
		return false
	}
	return sig.Verify(idBytes, pub)
}

// DecodeEvent parses an event received from a relay and rejects it unless
// its ID and signature verify
func DecodeEvent(raw []byte) (types.Event, error) {
	var evt types.Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return types.Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if !ValidateEventSignature(&evt) {
		return types.Event{}, fmt.Errorf("%w: %s", ErrBadSignature, ShortID(evt.ID))
	}
	return evt, nil
}

// ShortID truncates an ID or pubkey to 12 chars for logs and labels
func ShortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
