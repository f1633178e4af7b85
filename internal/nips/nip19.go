// Package nips converts keys between hex and their NIP-19 npub/nsec forms.
package nips

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nbd-wtf/go-nostr/nip19"
)

var (
	ErrPrefix    = errors.New("nip19: unexpected prefix")
	ErrKeyLength = errors.New("nip19: key must be 32 bytes of hex")
)

const (
	prefixPubkey  = "npub"
	prefixPrivkey = "nsec"
)

func checkHexKey(key string) error {
	raw, err := hex.DecodeString(key)
	if err != nil || len(raw) != 32 {
		return ErrKeyLength
	}
	return nil
}

// EncodePubkey encodes a hex pubkey as npub
func EncodePubkey(hexPubkey string) (string, error) {
	if err := checkHexKey(hexPubkey); err != nil {
		return "", err
	}
	return nip19.EncodePublicKey(hexPubkey)
}

// EncodePrivkey encodes a hex private key as nsec
func EncodePrivkey(hexPrivkey string) (string, error) {
	if err := checkHexKey(hexPrivkey); err != nil {
		return "", err
	}
	return nip19.EncodePrivateKey(hexPrivkey)
}

// DecodePubkey returns the hex pubkey inside an npub
func DecodePubkey(npub string) (string, error) {
	return decodeKey(prefixPubkey, npub)
}

// DecodePrivkey returns the hex private key inside an nsec
func DecodePrivkey(nsec string) (string, error) {
	return decodeKey(prefixPrivkey, nsec)
}

func decodeKey(want, bech string) (string, error) {
	prefix, value, err := nip19.Decode(bech)
	if err != nil {
		return "", fmt.Errorf("nip19 decode: %w", err)
	}
	if prefix != want {
		return "", fmt.Errorf("%w: want %s, got %s", ErrPrefix, want, prefix)
	}
	key, ok := value.(string)
	if !ok {
		return "", ErrKeyLength
	}
	if err := checkHexKey(key); err != nil {
		return "", err
	}
	return key, nil
}
