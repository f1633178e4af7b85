package nostr

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"olas-server/internal/types"
)

var ErrInvalidKey = errors.New("invalid private key")

// Signer produces signed events for a single identity
type Signer interface {
	PubKey() string
	Sign(evt types.UnsignedEvent) (*types.Event, error)
}

// KeySigner signs with a locally held secp256k1 key
type KeySigner struct {
	priv   *btcec.PrivateKey
	pubHex string
}

// NewKeySigner parses a hex private key
func NewKeySigner(privHex string) (*KeySigner, error) {
	raw, err := hex.DecodeString(privHex)
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidKey
	}
	priv, pub := btcec.PrivKeyFromBytes(raw)
	return &KeySigner{
		priv:   priv,
		pubHex: hex.EncodeToString(schnorr.SerializePubKey(pub)),
	}, nil
}

// PubKeyFromPrivKey derives the x-only hex pubkey for a hex private key
func PubKeyFromPrivKey(privHex string) (string, error) {
	s, err := NewKeySigner(privHex)
	if err != nil {
		return "", err
	}
	return s.pubHex, nil
}

func (s *KeySigner) PubKey() string {
	return s.pubHex
}

// Sign fills in pubkey, ID and signature
func (s *KeySigner) Sign(unsigned types.UnsignedEvent) (*types.Event, error) {
	tags := unsigned.Tags
	if tags == nil {
		tags = [][]string{}
	}
	evt := &types.Event{
		PubKey:    s.pubHex,
		CreatedAt: unsigned.CreatedAt,
		Kind:      unsigned.Kind,
		Tags:      tags,
		Content:   unsigned.Content,
	}
	evt.ID = ComputeEventID(evt)

	idBytes, err := hex.DecodeString(evt.ID)
	if err != nil {
		return nil, fmt.Errorf("decode event id: %w", err)
	}
	sig, err := schnorr.Sign(s.priv, idBytes)
	if err != nil {
		return nil, fmt.Errorf("sign event: %w", err)
	}
	evt.Sig = hex.EncodeToString(sig.Serialize())
	return evt, nil
}
