package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Purposes for derived keys
const (
	PurposeCSRF   = "olas-server csrf v1"
	PurposeCookie = "olas-server cookie v1"
)

// Keys holds independent keys derived from one server secret
type Keys struct {
	CSRF   []byte
	Cookie []byte
}

// DeriveKeys expands secret into one 32 byte key per purpose. An empty
// secret gets a random one, so sessions do not survive a restart.
func DeriveKeys(secret string) (*Keys, error) {
	ikm := []byte(secret)
	if len(ikm) == 0 {
		ikm = make([]byte, 32)
		if _, err := rand.Read(ikm); err != nil {
			return nil, fmt.Errorf("generate server secret: %w", err)
		}
	}

	derive := func(purpose string) ([]byte, error) {
		key := make([]byte, 32)
		if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, []byte(purpose)), key); err != nil {
			return nil, fmt.Errorf("derive %s key: %w", purpose, err)
		}
		return key, nil
	}

	csrf, err := derive(PurposeCSRF)
	if err != nil {
		return nil, err
	}
	cookie, err := derive(PurposeCookie)
	if err != nil {
		return nil, err
	}
	return &Keys{CSRF: csrf, Cookie: cookie}, nil
}
