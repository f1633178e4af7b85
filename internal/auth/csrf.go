// Package auth holds the server-side secrets that protect browser sessions.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// CSRFTokenMaxAge is how long a form stays submittable
const CSRFTokenMaxAge = 30 * time.Minute

// CSRFManager issues form tokens bound to a session ID. A token is
// "<unix seconds>.<mac>" where mac covers the session ID and the timestamp.
type CSRFManager struct {
	secret []byte
	now    func() time.Time
}

func NewCSRFManager(secret []byte) *CSRFManager {
	return &CSRFManager{secret: secret, now: time.Now}
}

func (m *CSRFManager) GenerateToken(sessionID string) string {
	ts := strconv.FormatInt(m.now().Unix(), 10)
	return ts + "." + m.mac(sessionID, ts)
}

// ValidateToken rejects tokens for another session, expired tokens and tokens
// dated in the future
func (m *CSRFManager) ValidateToken(sessionID, token string) bool {
	ts, mac, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	age := m.now().Sub(time.Unix(issued, 0))
	if age < 0 || age > CSRFTokenMaxAge {
		return false
	}
	return hmac.Equal([]byte(mac), []byte(m.mac(sessionID, ts)))
}

func (m *CSRFManager) mac(sessionID, ts string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte("csrf\x00" + sessionID + "\x00" + ts))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
