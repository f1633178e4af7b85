package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SignValue appends an HMAC so a cookie value cannot be forged
func SignValue(key []byte, value string) string {
	return value + "." + mac(key, value)
}

// VerifyValue returns the original value if its signature checks out
func VerifyValue(key []byte, signed string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i <= 0 {
		return "", false
	}
	value, sig := signed[:i], signed[i+1:]
	if !hmac.Equal([]byte(sig), []byte(mac(key, value))) {
		return "", false
	}
	return value, true
}

func mac(key []byte, value string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
