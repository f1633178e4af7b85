package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFToken(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m := NewCSRFManager([]byte("secret"))
	m.now = func() time.Time { return now }

	token := m.GenerateToken("session-1")
	assert.True(t, m.ValidateToken("session-1", token))
	assert.False(t, m.ValidateToken("session-2", token))
	assert.False(t, m.ValidateToken("session-1", "garbage"))
	assert.False(t, m.ValidateToken("session-1", "123.abc"))

	now = now.Add(CSRFTokenMaxAge + time.Second)
	assert.False(t, m.ValidateToken("session-1", token), "expired")

	now = now.Add(-2 * CSRFTokenMaxAge)
	assert.False(t, m.ValidateToken("session-1", token), "from the future")
}

func TestDeriveKeys(t *testing.T) {
	a, err := DeriveKeys("server secret")
	require.NoError(t, err)
	b, err := DeriveKeys("server secret")
	require.NoError(t, err)

	assert.Equal(t, a, b, "deterministic for a fixed secret")
	assert.Len(t, a.CSRF, 32)
	assert.NotEqual(t, a.CSRF, a.Cookie)

	r1, err := DeriveKeys("")
	require.NoError(t, err)
	r2, err := DeriveKeys("")
	require.NoError(t, err)
	assert.NotEqual(t, r1.CSRF, r2.CSRF)
}

func TestSignValue(t *testing.T) {
	key := []byte("k")
	signed := SignValue(key, "abc.def")

	v, ok := VerifyValue(key, signed)
	assert.True(t, ok)
	assert.Equal(t, "abc.def", v)

	_, ok = VerifyValue([]byte("other"), signed)
	assert.False(t, ok)
	_, ok = VerifyValue(key, "abc.def.AAAA")
	assert.False(t, ok)
	_, ok = VerifyValue(key, "nodot")
	assert.False(t, ok)
}
