package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeAgo(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	assert.Equal(t, "now", TimeAgo(now.Unix()-10, now))
	assert.Equal(t, "5m", TimeAgo(now.Add(-5*time.Minute).Unix(), now))
	assert.Equal(t, "3h", TimeAgo(now.Add(-3*time.Hour).Unix(), now))
	assert.Equal(t, "2d", TimeAgo(now.Add(-49*time.Hour).Unix(), now))
	assert.Equal(t, "Oct 25, 2023", TimeAgo(now.Add(-20*24*time.Hour).Unix(), now))
}

func TestFilterSliceDoesNotMutate(t *testing.T) {
	in := []int{1, 2, 3, 4}
	out := FilterSlice(in, func(n int) bool { return n%2 == 0 })

	assert.Equal(t, []int{2, 4}, out)
	assert.Equal(t, []int{1, 2, 3, 4}, in)
}

func TestTruncateStringRunes(t *testing.T) {
	assert.Equal(t, "short", TruncateStringRunes("short", 10))
	assert.Equal(t, "héllo w...", TruncateStringRunes("héllo world again", 10))
}

func TestClassifyHost(t *testing.T) {
	cases := map[string]HostScope{
		"relay.damus.io":  HostPublic,
		"8.8.8.8":         HostPublic,
		"localhost":       HostLoopback,
		"127.0.0.1":       HostLoopback,
		"127.3.2.1":       HostLoopback,
		"[::1]":           HostLoopback,
		"relay.local":     HostPrivate,
		"abc.onion":       HostPrivate,
		"10.0.0.7":        HostPrivate,
		"192.168.1.1":     HostPrivate,
		"169.254.169.254": HostPrivate,
		"fd00::1":         HostPrivate,
		"0.0.0.0":         HostPrivate,
	}
	for host, want := range cases {
		assert.Equal(t, want, ClassifyHost(host), host)
	}
	assert.True(t, IsPublicHost("cdn.example.com"))
	assert.False(t, IsPublicHost("LOCALHOST"))
}

func TestParseTemplate(t *testing.T) {
	tmpl, err := ParseTemplate("page", nil, `{{define "a"}}A{{end}}`, `{{template "a"}}B`)
	require.NoError(t, err)
	var buf strings.Builder
	require.NoError(t, tmpl.Execute(&buf, nil))
	assert.Equal(t, "AB", buf.String())

	_, err = ParseTemplate("broken", nil, `{{if}}`)
	assert.ErrorContains(t, err, "template broken part 0")
}
