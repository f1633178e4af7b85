package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"olas-server/internal/types"
)

const me = "abc"

func TestLabel(t *testing.T) {
	tests := []struct {
		name   string
		evt    types.Event
		pubkey string
		want   string
	}{
		{"repost", types.Event{Kind: 6}, me, "reposted you"},
		{"generic repost", types.Event{Kind: 16}, me, "reposted you"},
		{"reaction", types.Event{Kind: 7, Content: "+"}, me, "reacted to your post"},
		{"comment on my post", types.Event{Kind: 1111, Tags: [][]string{{"P", me}}}, me, "commented on your post"},
		{"reply to my comment", types.Event{Kind: 1111, Tags: [][]string{{"P", "x"}, {"p", me}}}, me, "replied to your comment"},
		{"root author wins over parent", types.Event{Kind: 1111, Tags: [][]string{{"p", me}, {"P", me}}}, me, "commented on your post"},
		{"comment on someone else", types.Event{Kind: 1111, Tags: [][]string{{"P", "x"}, {"p", "y"}}}, me, "replied"},
		{"only first tag value counts", types.Event{Kind: 1111, Tags: [][]string{{"P", "x"}, {"P", me}}}, me, "replied"},
		{"text reply", types.Event{Kind: 1, Tags: [][]string{{"P", me}}}, me, "replied to your post"},
		{"nutzap", types.Event{Kind: 9321}, me, "zapped you"},
		{"zap receipt", types.Event{Kind: 9735}, me, "zapped you"},
		{"bookmark", types.Event{Kind: 3006}, me, "bookmarked your post"},
		{"follow", types.Event{Kind: 967}, me, "followed you"},
		{"unknown kind", types.Event{Kind: 12345}, me, "12345"},
		{"logged out comment", types.Event{Kind: 1111, Tags: [][]string{{"P", ""}}}, "", "replied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.evt, tt.pubkey))
		})
	}
}

func TestLabelIsTotal(t *testing.T) {
	for _, kind := range []int{0, 3, 20, 22, 10000, 30023} {
		assert.NotEmpty(t, Label(types.Event{Kind: kind}, ""))
	}
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "🔁", Icon(6))
	assert.Equal(t, "🔔", Icon(4242))
}

func TestKindsCoversLabelTable(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, len(kindLabels))
	assert.IsIncreasing(t, kinds)
	assert.Contains(t, kinds, 967)
	assert.Contains(t, kinds, 1111)
}
