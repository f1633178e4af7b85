package compose

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"olas-server/internal/nostr"
	"olas-server/internal/types"
	"olas-server/internal/util"
)

var (
	ErrUnknownType = errors.New("unknown post type")
	ErrMediaURL    = errors.New("media URL must be a public http(s) URL")
	ErrMediaType   = errors.New("media does not match the selected post type")
)

const maxCaptionRunes = 2000

var hashtagRe = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_]+)`)

// Draft is a submitted new-post form
type Draft struct {
	TypeID   string
	MediaURL string
	MimeType string // optional; guessed from the URL extension when empty
	Alt      string
	Caption  string
}

// Build validates the draft and returns the event to sign: a picture event
// for image post types, a short video event for video post types.
func Build(d Draft, now time.Time) (types.UnsignedEvent, error) {
	pt, ok := Lookup(d.TypeID)
	if !ok {
		return types.UnsignedEvent{}, fmt.Errorf("%w: %q", ErrUnknownType, d.TypeID)
	}

	mediaURL, err := validateMediaURL(d.MediaURL)
	if err != nil {
		return types.UnsignedEvent{}, err
	}

	mimeType := d.MimeType
	if mimeType == "" {
		mimeType = mime.TypeByExtension(strings.ToLower(path.Ext(mediaURL.Path)))
		if i := strings.IndexByte(mimeType, ';'); i >= 0 {
			mimeType = mimeType[:i]
		}
	}
	if mimeType != "" && !strings.HasPrefix(mimeType, mediaPrefix(pt.Media)) {
		return types.UnsignedEvent{}, fmt.Errorf("%w: %s for %s", ErrMediaType, mimeType, pt.Label)
	}

	kind := nostr.KindPicture
	if pt.Media == MediaVideos {
		kind = nostr.KindShortVideo
	}

	imeta := []string{"imeta", "url " + mediaURL.String()}
	if mimeType != "" {
		imeta = append(imeta, "m "+mimeType)
	}
	alt := strings.TrimSpace(d.Alt)
	if alt != "" {
		imeta = append(imeta, "alt "+alt)
	}

	tags := [][]string{imeta}
	if alt != "" {
		tags = append(tags, []string{"alt", alt})
	}
	caption := util.TruncateStringRunes(strings.TrimSpace(d.Caption), maxCaptionRunes)
	for _, tag := range Hashtags(caption) {
		tags = append(tags, []string{"t", tag})
	}

	return types.UnsignedEvent{
		Kind:      kind,
		Content:   caption,
		Tags:      tags,
		CreatedAt: now.Unix(),
	}, nil
}

func mediaPrefix(m MediaKind) string {
	if m == MediaVideos {
		return "video/"
	}
	return "image/"
}

func validateMediaURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return nil, ErrMediaURL
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, ErrMediaURL
	}
	if !util.IsPublicHost(u.Hostname()) {
		return nil, ErrMediaURL
	}
	return u, nil
}

// Hashtags returns the distinct lowercased hashtags in text, in order
func Hashtags(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(m[1])
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}
