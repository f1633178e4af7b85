package compose

import "strings"

// Media is one attachment described by an imeta tag
type Media struct {
	URL      string
	MimeType string
	Alt      string
}

func (m Media) IsVideo() bool {
	return strings.HasPrefix(m.MimeType, "video/")
}

// ParseMedia reads the imeta tags of a picture or video event. Entries
// without a public http(s) url are skipped.
func ParseMedia(tags [][]string) []Media {
	var out []Media
	for _, tag := range tags {
		if len(tag) < 2 || tag[0] != "imeta" {
			continue
		}
		var m Media
		for _, field := range tag[1:] {
			key, value, ok := strings.Cut(field, " ")
			if !ok {
				continue
			}
			switch key {
			case "url":
				m.URL = value
			case "m":
				m.MimeType = value
			case "alt":
				m.Alt = value
			}
		}
		if _, err := validateMediaURL(m.URL); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}
