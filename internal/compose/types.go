// Package compose describes the kinds of post a user can create and turns a
// filled-in draft into an unsigned event.
package compose

// MediaKind is the broad media category a post type accepts
type MediaKind string

const (
	MediaImages MediaKind = "images"
	MediaVideos MediaKind = "videos"
)

// PostType is one option of the "new post" selector
type PostType struct {
	ID     string
	Label  string
	Icon   string
	Media  MediaKind
	Square bool // images are cropped 1:1
}

// PostTypes in display order: two rows of two
var PostTypes = []PostType{
	{ID: "square-photo", Label: "1:1 Photo", Icon: "🖼", Media: MediaImages, Square: true},
	{ID: "photo", Label: "Uncropped", Icon: "📷", Media: MediaImages},
	{ID: "reel", Label: "Reel", Icon: "🎞", Media: MediaVideos},
	{ID: "short-video", Label: "Short Video", Icon: "🎬", Media: MediaVideos},
}

// Lookup finds a post type by ID
func Lookup(id string) (PostType, bool) {
	for _, pt := range PostTypes {
		if pt.ID == id {
			return pt, true
		}
	}
	return PostType{}, false
}

// Accept is the value for a file/URL input's accept attribute
func (pt PostType) Accept() string {
	if pt.Media == MediaVideos {
		return "video/*"
	}
	return "image/*"
}
