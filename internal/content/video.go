package content

import "regexp"

const videoIDLength = 11

var videoURL = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// VideoID extracts the YouTube identifier from a watch, share or embed link.
// Anything else reports false; callers fall back to the thumbnail and link.
func VideoID(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	m := videoURL.FindStringSubmatch(url)
	if m == nil || len(m[2]) != videoIDLength {
		return "", false
	}
	return m[2], true
}

func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id + "?autoplay=1"
}

func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
