package content

import (
	"regexp"
	"strings"
)

var (
	slugStrip     = regexp.MustCompile(`[^\w\s\p{Z}\x{FEFF}-]`)
	slugSeparator = regexp.MustCompile(`[\s\p{Z}\x{FEFF}_-]+`)
	slugEdges     = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives the URL identifier of an article from its title.
//
// Letters outside [A-Za-z0-9_] are dropped rather than transliterated, so
// "Les Éléphants" becomes "les-lphants". A title made only of such letters
// yields an empty slug; callers decide what to do with it.
func Slugify(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSeparator.ReplaceAllString(s, "-")
	return slugEdges.ReplaceAllString(s, "")
}
