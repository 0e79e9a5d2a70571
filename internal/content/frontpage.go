package content

import (
	"strings"

	"newsroom/internal/domain"
)

const (
	leadCount      = 2
	flashCount     = 4
	secondaryCount = 6
)

// FrontPage is the home page layout built from a newest-first article list.
type FrontPage struct {
	Lead       []domain.Article
	Flash      []domain.Article
	Secondary  []domain.Article
	Highlights []domain.Article
}

func BuildFrontPage(articles []domain.Article, highlightCategories []string) FrontPage {
	fp := FrontPage{
		Lead:      window(articles, 0, leadCount),
		Flash:     window(articles, leadCount, leadCount+flashCount),
		Secondary: window(articles, leadCount+flashCount, leadCount+flashCount+secondaryCount),
	}

	for _, cat := range highlightCategories {
		for _, a := range articles {
			if a.Category == cat {
				fp.Highlights = append(fp.Highlights, a)
				break
			}
		}
	}
	return fp
}

func window(items []domain.Article, from, to int) []domain.Article {
	if from >= len(items) {
		return nil
	}
	return items[from:min(to, len(items))]
}

// Paragraphs splits article content on line breaks and drops blank lines.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
