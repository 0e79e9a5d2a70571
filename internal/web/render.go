package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"time"

	"newsroom/internal/content"
	"newsroom/internal/domain"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func frenchDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

func frenchDateTime(t time.Time) string {
	return fmt.Sprintf("%s à %02d:%02d", frenchDate(t), t.Hour(), t.Minute())
}

func categoryURL(all, name string) string {
	if name == "" || name == all {
		return "/actualites"
	}
	return "/actualites?category=" + url.QueryEscape(name)
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(site siteView) (*renderer, error) {
	funcs := template.FuncMap{
		"date":       frenchDate,
		"datetime":   frenchDateTime,
		"shortdate":  func(t time.Time) string { return t.Format("02/01/2006") },
		"paragraphs": content.Paragraphs,
		"categoryURL": func(name string) string {
			return categoryURL(site.AllCategory, name)
		},
		"articleImage": func(a domain.Article) string { return a.Image(site.ImageFallback) },
		"podcastImage": func(p domain.Podcast) string { return p.Image(site.ImageFallback) },
		"embedURL": func(p domain.Podcast) string {
			if id, ok := content.VideoID(p.VideoURL); ok {
				return content.EmbedURL(id)
			}
			return ""
		},
	}

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(path.Base(page)).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[path.Base(page)] = t
	}
	return r, nil
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (r *renderer) render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
