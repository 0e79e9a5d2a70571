package web

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsroom/internal/config"
	"newsroom/internal/content"
	"newsroom/internal/domain"
)

type Options struct {
	Site          config.SiteConfig
	SessionSecret string
	SecureCookie  bool
}

// siteView is the site-wide part of every page.
type siteView struct {
	Name                string
	AllCategory         string
	Categories          []content.Category
	HighlightCategories []string
	ImageFallback       string
}

type Server struct {
	articles ArticleService
	podcasts PodcastService
	auth     Authenticator
	sessions *SessionManager
	views    *renderer
	site     siteView
	pageSize int
	logger   *slog.Logger
}

func NewServer(
	articles ArticleService,
	podcasts PodcastService,
	auth Authenticator,
	opts Options,
	logger *slog.Logger,
) (*Server, error) {
	site := siteView{
		Name:                opts.Site.Name,
		AllCategory:         opts.Site.AllCategory,
		Categories:          opts.Site.Categories,
		HighlightCategories: opts.Site.HighlightCategories,
		ImageFallback:       opts.Site.ImageFallback,
	}

	views, err := newRenderer(site)
	if err != nil {
		return nil, err
	}

	return &Server{
		articles: articles,
		podcasts: podcasts,
		auth:     auth,
		sessions: NewSessionManager(opts.SessionSecret, opts.SecureCookie, opts.Site.SessionTTL),
		views:    views,
		site:     site,
		pageSize: opts.Site.AdminPageSize,
		logger:   logger.With("component", "web"),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(instrument)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RedirectSlashes)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", s.handleHome)
	r.Get("/actualites", s.handleNews)
	r.Get("/article/{slug}", s.handleArticle)
	r.Get("/podcasts", s.handlePodcasts)
	r.Get("/qui-sommes-nous", s.handleAbout)

	r.Get("/admin/login", s.handleLoginForm)
	r.Post("/admin/login", s.handleLogin)
	r.Post("/admin/logout", s.handleLogout)

	r.Group(func(g chi.Router) {
		g.Use(s.RequireSession)

		g.Get("/admin", s.handleDashboard)

		g.Get("/admin/articles/new", s.handleArticleNew)
		g.Post("/admin/articles/new", s.handleArticleCreate)
		g.Get("/admin/articles/{id}/edit", s.handleArticleEdit)
		g.Post("/admin/articles/{id}/edit", s.handleArticleUpdate)
		g.Get("/admin/articles/{id}/delete", s.handleArticleConfirmDelete)
		g.Post("/admin/articles/{id}/delete", s.handleArticleDelete)

		g.Get("/admin/podcasts/new", s.handlePodcastNew)
		g.Post("/admin/podcasts/new", s.handlePodcastCreate)
		g.Get("/admin/podcasts/{id}/edit", s.handlePodcastEdit)
		g.Post("/admin/podcasts/{id}/edit", s.handlePodcastUpdate)
		g.Get("/admin/podcasts/{id}/delete", s.handlePodcastConfirmDelete)
		g.Post("/admin/podcasts/{id}/delete", s.handlePodcastDelete)
	})

	r.NotFound(s.handleNotFound)
	return r
}

// page is the data every template receives.
type page struct {
	Site    siteView
	Title   string
	Year    int
	Session *domain.Session
	Success []string
	Errors  []string
	Data    any
}

func (s *Server) newPage(r *http.Request, title string, data any) *page {
	return &page{
		Site:    s.site,
		Title:   title,
		Year:    time.Now().Year(),
		Session: sessionFrom(r.Context()),
		Data:    data,
	}
}

// withFlashes pulls pending banner messages into the page.
func (s *Server) withFlashes(w http.ResponseWriter, r *http.Request, p *page) *page {
	success, failure := s.sessions.Flashes(w, r)
	p.Success = append(p.Success, success...)
	p.Errors = append(p.Errors, failure...)
	return p
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, tmpl string, p *page) {
	if err := s.views.render(w, status, tmpl, p); err != nil {
		s.logger.Error("failed to render page", "template", tmpl, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "not_found.html", s.newPage(r, "Page introuvable", nil))
}

// storeFailure renders the page with the store's message as the banner.
func (s *Server) storeFailure(w http.ResponseWriter, r *http.Request, tmpl string, p *page, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.logger.Error("store request failed", "path", r.URL.Path, "error", err)
	p.Errors = append(p.Errors, "Erreur : "+err.Error())
	s.render(w, r, http.StatusInternalServerError, tmpl, p)
}
