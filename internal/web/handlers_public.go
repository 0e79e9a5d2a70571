package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsroom/internal/content"
	"newsroom/internal/domain"
)

type newsView struct {
	Category string
	Articles []domain.Article
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(r, "À la Une", nil)

	articles, err := s.articles.Latest(r.Context())
	if err != nil {
		p.Data = content.FrontPage{}
		s.storeFailure(w, r, "home.html", p, err)
		return
	}

	p.Data = content.BuildFrontPage(articles, s.site.HighlightCategories)
	s.render(w, r, http.StatusOK, "home.html", p)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("category")
	view := newsView{Category: content.DecodeCategory(token)}
	if view.Category == "" {
		view.Category = s.site.AllCategory
	}

	p := s.newPage(r, "Actualités", &view)

	articles, err := s.articles.ByCategory(r.Context(), token)
	if err != nil {
		s.storeFailure(w, r, "news.html", p, err)
		return
	}
	view.Articles = articles

	s.render(w, r, http.StatusOK, "news.html", p)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.articles.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, domain.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		s.storeFailure(w, r, "not_found.html", s.newPage(r, "Article introuvable", nil), err)
		return
	}

	s.render(w, r, http.StatusOK, "article.html", s.newPage(r, article.Title, *article))
}

func (s *Server) handlePodcasts(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(r, "Podcasts", []domain.Podcast(nil))

	podcasts, err := s.podcasts.Latest(r.Context())
	if err != nil {
		s.storeFailure(w, r, "podcasts.html", p, err)
		return
	}
	p.Data = podcasts

	s.render(w, r, http.StatusOK, "podcasts.html", p)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "about.html", s.newPage(r, "Qui sommes-nous ?", nil))
}
