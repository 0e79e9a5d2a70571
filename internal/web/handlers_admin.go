package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"newsroom/internal/content"
	"newsroom/internal/domain"
	"newsroom/internal/metrics"
)

const (
	msgSlugTaken  = "Ce titre existe déjà. Veuillez le modifier légèrement."
	msgEmptySlug  = "Le titre doit contenir au moins une lettre ou un chiffre."
	msgSaveFailed = "Erreur lors de l'enregistrement : "
	msgEditFailed = "Erreur lors de la modification : "
)

var fieldLabels = map[string]string{
	"title":       "Titre",
	"category":    "Catégorie",
	"excerpt":     "Résumé",
	"content":     "Contenu",
	"video_url":   "Lien YouTube",
	"duration":    "Durée",
	"description": "Description",
}

type dashboardView struct {
	Articles content.Page[domain.Article]
	Podcasts content.Page[domain.Podcast]

	ArticleCount int
	PodcastCount int
}

type articleFormView struct {
	Action     string
	Heading    string
	Submit     string
	Input      domain.ArticleInput
	Categories []content.Category
	Invalid    map[string]bool
}

type podcastFormView struct {
	Action  string
	Heading string
	Submit  string
	Input   domain.PodcastInput
	Invalid map[string]bool
}

type confirmView struct {
	Question string
	Title    string
	Action   string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view := &dashboardView{}
	p := s.withFlashes(w, r, s.newPage(r, "Administration", view))

	articles, err := s.articles.Latest(ctx)
	if err != nil {
		s.storeFailure(w, r, "dashboard.html", p, err)
		return
	}
	podcasts, err := s.podcasts.Latest(ctx)
	if err != nil {
		s.storeFailure(w, r, "dashboard.html", p, err)
		return
	}

	view.ArticleCount = len(articles)
	view.PodcastCount = len(podcasts)
	view.Articles = content.Paginate(articles, s.pageParam(r, "articles_page", len(articles)), s.pageSize)
	view.Podcasts = content.Paginate(podcasts, s.pageParam(r, "podcasts_page", len(podcasts)), s.pageSize)

	s.render(w, r, http.StatusOK, "dashboard.html", p)
}

// pageParam reads a 1-based page number and clamps it to the listing.
func (s *Server) pageParam(r *http.Request, name string, total int) int {
	page, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		page = 1
	}
	return content.ClampPage(page, content.TotalPages(total, s.pageSize))
}

func (s *Server) handleArticleNew(w http.ResponseWriter, r *http.Request) {
	input := domain.ArticleInput{}
	if len(s.site.Categories) > 0 {
		input.Category = s.site.Categories[0].Name
	}
	s.renderArticleForm(w, r, http.StatusOK, s.newArticleForm(input), nil)
}

func (s *Server) handleArticleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := articleInput(w, r)
	if !ok {
		return
	}

	_, err := s.articles.Create(r.Context(), input)
	metrics.ContentWritesTotal.WithLabelValues(string(domain.KindArticle), string(domain.ActionCreated), metrics.Status(err)).Inc()
	if err != nil {
		s.articleWriteFailure(w, r, s.newArticleForm(input), msgSaveFailed, err)
		return
	}

	s.flashAndReturn(w, r, "Article publié.")
}

func (s *Server) handleArticleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	article, err := s.articles.ByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		s.storeFailure(w, r, "article_form.html", s.newPage(r, "Modifier l'article", s.editArticleForm(id, domain.ArticleInput{})), err)
		return
	}

	input := domain.ArticleInput{
		Title:    article.Title,
		Category: article.Category,
		Excerpt:  article.Excerpt,
		Content:  article.Content,
	}
	if article.ImageURL != nil {
		input.ImageURL = *article.ImageURL
	}
	s.renderArticleForm(w, r, http.StatusOK, s.editArticleForm(id, input), nil)
}

func (s *Server) handleArticleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	input, ok := articleInput(w, r)
	if !ok {
		return
	}

	err := s.articles.Update(r.Context(), id, input)
	metrics.ContentWritesTotal.WithLabelValues(string(domain.KindArticle), string(domain.ActionUpdated), metrics.Status(err)).Inc()
	if err != nil {
		s.articleWriteFailure(w, r, s.editArticleForm(id, input), msgEditFailed, err)
		return
	}

	s.flashAndReturn(w, r, "Article mis à jour.")
}

func (s *Server) handleArticleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	article, err := s.articles.ByID(r.Context(), id)
	if err != nil {
		s.confirmLookupFailure(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "confirm_delete.html", s.newPage(r, "Supprimer l'article", confirmView{
		Question: "Êtes-vous sûr de vouloir supprimer cet article ?",
		Title:    article.Title,
		Action:   fmt.Sprintf("/admin/articles/%d/delete", id),
	}))
}

func (s *Server) handleArticleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	err := s.articles.Delete(r.Context(), id)
	metrics.ContentWritesTotal.WithLabelValues(string(domain.KindArticle), string(domain.ActionDeleted), metrics.Status(err)).Inc()
	s.deleteOutcome(w, r, err, "Article supprimé.")
}

func (s *Server) handlePodcastNew(w http.ResponseWriter, r *http.Request) {
	s.renderPodcastForm(w, r, http.StatusOK, newPodcastForm(domain.PodcastInput{}), nil)
}

func (s *Server) handlePodcastCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := podcastInput(w, r)
	if !ok {
		return
	}

	_, err := s.podcasts.Create(r.Context(), input)
	metrics.ContentWritesTotal.WithLabelValues(string(domain.KindPodcast), string(domain.ActionCreated), metrics.Status(err)).Inc()
	if err != nil {
		s.podcastWriteFailure(w, r, newPodcastForm(input), msgSaveFailed, err)
		return
	}

	s.flashAndReturn(w, r, "Vidéo publiée.")
}

func (s *Server) handlePodcastEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	podcast, err := s.podcasts.ByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		s.storeFailure(w, r, "podcast_form.html", s.newPage(r, "Modifier la vidéo", editPodcastForm(id, domain.PodcastInput{})), err)
		return
	}

	input := domain.PodcastInput{
		Title:       podcast.Title,
		Description: podcast.Description,
		Duration:    podcast.Duration,
		VideoURL:    podcast.VideoURL,
	}
	if podcast.ImageURL != nil {
		input.ImageURL = *podcast.ImageURL
	}
	s.renderPodcastForm(w, r, http.StatusOK, editPodcastForm(id, input), nil)
}

func (s *Server) handlePodcastUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	input, ok := podcastInput(w, r)
	if !ok {
		return
	}

	err := s.podcasts.Update(r.Context(), id, input)
	metrics.ContentWritesTotal.WithLabelValues(string(domain.KindPodcast), string(domain.ActionUpdated), metrics.Status(err)).Inc()
	if err != nil {
		s.podcastWriteFailure(w, r, editPodcastForm(id, input), msgEditFailed, err)
		return
	}

	s.flashAndReturn(w, r, "Vidéo mise à jour.")
}

func (s *Server) handlePodcastConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	podcast, err := s.podcasts.ByID(r.Context(), id)
	if err != nil {
		s.confirmLookupFailure(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "confirm_delete.html", s.newPage(r, "Supprimer la vidéo", confirmView{
		Question: "Êtes-vous sûr de vouloir supprimer cette vidéo ?",
		Title:    podcast.Title,
		Action:   fmt.Sprintf("/admin/podcasts/%d/delete", id),
	}))
}

func (s *Server) handlePodcastDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	err := s.podcasts.Delete(r.Context(), id)
	metrics.ContentWritesTotal.WithLabelValues(string(domain.KindPodcast), string(domain.ActionDeleted), metrics.Status(err)).Inc()
	s.deleteOutcome(w, r, err, "Vidéo supprimée.")
}

func recordID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func articleInput(w http.ResponseWriter, r *http.Request) (domain.ArticleInput, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return domain.ArticleInput{}, false
	}
	return domain.ArticleInput{
		Title:    r.PostFormValue("title"),
		Category: r.PostFormValue("category"),
		Excerpt:  r.PostFormValue("excerpt"),
		Content:  r.PostFormValue("content"),
		ImageURL: strings.TrimSpace(r.PostFormValue("image_url")),
	}, true
}

func podcastInput(w http.ResponseWriter, r *http.Request) (domain.PodcastInput, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return domain.PodcastInput{}, false
	}
	return domain.PodcastInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Duration:    r.PostFormValue("duration"),
		VideoURL:    strings.TrimSpace(r.PostFormValue("video_url")),
		ImageURL:    strings.TrimSpace(r.PostFormValue("image_url")),
	}, true
}

func (s *Server) newArticleForm(input domain.ArticleInput) *articleFormView {
	return &articleFormView{
		Action:     "/admin/articles/new",
		Heading:    "Nouvel Article",
		Submit:     "Publier l'article",
		Input:      input,
		Categories: s.site.Categories,
	}
}

func (s *Server) editArticleForm(id int64, input domain.ArticleInput) *articleFormView {
	return &articleFormView{
		Action:     fmt.Sprintf("/admin/articles/%d/edit", id),
		Heading:    "Modifier l'article",
		Submit:     "Enregistrer les modifications",
		Input:      input,
		Categories: s.site.Categories,
	}
}

func newPodcastForm(input domain.PodcastInput) *podcastFormView {
	return &podcastFormView{
		Action:  "/admin/podcasts/new",
		Heading: "Nouvelle Vidéo",
		Submit:  "Publier la vidéo",
		Input:   input,
	}
}

func editPodcastForm(id int64, input domain.PodcastInput) *podcastFormView {
	return &podcastFormView{
		Action:  fmt.Sprintf("/admin/podcasts/%d/edit", id),
		Heading: "Modifier la vidéo",
		Submit:  "Enregistrer les modifications",
		Input:   input,
	}
}

func (s *Server) renderArticleForm(w http.ResponseWriter, r *http.Request, status int, form *articleFormView, errs []string) {
	p := s.newPage(r, form.Heading, form)
	p.Errors = errs
	s.render(w, r, status, "article_form.html", p)
}

func (s *Server) renderPodcastForm(w http.ResponseWriter, r *http.Request, status int, form *podcastFormView, errs []string) {
	p := s.newPage(r, form.Heading, form)
	p.Errors = errs
	s.render(w, r, status, "podcast_form.html", p)
}

func (s *Server) articleWriteFailure(w http.ResponseWriter, r *http.Request, form *articleFormView, prefix string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	status, msg, invalid := s.classifyWrite(prefix, err)
	form.Invalid = invalid
	s.renderArticleForm(w, r, status, form, []string{msg})
}

func (s *Server) podcastWriteFailure(w http.ResponseWriter, r *http.Request, form *podcastFormView, prefix string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	status, msg, invalid := s.classifyWrite(prefix, err)
	form.Invalid = invalid
	s.renderPodcastForm(w, r, status, form, []string{msg})
}

// classifyWrite turns a failed create or update into the status code and the
// banner shown above the re-rendered form.
func (s *Server) classifyWrite(prefix string, err error) (int, string, map[string]bool) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		invalid := make(map[string]bool, len(verr.Fields))
		labels := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			invalid[f] = true
			label, ok := fieldLabels[f]
			if !ok {
				label = f
			}
			labels = append(labels, label)
		}
		return http.StatusUnprocessableEntity, "Champs obligatoires manquants ou invalides : " + strings.Join(labels, ", "), invalid
	case errors.Is(err, domain.ErrEmptySlug):
		return http.StatusUnprocessableEntity, msgEmptySlug, map[string]bool{"title": true}
	case errors.Is(err, domain.ErrSlugTaken):
		return http.StatusConflict, msgSlugTaken, map[string]bool{"title": true}
	default:
		s.logger.Error("content write failed", "error", err)
		return http.StatusInternalServerError, prefix + err.Error(), nil
	}
}

func (s *Server) confirmLookupFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		s.handleNotFound(w, r)
		return
	}
	s.logger.Error("failed to load record", "path", r.URL.Path, "error", err)
	_ = s.sessions.Flash(w, r, flashError, "Erreur : "+err.Error())
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) deleteOutcome(w http.ResponseWriter, r *http.Request, err error, success string) {
	switch {
	case err == nil:
		s.flashAndReturn(w, r, success)
	case errors.Is(err, domain.ErrNotFound):
		s.handleNotFound(w, r)
	default:
		s.logger.Error("delete failed", "path", r.URL.Path, "error", err)
		_ = s.sessions.Flash(w, r, flashError, "Erreur : "+err.Error())
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}

func (s *Server) flashAndReturn(w http.ResponseWriter, r *http.Request, message string) {
	if err := s.sessions.Flash(w, r, flashSuccess, message); err != nil {
		s.logger.Warn("failed to store flash", "error", err)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
