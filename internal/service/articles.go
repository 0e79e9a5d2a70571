package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"newsroom/internal/content"
	"newsroom/internal/domain"
)

type ArticleService struct {
	store       ArticleStore
	publisher   Publisher
	catalog     content.Catalog
	placeholder string
	logger      *slog.Logger
	now         func() time.Time
}

// NewArticleService wires the article rules over a store. publisher may be nil,
// in which case no content events are emitted.
func NewArticleService(
	store ArticleStore,
	publisher Publisher,
	catalog content.Catalog,
	placeholder string,
	logger *slog.Logger,
) *ArticleService {
	return &ArticleService{
		store:       store,
		publisher:   publisher,
		catalog:     catalog,
		placeholder: placeholder,
		logger:      logger.With("component", "articles"),
		now:         time.Now,
	}
}

func (s *ArticleService) Catalog() content.Catalog {
	return s.catalog
}

func (s *ArticleService) Latest(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.store.List(ctx, domain.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// ByCategory lists the newest articles matching a raw category token taken
// from the query string. The "all" sentinel and the empty token list everything.
func (s *ArticleService) ByCategory(ctx context.Context, token string) ([]domain.Article, error) {
	articles, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return content.FilterByCategory(articles, token, s.catalog.All, func(a domain.Article) string {
		return a.Category
	}), nil
}

// InCategory pushes the category filter down to the store.
func (s *ArticleService) InCategory(ctx context.Context, category string) ([]domain.Article, error) {
	articles, err := s.store.ListByCategory(ctx, category, domain.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("list articles in %q: %w", category, err)
	}
	return articles, nil
}

func (s *ArticleService) BySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return s.store.GetBy(ctx, domain.FieldSlug, slug)
}

func (s *ArticleService) ByID(ctx context.Context, id int64) (*domain.Article, error) {
	return s.store.GetBy(ctx, domain.FieldID, strconv.FormatInt(id, 10))
}

func (s *ArticleService) Create(ctx context.Context, input domain.ArticleInput) (*domain.Article, error) {
	input = trimArticle(input)
	if err := s.validate(input); err != nil {
		return nil, err
	}

	slug := content.Slugify(input.Title)
	if slug == "" {
		return nil, domain.ErrEmptySlug
	}

	if _, err := s.store.GetBy(ctx, domain.FieldSlug, slug); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	image := input.ImageURL
	if image == "" {
		image = s.placeholder
	}

	created, err := s.store.Insert(ctx, &domain.Article{
		Title:    input.Title,
		Slug:     slug,
		Category: input.Category,
		Excerpt:  input.Excerpt,
		Content:  input.Content,
		ImageURL: &image,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("insert article: %w", err)
	}

	s.logger.Info("article created", "id", created.ID, "slug", created.Slug, "category", created.Category)
	s.publish(ctx, domain.ActionCreated, created.ID, created.Slug, created.Title)
	return created, nil
}

// Update rewrites the editable fields. The slug stays the one derived at creation.
func (s *ArticleService) Update(ctx context.Context, id int64, input domain.ArticleInput) error {
	input = trimArticle(input)
	if err := s.validate(input); err != nil {
		return err
	}

	patch := domain.ArticlePatch{
		Title:    &input.Title,
		Category: &input.Category,
		Excerpt:  &input.Excerpt,
		Content:  &input.Content,
		ImageURL: &input.ImageURL,
	}
	if err := s.store.Update(ctx, id, patch); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update article: %w", err)
	}

	s.logger.Info("article updated", "id", id)
	s.publish(ctx, domain.ActionUpdated, id, "", input.Title)
	return nil
}

func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete article: %w", err)
	}

	s.logger.Info("article deleted", "id", id)
	s.publish(ctx, domain.ActionDeleted, id, "", "")
	return nil
}

func (s *ArticleService) validate(input domain.ArticleInput) error {
	var fields []string
	if input.Title == "" {
		fields = append(fields, "title")
	}
	if input.Category == "" || !s.catalog.Contains(input.Category) {
		fields = append(fields, "category")
	}
	if input.Excerpt == "" {
		fields = append(fields, "excerpt")
	}
	if input.Content == "" {
		fields = append(fields, "content")
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func (s *ArticleService) publish(ctx context.Context, action domain.EventAction, id int64, slug, title string) {
	if s.publisher == nil {
		return
	}
	event := domain.ContentEvent{
		Action:    action,
		Kind:      domain.KindArticle,
		ID:        id,
		Slug:      slug,
		Title:     title,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish content event", "action", action, "id", id, "error", err)
	}
}

func trimArticle(in domain.ArticleInput) domain.ArticleInput {
	return domain.ArticleInput{
		Title:    strings.TrimSpace(in.Title),
		Category: strings.TrimSpace(in.Category),
		Excerpt:  strings.TrimSpace(in.Excerpt),
		Content:  strings.TrimSpace(in.Content),
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
}
