package supabase

import (
	"context"
	"fmt"
	"strconv"

	"newsroom/internal/domain"
)

const articlesTable = "articles"

type articleRow struct {
	Title    string  `json:"title"`
	Slug     string  `json:"slug"`
	Category string  `json:"category"`
	Excerpt  string  `json:"excerpt"`
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
}

type ArticleStore struct {
	client *Client
}

func NewArticleStore(client *Client) *ArticleStore {
	return &ArticleStore{client: client}
}

func (s *ArticleStore) List(ctx context.Context, order domain.Order) ([]domain.Article, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("invalid order column %q", order.Column)
	}
	q, err := s.client.from(ctx, articlesTable)
	if err != nil {
		return nil, err
	}

	articles := []domain.Article{}
	_, err = q.Select("*", "", false).
		Order(order.Column, orderOpts(order)).
		ExecuteTo(&articles)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *ArticleStore) ListByCategory(ctx context.Context, category string, order domain.Order) ([]domain.Article, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("invalid order column %q", order.Column)
	}
	q, err := s.client.from(ctx, articlesTable)
	if err != nil {
		return nil, err
	}

	articles := []domain.Article{}
	_, err = q.Select("*", "", false).
		Eq("category", category).
		Order(order.Column, orderOpts(order)).
		ExecuteTo(&articles)
	if err != nil {
		return nil, fmt.Errorf("list articles by category: %w", err)
	}
	return articles, nil
}

func (s *ArticleStore) GetBy(ctx context.Context, field domain.Field, value string) (*domain.Article, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("invalid lookup field %q", field)
	}
	if field == domain.FieldID {
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return nil, domain.ErrNotFound
		}
	}
	q, err := s.client.from(ctx, articlesTable)
	if err != nil {
		return nil, err
	}

	var rows []domain.Article
	_, err = q.Select("*", "", false).
		Eq(string(field), value).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (s *ArticleStore) Insert(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	q, err := s.client.from(ctx, articlesTable)
	if err != nil {
		return nil, err
	}

	row := articleRow{
		Title:    article.Title,
		Slug:     article.Slug,
		Category: article.Category,
		Excerpt:  article.Excerpt,
		Content:  article.Content,
		ImageURL: article.ImageURL,
	}

	var created []domain.Article
	_, err = q.Insert(row, false, "", "representation", "").ExecuteTo(&created)
	if isUniqueViolation(err) {
		return nil, domain.ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("insert article: no row returned")
	}
	return &created[0], nil
}

func (s *ArticleStore) Update(ctx context.Context, id int64, patch domain.ArticlePatch) error {
	if patch == (domain.ArticlePatch{}) {
		_, err := s.GetBy(ctx, domain.FieldID, strconv.FormatInt(id, 10))
		return err
	}
	q, err := s.client.from(ctx, articlesTable)
	if err != nil {
		return err
	}

	var updated []domain.Article
	_, err = q.Update(patch, "representation", "").
		Eq("id", strconv.FormatInt(id, 10)).
		ExecuteTo(&updated)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if len(updated) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	q, err := s.client.from(ctx, articlesTable)
	if err != nil {
		return err
	}

	var deleted []domain.Article
	_, err = q.Delete("representation", "").
		Eq("id", strconv.FormatInt(id, 10)).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if len(deleted) == 0 {
		return domain.ErrNotFound
	}
	return nil
}
