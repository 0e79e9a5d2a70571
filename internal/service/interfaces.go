package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"newsroom/internal/domain"
)

type ArticleStore interface {
	List(ctx context.Context, order domain.Order) ([]domain.Article, error)
	ListByCategory(ctx context.Context, category string, order domain.Order) ([]domain.Article, error)
	GetBy(ctx context.Context, field domain.Field, value string) (*domain.Article, error)
	Insert(ctx context.Context, article *domain.Article) (*domain.Article, error)
	Update(ctx context.Context, id int64, patch domain.ArticlePatch) error
	Delete(ctx context.Context, id int64) error
}

type PodcastStore interface {
	List(ctx context.Context, order domain.Order) ([]domain.Podcast, error)
	GetBy(ctx context.Context, field domain.Field, value string) (*domain.Podcast, error)
	Insert(ctx context.Context, podcast *domain.Podcast) (*domain.Podcast, error)
	Update(ctx context.Context, id int64, patch domain.PodcastPatch) error
	Delete(ctx context.Context, id int64) error
}

type Publisher interface {
	Publish(ctx context.Context, event domain.ContentEvent) error
}
