package web

import (
	"context"

	"newsroom/internal/domain"
)

type ArticleService interface {
	Latest(ctx context.Context) ([]domain.Article, error)
	ByCategory(ctx context.Context, token string) ([]domain.Article, error)
	BySlug(ctx context.Context, slug string) (*domain.Article, error)
	ByID(ctx context.Context, id int64) (*domain.Article, error)
	Create(ctx context.Context, input domain.ArticleInput) (*domain.Article, error)
	Update(ctx context.Context, id int64, input domain.ArticleInput) error
	Delete(ctx context.Context, id int64) error
}

type PodcastService interface {
	Latest(ctx context.Context) ([]domain.Podcast, error)
	ByID(ctx context.Context, id int64) (*domain.Podcast, error)
	Create(ctx context.Context, input domain.PodcastInput) (*domain.Podcast, error)
	Update(ctx context.Context, id int64, input domain.PodcastInput) error
	Delete(ctx context.Context, id int64) error
}

// Authenticator is the managed auth boundary: the SQL admin table or GoTrue.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)
}
