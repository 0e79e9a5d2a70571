package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"newsroom/internal/config"
	"newsroom/internal/service"
	"newsroom/internal/storage/sqlstore"
	"newsroom/internal/storage/supabase"
	"newsroom/internal/web"
)

var errNotSQL = errors.New("command requires the postgres or sqlite backend")

// backend is the gateway selected by config: the hosted project or a direct
// SQL database.
type backend struct {
	articles service.ArticleStore
	podcasts service.PodcastStore
	auth     web.Authenticator

	// db is nil for the hosted backend.
	db *sqlx.DB
}

func (b *backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		client, err := supabase.NewClient(supabase.Config{URL: cfg.Supabase.URL, Key: cfg.Supabase.Key})
		if err != nil {
			return nil, err
		}
		return &backend{
			articles: supabase.NewArticleStore(client),
			podcasts: supabase.NewPodcastStore(client),
			auth:     supabase.NewAuthenticator(client),
		}, nil
	case config.BackendPostgres, config.BackendSQLite:
		db, err := openSQL(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			articles: sqlstore.NewArticleStore(db),
			podcasts: sqlstore.NewPodcastStore(db),
			auth:     sqlstore.NewAuthenticator(db, cfg.Site.SessionTTL),
			db:       db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func openSQL(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return sqlstore.Open(ctx, sqlstore.DriverPostgres, cfg.Database.DSN())
	case config.BackendSQLite:
		return sqlstore.Open(ctx, sqlstore.DriverSQLite, cfg.SQLite.Path)
	default:
		return nil, errNotSQL
	}
}
