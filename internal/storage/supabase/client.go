// Package supabase implements the content gateway and editor authentication
// on a hosted Supabase project: PostgREST for the tables, GoTrue for sessions.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"newsroom/internal/domain"
)

// Config holds the project URL and API key. The server runs the gateway with
// the service role key; editor identity is checked separately through GoTrue.
type Config struct {
	URL string
	Key string
}

type Client struct {
	sdk *supa.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, errors.New("supabase url and key are required")
	}

	sdk, err := supa.NewClient(strings.TrimRight(cfg.URL, "/"), cfg.Key, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize supabase SDK: %w", err)
	}
	return &Client{sdk: sdk}, nil
}

func (c *Client) from(ctx context.Context, table string) (*postgrest.QueryBuilder, error) {
	// postgrest-go has no context support; honour cancellation before the round trip.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.sdk.From(table), nil
}

func orderOpts(order domain.Order) *postgrest.OrderOpts {
	return &postgrest.OrderOpts{Ascending: order.Ascending}
}

// PostgREST reports database errors as "(code) message".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key value")
}
