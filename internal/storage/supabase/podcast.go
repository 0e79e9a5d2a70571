package supabase

import (
	"context"
	"fmt"
	"strconv"

	"newsroom/internal/domain"
)

const podcastsTable = "podcasts"

type podcastRow struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	VideoURL    string  `json:"audio_url"`
	ImageURL    *string `json:"image_url"`
}

type PodcastStore struct {
	client *Client
}

func NewPodcastStore(client *Client) *PodcastStore {
	return &PodcastStore{client: client}
}

func (s *PodcastStore) List(ctx context.Context, order domain.Order) ([]domain.Podcast, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("invalid order column %q", order.Column)
	}
	q, err := s.client.from(ctx, podcastsTable)
	if err != nil {
		return nil, err
	}

	podcasts := []domain.Podcast{}
	_, err = q.Select("*", "", false).
		Order(order.Column, orderOpts(order)).
		ExecuteTo(&podcasts)
	if err != nil {
		return nil, fmt.Errorf("list podcasts: %w", err)
	}
	return podcasts, nil
}

func (s *PodcastStore) GetBy(ctx context.Context, field domain.Field, value string) (*domain.Podcast, error) {
	if field != domain.FieldID {
		return nil, fmt.Errorf("invalid lookup field %q", field)
	}
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return nil, domain.ErrNotFound
	}
	q, err := s.client.from(ctx, podcastsTable)
	if err != nil {
		return nil, err
	}

	var rows []domain.Podcast
	_, err = q.Select("*", "", false).
		Eq("id", value).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("get podcast: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (s *PodcastStore) Insert(ctx context.Context, podcast *domain.Podcast) (*domain.Podcast, error) {
	q, err := s.client.from(ctx, podcastsTable)
	if err != nil {
		return nil, err
	}

	row := podcastRow{
		Title:       podcast.Title,
		Description: podcast.Description,
		Duration:    podcast.Duration,
		VideoURL:    podcast.VideoURL,
		ImageURL:    podcast.ImageURL,
	}

	var created []domain.Podcast
	if _, err := q.Insert(row, false, "", "representation", "").ExecuteTo(&created); err != nil {
		return nil, fmt.Errorf("insert podcast: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("insert podcast: no row returned")
	}
	return &created[0], nil
}

func (s *PodcastStore) Update(ctx context.Context, id int64, patch domain.PodcastPatch) error {
	if patch == (domain.PodcastPatch{}) {
		_, err := s.GetBy(ctx, domain.FieldID, strconv.FormatInt(id, 10))
		return err
	}
	q, err := s.client.from(ctx, podcastsTable)
	if err != nil {
		return err
	}

	var updated []domain.Podcast
	_, err = q.Update(patch, "representation", "").
		Eq("id", strconv.FormatInt(id, 10)).
		ExecuteTo(&updated)
	if err != nil {
		return fmt.Errorf("update podcast: %w", err)
	}
	if len(updated) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PodcastStore) Delete(ctx context.Context, id int64) error {
	q, err := s.client.from(ctx, podcastsTable)
	if err != nil {
		return err
	}

	var deleted []domain.Podcast
	_, err = q.Delete("representation", "").
		Eq("id", strconv.FormatInt(id, 10)).
		ExecuteTo(&deleted)
	if err != nil {
		return fmt.Errorf("delete podcast: %w", err)
	}
	if len(deleted) == 0 {
		return domain.ErrNotFound
	}
	return nil
}
