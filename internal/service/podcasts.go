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

type PodcastService struct {
	store       PodcastStore
	publisher   Publisher
	placeholder string
	logger      *slog.Logger
	now         func() time.Time
}

func NewPodcastService(store PodcastStore, publisher Publisher, placeholder string, logger *slog.Logger) *PodcastService {
	return &PodcastService{
		store:       store,
		publisher:   publisher,
		placeholder: placeholder,
		logger:      logger.With("component", "podcasts"),
		now:         time.Now,
	}
}

func (s *PodcastService) Latest(ctx context.Context) ([]domain.Podcast, error) {
	podcasts, err := s.store.List(ctx, domain.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("list podcasts: %w", err)
	}
	return podcasts, nil
}

func (s *PodcastService) ByID(ctx context.Context, id int64) (*domain.Podcast, error) {
	return s.store.GetBy(ctx, domain.FieldID, strconv.FormatInt(id, 10))
}

func (s *PodcastService) Create(ctx context.Context, input domain.PodcastInput) (*domain.Podcast, error) {
	input = trimPodcast(input)
	if err := validatePodcast(input); err != nil {
		return nil, err
	}

	image := input.ImageURL
	if image == "" {
		image = s.thumbnail(input.VideoURL)
	}

	created, err := s.store.Insert(ctx, &domain.Podcast{
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
		VideoURL:    input.VideoURL,
		ImageURL:    &image,
	})
	if err != nil {
		return nil, fmt.Errorf("insert podcast: %w", err)
	}

	s.logger.Info("podcast created", "id", created.ID)
	s.publish(ctx, domain.ActionCreated, created.ID, created.Title)
	return created, nil
}

func (s *PodcastService) Update(ctx context.Context, id int64, input domain.PodcastInput) error {
	input = trimPodcast(input)
	if err := validatePodcast(input); err != nil {
		return err
	}

	patch := domain.PodcastPatch{
		Title:       &input.Title,
		Description: &input.Description,
		Duration:    &input.Duration,
		VideoURL:    &input.VideoURL,
		ImageURL:    &input.ImageURL,
	}
	if err := s.store.Update(ctx, id, patch); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update podcast: %w", err)
	}

	s.logger.Info("podcast updated", "id", id)
	s.publish(ctx, domain.ActionUpdated, id, input.Title)
	return nil
}

func (s *PodcastService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete podcast: %w", err)
	}

	s.logger.Info("podcast deleted", "id", id)
	s.publish(ctx, domain.ActionDeleted, id, "")
	return nil
}

// thumbnail prefers the YouTube preview image over the generic placeholder.
func (s *PodcastService) thumbnail(videoURL string) string {
	if id, ok := content.VideoID(videoURL); ok {
		return content.ThumbnailURL(id)
	}
	return s.placeholder
}

func (s *PodcastService) publish(ctx context.Context, action domain.EventAction, id int64, title string) {
	if s.publisher == nil {
		return
	}
	event := domain.ContentEvent{
		Action:    action,
		Kind:      domain.KindPodcast,
		ID:        id,
		Title:     title,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish content event", "action", action, "id", id, "error", err)
	}
}

func validatePodcast(input domain.PodcastInput) error {
	var fields []string
	if input.Title == "" {
		fields = append(fields, "title")
	}
	if input.VideoURL == "" {
		fields = append(fields, "video_url")
	}
	if input.Duration == "" {
		fields = append(fields, "duration")
	}
	if input.Description == "" {
		fields = append(fields, "description")
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func trimPodcast(in domain.PodcastInput) domain.PodcastInput {
	return domain.PodcastInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Duration:    strings.TrimSpace(in.Duration),
		VideoURL:    strings.TrimSpace(in.VideoURL),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}
