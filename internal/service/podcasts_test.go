package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"newsroom/internal/domain"
	"newsroom/internal/service/mocks"
)

const podcastPlaceholder = "https://images.example.com/studio.jpg"

type PodcastServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	store     *mocks.MockPodcastStore
	publisher *mocks.MockPublisher

	service *PodcastService
}

func (s *PodcastServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockPodcastStore(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewPodcastService(s.store, s.publisher, podcastPlaceholder, logger)
	s.service.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
}

func (s *PodcastServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestPodcastServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PodcastServiceTestSuite))
}

func validPodcast() domain.PodcastInput {
	return domain.PodcastInput{
		Title:       "Grand entretien",
		Description: "Une heure avec le ministre",
		Duration:    "58 min",
		VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}
}

func (s *PodcastServiceTestSuite) TestCreate_UsesYouTubeThumbnail() {
	ctx := context.Background()

	s.store.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p *domain.Podcast) (*domain.Podcast, error) {
			s.Equal("https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", *p.ImageURL)
			created := *p
			created.ID = 11
			return &created, nil
		},
	)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e domain.ContentEvent) error {
			s.Equal(domain.KindPodcast, e.Kind)
			s.Equal(domain.ActionCreated, e.Action)
			s.Equal(int64(11), e.ID)
			s.Empty(e.Slug)
			return nil
		},
	)

	created, err := s.service.Create(ctx, validPodcast())
	s.Require().NoError(err)
	s.Equal(int64(11), created.ID)
}

func (s *PodcastServiceTestSuite) TestCreate_PlaceholderForOtherHosts() {
	ctx := context.Background()
	input := validPodcast()
	input.VideoURL = "https://vimeo.com/12345"

	s.store.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p *domain.Podcast) (*domain.Podcast, error) {
			s.Equal(podcastPlaceholder, *p.ImageURL)
			return p, nil
		},
	)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	_, err := s.service.Create(ctx, input)
	s.NoError(err)
}

func (s *PodcastServiceTestSuite) TestCreate_Validation() {
	_, err := s.service.Create(context.Background(), domain.PodcastInput{Title: "Seul"})

	var verr *domain.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Equal([]string{"video_url", "duration", "description"}, verr.Fields)
}

func (s *PodcastServiceTestSuite) TestCreate_StoreFailure() {
	ctx := context.Background()
	storeErr := errors.New("new row violates row-level security policy")

	s.store.EXPECT().Insert(ctx, gomock.Any()).Return(nil, storeErr)

	_, err := s.service.Create(ctx, validPodcast())
	s.ErrorIs(err, storeErr)
}

func (s *PodcastServiceTestSuite) TestUpdateAndDelete() {
	ctx := context.Background()

	s.store.EXPECT().Update(ctx, int64(2), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, patch domain.PodcastPatch) error {
			s.Equal("58 min", *patch.Duration)
			s.Equal("https://www.youtube.com/watch?v=dQw4w9WgXcQ", *patch.VideoURL)
			return nil
		},
	)
	s.store.EXPECT().Delete(ctx, int64(2)).Return(nil)
	s.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(2)

	s.NoError(s.service.Update(ctx, 2, validPodcast()))
	s.NoError(s.service.Delete(ctx, 2))

	s.store.EXPECT().Delete(ctx, int64(3)).Return(domain.ErrNotFound)
	s.ErrorIs(s.service.Delete(ctx, 3), domain.ErrNotFound)
}

func (s *PodcastServiceTestSuite) TestLatestAndByID() {
	ctx := context.Background()
	podcasts := []domain.Podcast{{ID: 2}, {ID: 1}}

	s.store.EXPECT().List(ctx, domain.NewestFirst).Return(podcasts, nil)
	s.store.EXPECT().GetBy(ctx, domain.FieldID, "2").Return(&podcasts[0], nil)

	list, err := s.service.Latest(ctx)
	s.NoError(err)
	s.Equal(podcasts, list)

	p, err := s.service.ByID(ctx, 2)
	s.NoError(err)
	s.Equal(int64(2), p.ID)
}
