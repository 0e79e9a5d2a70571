package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"newsroom/internal/domain"
)

const podcastColumns = `id, title, description, duration, audio_url, image_url, created_at`

type PodcastStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPodcastStore(db *sqlx.DB) *PodcastStore {
	return &PodcastStore{db: db, now: time.Now}
}

func (s *PodcastStore) List(ctx context.Context, order domain.Order) ([]domain.Podcast, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("invalid order column %q", order.Column)
	}

	podcasts := []domain.Podcast{}
	err := s.db.SelectContext(ctx, &podcasts, `SELECT `+podcastColumns+` FROM podcasts `+orderClause(order))
	if err != nil {
		return nil, err
	}
	return podcasts, nil
}

// GetBy looks podcasts up by id; they have no slug.
func (s *PodcastStore) GetBy(ctx context.Context, field domain.Field, value string) (*domain.Podcast, error) {
	if field != domain.FieldID {
		return nil, fmt.Errorf("invalid lookup field %q", field)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var podcast domain.Podcast
	err = s.db.GetContext(ctx, &podcast, s.db.Rebind(`SELECT `+podcastColumns+` FROM podcasts WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &podcast, nil
}

func (s *PodcastStore) Insert(ctx context.Context, podcast *domain.Podcast) (*domain.Podcast, error) {
	created := *podcast
	created.CreatedAt = s.now().UTC()

	query := s.db.Rebind(`
		INSERT INTO podcasts (title, description, duration, audio_url, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := s.db.QueryRowxContext(ctx, query,
		created.Title,
		created.Description,
		created.Duration,
		created.VideoURL,
		created.ImageURL,
		created.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *PodcastStore) Update(ctx context.Context, id int64, patch domain.PodcastPatch) error {
	set := newSetList()
	set.add("title", patch.Title)
	set.add("description", patch.Description)
	set.add("duration", patch.Duration)
	set.add("audio_url", patch.VideoURL)
	set.add("image_url", patch.ImageURL)

	return updateRow(ctx, s.db, "podcasts", id, set)
}

func (s *PodcastStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM podcasts WHERE id = ?`), id)
	return expectOneRow(res, err)
}
