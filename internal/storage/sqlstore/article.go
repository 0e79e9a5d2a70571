package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"newsroom/internal/domain"
)

const articleColumns = `id, title, slug, category, excerpt, content, image_url, created_at`

type ArticleStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db, now: time.Now}
}

func (s *ArticleStore) List(ctx context.Context, order domain.Order) ([]domain.Article, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("invalid order column %q", order.Column)
	}

	query := `SELECT ` + articleColumns + ` FROM articles ` + orderClause(order)

	articles := []domain.Article{}
	if err := s.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleStore) ListByCategory(ctx context.Context, category string, order domain.Order) ([]domain.Article, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("invalid order column %q", order.Column)
	}

	query := s.db.Rebind(`SELECT ` + articleColumns + ` FROM articles WHERE category = ? ` + orderClause(order))

	articles := []domain.Article{}
	if err := s.db.SelectContext(ctx, &articles, query, category); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleStore) GetBy(ctx context.Context, field domain.Field, value string) (*domain.Article, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("invalid lookup field %q", field)
	}

	var arg any = value
	if field == domain.FieldID {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		arg = id
	}

	query := s.db.Rebind(`SELECT ` + articleColumns + ` FROM articles WHERE ` + string(field) + ` = ?`)

	var article domain.Article
	err := s.db.GetContext(ctx, &article, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStore) Insert(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	created := *article
	created.CreatedAt = s.now().UTC()

	query := s.db.Rebind(`
		INSERT INTO articles (title, slug, category, excerpt, content, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := s.db.QueryRowxContext(ctx, query,
		created.Title,
		created.Slug,
		created.Category,
		created.Excerpt,
		created.Content,
		created.ImageURL,
		created.CreatedAt,
	).Scan(&created.ID)

	if isUniqueViolation(err) {
		return nil, domain.ErrSlugTaken
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *ArticleStore) Update(ctx context.Context, id int64, patch domain.ArticlePatch) error {
	set := newSetList()
	set.add("title", patch.Title)
	set.add("category", patch.Category)
	set.add("excerpt", patch.Excerpt)
	set.add("content", patch.Content)
	set.add("image_url", patch.ImageURL)

	return updateRow(ctx, s.db, "articles", id, set)
}

func (s *ArticleStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM articles WHERE id = ?`), id)
	return expectOneRow(res, err)
}

func orderClause(order domain.Order) string {
	return fmt.Sprintf("ORDER BY %s %s, id %s", order.Column, order.Direction(), order.Direction())
}

// setList accumulates the SET assignments of a partial update.
type setList struct {
	columns []string
	args    []any
}

func newSetList() *setList {
	return &setList{}
}

func (l *setList) add(column string, value *string) {
	if value == nil {
		return
	}
	l.columns = append(l.columns, column+" = ?")
	l.args = append(l.args, *value)
}

func updateRow(ctx context.Context, db *sqlx.DB, table string, id int64, set *setList) error {
	if len(set.columns) == 0 {
		var n int
		err := db.GetContext(ctx, &n, db.Rebind(`SELECT COUNT(*) FROM `+table+` WHERE id = ?`), id)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	}

	query := db.Rebind(`UPDATE ` + table + ` SET ` + strings.Join(set.columns, ", ") + ` WHERE id = ?`)
	res, err := db.ExecContext(ctx, query, append(set.args, id)...)
	return expectOneRow(res, err)
}

func expectOneRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
