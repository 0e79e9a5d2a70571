package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/domain"
)

// Authenticator issues editor sessions from the admins table. It plays the
// part of the managed auth service when the site runs on its own database.
type Authenticator struct {
	db   *sqlx.DB
	tx   *TransactionManager
	ttl  time.Duration
	cost int
	now  func() time.Time
}

func NewAuthenticator(db *sqlx.DB, ttl time.Duration) *Authenticator {
	return &Authenticator{
		db:   db,
		tx:   NewTransactionManager(db),
		ttl:  ttl,
		cost: bcrypt.DefaultCost,
		now:  time.Now,
	}
}

type adminRow struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

type sessionRow struct {
	Token     string    `db:"token"`
	AdminID   int64     `db:"admin_id"`
	Email     string    `db:"email"`
	ExpiresAt time.Time `db:"expires_at"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAdmin stores an editor account, replacing the password of an existing one.
func (a *Authenticator) CreateAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return &domain.ValidationError{Fields: []string{"email", "password"}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	query := a.db.Rebind(`
		INSERT INTO admins (email, password_hash, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash`)

	_, err = a.db.ExecContext(ctx, query, email, string(hash), a.now().UTC())
	return err
}

func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	var session *domain.Session

	err := a.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, a.db)

		var admin adminRow
		err := sqlx.GetContext(txCtx, exec, &admin,
			exec.Rebind(`SELECT id, email, password_hash FROM admins WHERE email = ?`),
			normalizeEmail(email),
		)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInvalidCredentials
		}
		if err != nil {
			return fmt.Errorf("lookup admin: %w", err)
		}

		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			return domain.ErrInvalidCredentials
		}

		now := a.now().UTC()
		if _, err := exec.ExecContext(txCtx,
			exec.Rebind(`DELETE FROM admin_sessions WHERE admin_id = ? AND expires_at < ?`),
			admin.ID, now,
		); err != nil {
			return fmt.Errorf("purge sessions: %w", err)
		}

		s := &domain.Session{
			Token:     uuid.NewString(),
			UserID:    fmt.Sprint(admin.ID),
			Email:     admin.Email,
			ExpiresAt: now.Add(a.ttl),
		}
		if _, err := exec.ExecContext(txCtx,
			exec.Rebind(`INSERT INTO admin_sessions (token, admin_id, expires_at, created_at) VALUES (?, ?, ?, ?)`),
			s.Token, admin.ID, s.ExpiresAt, now,
		); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	_, err := a.db.ExecContext(ctx, a.db.Rebind(`DELETE FROM admin_sessions WHERE token = ?`), token)
	return err
}

func (a *Authenticator) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}

	var row sessionRow
	err := a.db.GetContext(ctx, &row, a.db.Rebind(`
		SELECT s.token, s.admin_id, a.email, s.expires_at
		FROM admin_sessions s
		INNER JOIN admins a ON a.id = s.admin_id
		WHERE s.token = ?`), token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		Token:     row.Token,
		UserID:    fmt.Sprint(row.AdminID),
		Email:     row.Email,
		ExpiresAt: row.ExpiresAt,
	}
	if session.Expired(a.now()) {
		_ = a.SignOut(ctx, token)
		return nil, domain.ErrNoSession
	}
	return session, nil
}
