package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/gotrue-go"

	"newsroom/internal/domain"
)

// Authenticator delegates editor sign-in to the project's GoTrue service. The
// access token it issues is the session token kept in the editor's cookie.
type Authenticator struct {
	auth gotrue.Client
}

func NewAuthenticator(client *Client) *Authenticator {
	return &Authenticator{auth: client.sdk.Auth}
}

func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := a.auth.SignInWithEmailPassword(strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	session := &domain.Session{
		Token:  resp.AccessToken,
		UserID: resp.User.ID.String(),
		Email:  resp.User.Email,
	}
	if resp.ExpiresAt > 0 {
		session.ExpiresAt = time.Unix(int64(resp.ExpiresAt), 0).UTC()
	} else if resp.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().UTC().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return session, nil
}

func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.auth.WithToken(token).Logout(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// CurrentSession asks GoTrue who owns the token. Any rejection, including an
// expired token, means there is no session.
func (a *Authenticator) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := a.auth.WithToken(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoSession, err)
	}

	return &domain.Session{
		Token:  token,
		UserID: user.ID.String(),
		Email:  user.Email,
	}, nil
}
