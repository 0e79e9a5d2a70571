package domain

import "time"

// Session is the editor's authenticated session as issued by the auth backend.
// Token is opaque to the application.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
