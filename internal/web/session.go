package web

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "newsroom_session"
	tokenKey    = "token"
	expiresKey  = "expires"

	flashSuccess = "success"
	flashError   = "error"
)

// SessionManager keeps the editor's auth token and one-shot banner messages in
// a signed and encrypted cookie. The cookie never outlives the token it carries.
type SessionManager struct {
	store *sessions.CookieStore
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionManager(secret string, secure bool, ttl time.Duration) *SessionManager {
	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))

	store := sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	return &SessionManager{store: store, ttl: ttl, now: time.Now}
}

// get never fails: a cookie that no longer decodes (rotated secret) yields a
// fresh session that overwrites it on save.
func (m *SessionManager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, sessionName)
	return s
}

// Token returns the stored auth token, or "" once the token has expired.
func (m *SessionManager) Token(r *http.Request) string {
	s := m.get(r)
	token, _ := s.Values[tokenKey].(string)
	if exp, ok := s.Values[expiresKey].(int64); ok && !m.now().Before(time.Unix(exp, 0)) {
		return ""
	}
	return token
}

// SetToken stores the token. A non-zero expiresAt caps the cookie lifetime.
func (m *SessionManager) SetToken(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) error {
	s := m.get(r)
	s.Values[tokenKey] = token
	if expiresAt.IsZero() {
		delete(s.Values, expiresKey)
	} else {
		s.Values[expiresKey] = expiresAt.Unix()
	}
	return m.save(w, r, s)
}

func (m *SessionManager) ClearToken(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	delete(s.Values, tokenKey)
	delete(s.Values, expiresKey)
	return m.save(w, r, s)
}

func (m *SessionManager) Flash(w http.ResponseWriter, r *http.Request, kind, message string) error {
	s := m.get(r)
	s.AddFlash(message, kind)
	return m.save(w, r, s)
}

// save writes the cookie with a max age bounded by the token expiry.
func (m *SessionManager) save(w http.ResponseWriter, r *http.Request, s *sessions.Session) error {
	if exp, ok := s.Values[expiresKey].(int64); ok {
		left := time.Unix(exp, 0).Sub(m.now())
		if m.ttl > 0 && left > m.ttl {
			left = m.ttl
		}
		if left < time.Second {
			s.Options.MaxAge = -1
		} else {
			s.Options.MaxAge = int(left.Seconds())
		}
	}
	return s.Save(r, w)
}

// Flashes pops the pending banner messages of both kinds.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) (success, failure []string) {
	s := m.get(r)
	success = flashStrings(s.Flashes(flashSuccess))
	failure = flashStrings(s.Flashes(flashError))
	if len(success)+len(failure) > 0 {
		_ = m.save(w, r, s)
	}
	return success, failure
}

func flashStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
