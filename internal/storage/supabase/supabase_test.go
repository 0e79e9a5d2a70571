package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"newsroom/internal/domain"
	"newsroom/internal/testutil"
)

const (
	editorID    = "6f1c2f4e-3b8a-4d4e-9f0a-2a1b3c4d5e6f"
	editorToken = "editor-access-token"
)

// fakeProject answers the subset of PostgREST and GoTrue the gateway uses.
type fakeProject struct {
	mu       sync.Mutex
	nextID   int64
	articles []map[string]any
	podcasts []map[string]any
	clock    time.Time
}

func (f *fakeProject) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.URL.Path == "/rest/v1/articles":
		f.serveTable(w, r, &f.articles)
	case r.URL.Path == "/rest/v1/podcasts":
		f.serveTable(w, r, &f.podcasts)
	case r.URL.Path == "/auth/v1/token":
		f.serveToken(w, r)
	case r.URL.Path == "/auth/v1/user":
		if r.Header.Get("Authorization") != "Bearer "+editorToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 401, "msg": "invalid JWT"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": editorID, "email": "editor@example.com"})
	case r.URL.Path == "/auth/v1/logout":
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeProject) serveToken(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&creds)

	if creds.Email != "editor@example.com" || creds.Password != "s3cret" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  editorToken,
		"token_type":    "bearer",
		"expires_in":    3600,
		"expires_at":    1717000000,
		"refresh_token": "refresh",
		"user":          map[string]any{"id": editorID, "email": "editor@example.com"},
	})
}

func (f *fakeProject) serveTable(w http.ResponseWriter, r *http.Request, rows *[]map[string]any) {
	filters := map[string]string{}
	for key, values := range r.URL.Query() {
		if v, ok := strings.CutPrefix(values[0], "eq."); ok {
			filters[key] = v
		}
	}

	switch r.Method {
	case http.MethodGet:
		out := matching(*rows, filters)
		if order := r.URL.Query().Get("order"); order != "" {
			parts := strings.Split(order, ".")
			desc := len(parts) > 1 && parts[1] == "desc"
			sort.SliceStable(out, func(i, j int) bool {
				less := compare(out[i][parts[0]], out[j][parts[0]])
				if desc {
					return less > 0
				}
				return less < 0
			})
		}
		if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit < len(out) {
			out = out[:limit]
		}
		writeJSON(w, http.StatusOK, out)

	case http.MethodPost:
		var row map[string]any
		_ = json.NewDecoder(r.Body).Decode(&row)
		if slug, ok := row["slug"]; ok && len(matching(*rows, map[string]string{"slug": slug.(string)})) > 0 {
			writeJSON(w, http.StatusConflict, map[string]any{
				"code":    "23505",
				"message": `duplicate key value violates unique constraint "articles_slug_key"`,
			})
			return
		}
		f.nextID++
		f.clock = f.clock.Add(time.Minute)
		row["id"] = f.nextID
		row["created_at"] = f.clock.Format(time.RFC3339)
		*rows = append(*rows, row)
		writeJSON(w, http.StatusCreated, []map[string]any{row})

	case http.MethodPatch:
		var patch map[string]any
		_ = json.NewDecoder(r.Body).Decode(&patch)
		out := matching(*rows, filters)
		for _, row := range out {
			for k, v := range patch {
				row[k] = v
			}
		}
		writeJSON(w, http.StatusOK, out)

	case http.MethodDelete:
		out := matching(*rows, filters)
		kept := (*rows)[:0]
		for _, row := range *rows {
			if !contains(out, row) {
				kept = append(kept, row)
			}
		}
		*rows = kept
		writeJSON(w, http.StatusOK, out)
	}
}

func matching(rows []map[string]any, filters map[string]string) []map[string]any {
	out := []map[string]any{}
	for _, row := range rows {
		ok := true
		for k, v := range filters {
			if toString(row[k]) != v {
				ok = false
			}
		}
		if ok {
			out = append(out, row)
		}
	}
	return out
}

func contains(rows []map[string]any, row map[string]any) bool {
	for _, r := range rows {
		if r["id"] == row["id"] {
			return true
		}
	}
	return false
}

func compare(a, b any) int {
	return strings.Compare(toString(a), toString(b))
}

func toString(v any) string {
	switch t := v.(type) {
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatInt(int64(t), 10)
	case string:
		return t
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type SupabaseGatewaySuite struct {
	suite.Suite
	ctx      context.Context
	server   *httptest.Server
	articles *ArticleStore
	podcasts *PodcastStore
	auth     *Authenticator
}

func (s *SupabaseGatewaySuite) SetupTest() {
	s.ctx = context.Background()
	s.server = httptest.NewServer(&fakeProject{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})

	client, err := NewClient(Config{URL: s.server.URL, Key: "service-role-key"})
	s.Require().NoError(err)

	s.articles = NewArticleStore(client)
	s.podcasts = NewPodcastStore(client)
	s.auth = NewAuthenticator(client)
}

func (s *SupabaseGatewaySuite) TearDownTest() {
	s.server.Close()
}

func TestSupabaseGatewaySuite(t *testing.T) {
	suite.Run(t, new(SupabaseGatewaySuite))
}

func (s *SupabaseGatewaySuite) TestNewClient_RequiresCredentials() {
	_, err := NewClient(Config{URL: s.server.URL})
	s.Error(err)
}

func (s *SupabaseGatewaySuite) TestArticles_InsertListGet() {
	first, err := s.articles.Insert(s.ctx, &domain.Article{Title: "Premier", Slug: "premier", Category: "Culture"})
	s.Require().NoError(err)
	s.Equal(int64(1), first.ID)
	s.False(first.CreatedAt.IsZero())

	_, err = s.articles.Insert(s.ctx, &domain.Article{
		Title:    "Second",
		Slug:     "second",
		Category: "Sport",
		ImageURL: testutil.Ptr("https://example.com/a.jpg"),
	})
	s.Require().NoError(err)

	list, err := s.articles.List(s.ctx, domain.NewestFirst)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("second", list[0].Slug)
	s.Equal("premier", list[1].Slug)

	sport, err := s.articles.ListByCategory(s.ctx, "Sport", domain.NewestFirst)
	s.Require().NoError(err)
	s.Require().Len(sport, 1)
	s.Equal("https://example.com/a.jpg", *sport[0].ImageURL)

	got, err := s.articles.GetBy(s.ctx, domain.FieldSlug, "premier")
	s.Require().NoError(err)
	s.Equal(first.ID, got.ID)

	_, err = s.articles.GetBy(s.ctx, domain.FieldSlug, "absent")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *SupabaseGatewaySuite) TestArticles_DuplicateSlug() {
	_, err := s.articles.Insert(s.ctx, &domain.Article{Title: "A", Slug: "a", Category: "Sport"})
	s.Require().NoError(err)

	_, err = s.articles.Insert(s.ctx, &domain.Article{Title: "A", Slug: "a", Category: "Sport"})
	s.ErrorIs(err, domain.ErrSlugTaken)
}

func (s *SupabaseGatewaySuite) TestArticles_UpdateDelete() {
	a, err := s.articles.Insert(s.ctx, &domain.Article{Title: "Avant", Slug: "avant", Category: "Sport"})
	s.Require().NoError(err)

	s.Require().NoError(s.articles.Update(s.ctx, a.ID, domain.ArticlePatch{Title: testutil.Ptr("Apres")}))
	got, err := s.articles.GetBy(s.ctx, domain.FieldID, strconv.FormatInt(a.ID, 10))
	s.Require().NoError(err)
	s.Equal("Apres", got.Title)
	s.Equal("avant", got.Slug)

	s.ErrorIs(s.articles.Update(s.ctx, 99, domain.ArticlePatch{Title: testutil.Ptr("x")}), domain.ErrNotFound)
	s.ErrorIs(s.articles.Update(s.ctx, 99, domain.ArticlePatch{}), domain.ErrNotFound)

	s.Require().NoError(s.articles.Delete(s.ctx, a.ID))
	s.ErrorIs(s.articles.Delete(s.ctx, a.ID), domain.ErrNotFound)
}

func (s *SupabaseGatewaySuite) TestArticles_CancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.articles.List(ctx, domain.NewestFirst)
	s.ErrorIs(err, context.Canceled)
}

func (s *SupabaseGatewaySuite) TestPodcasts_Lifecycle() {
	p, err := s.podcasts.Insert(s.ctx, &domain.Podcast{
		Title:       "Entretien",
		Description: "Long format",
		Duration:    "30 min",
		VideoURL:    "https://youtu.be/dQw4w9WgXcQ",
	})
	s.Require().NoError(err)

	list, err := s.podcasts.List(s.ctx, domain.NewestFirst)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("https://youtu.be/dQw4w9WgXcQ", list[0].VideoURL)

	id := strconv.FormatInt(p.ID, 10)
	s.Require().NoError(s.podcasts.Update(s.ctx, p.ID, domain.PodcastPatch{Duration: testutil.Ptr("45 min")}))
	got, err := s.podcasts.GetBy(s.ctx, domain.FieldID, id)
	s.Require().NoError(err)
	s.Equal("45 min", got.Duration)

	s.Require().NoError(s.podcasts.Delete(s.ctx, p.ID))
	_, err = s.podcasts.GetBy(s.ctx, domain.FieldID, id)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *SupabaseGatewaySuite) TestAuth_SignIn() {
	session, err := s.auth.SignIn(s.ctx, "editor@example.com", "s3cret")
	s.Require().NoError(err)
	s.Equal(editorToken, session.Token)
	s.Equal(editorID, session.UserID)
	s.Equal(time.Unix(1717000000, 0).UTC(), session.ExpiresAt)
}

func (s *SupabaseGatewaySuite) TestAuth_SignInRejected() {
	_, err := s.auth.SignIn(s.ctx, "editor@example.com", "wrong")
	s.ErrorIs(err, domain.ErrInvalidCredentials)
}

func (s *SupabaseGatewaySuite) TestAuth_CurrentSession() {
	session, err := s.auth.CurrentSession(s.ctx, editorToken)
	s.Require().NoError(err)
	s.Equal("editor@example.com", session.Email)

	_, err = s.auth.CurrentSession(s.ctx, "stale")
	s.ErrorIs(err, domain.ErrNoSession)

	_, err = s.auth.CurrentSession(s.ctx, "")
	s.ErrorIs(err, domain.ErrNoSession)
}

func (s *SupabaseGatewaySuite) TestAuth_SignOut() {
	s.NoError(s.auth.SignOut(s.ctx, editorToken))
	s.NoError(s.auth.SignOut(s.ctx, ""))
}
