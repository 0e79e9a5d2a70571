package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain"
	"newsroom/internal/storage/sqlstore"
)

func writeConfig(t *testing.T) (configPath, dbPath string) {
	t.Helper()
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "newsroom.db")
	configPath = filepath.Join(dir, "config.yaml")

	data := "backend: sqlite\nsqlite:\n  path: " + dbPath + "\nlog_level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(data), 0o600))
	return configPath, dbPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands_SQLiteBackend(t *testing.T) {
	configPath, dbPath := writeConfig(t)

	_, err := run(t, "-c", configPath, "migrate")
	require.NoError(t, err)

	out, err := run(t, "-c", configPath, "admin", "create", "--email", "redaction@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "redaction@example.com")

	out, err = run(t, "-c", configPath, "articles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No articles.")

	ctx := context.Background()
	db, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, dbPath)
	require.NoError(t, err)
	store := sqlstore.NewArticleStore(db)
	for _, a := range []domain.Article{
		{Title: "Les Lions en finale", Slug: "les-lions-en-finale", Category: "Sport", Excerpt: "e", Content: "c"},
		{Title: "Budget vote", Slug: "budget-vote", Category: "Politique", Excerpt: "e", Content: "c"},
	} {
		_, err := store.Insert(ctx, &a)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	out, err = run(t, "-c", configPath, "articles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "les-lions-en-finale")
	assert.Contains(t, out, "budget-vote")

	out, err = run(t, "-c", configPath, "articles", "list", "--category", "Sport")
	require.NoError(t, err)
	assert.Contains(t, out, "les-lions-en-finale")
	assert.NotContains(t, out, "budget-vote")

	out, err = run(t, "-c", configPath, "podcasts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No videos.")
}

func TestCommands_MissingConfig(t *testing.T) {
	_, err := run(t, "-c", filepath.Join(t.TempDir(), "absent.yaml"), "articles", "list")
	assert.ErrorContains(t, err, "read config file")
}

func TestAdminCreate_RejectedOnHostedBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "backend: supabase\nsupabase:\n  url: https://project.supabase.co\n  key: service-key\nlog_level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, err := run(t, "-c", path, "admin", "create", "--email", "a@b.c", "--password", "x")
	assert.ErrorContains(t, err, "auth dashboard")
}

func TestServe_RequiresSessionSecret(t *testing.T) {
	configPath, _ := writeConfig(t)

	_, err := run(t, "-c", configPath, "serve")
	assert.ErrorContains(t, err, "session_secret")
}

func TestRenderPodcasts(t *testing.T) {
	out := renderPodcasts([]domain.Podcast{
		{ID: 3, Title: "Grand entretien", Duration: "58:00", VideoURL: "https://youtu.be/dQw4w9WgXcQ", CreatedAt: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)},
		{ID: 2, Title: "Reportage", Duration: "12:45", VideoURL: "https://vimeo.com/1"},
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, strings.ToUpper(lines[1]), "YOUTUBE")
	assert.Contains(t, lines[3], "dQw4w9WgXcQ")
	assert.Contains(t, lines[3], "2024-05-02 09:30")
	assert.Contains(t, lines[4], "Reportage")
	assert.Contains(t, lines[4], "-")
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Equal(t, "", renderTable(nil, [][]string{{"x"}}, nil))
}
