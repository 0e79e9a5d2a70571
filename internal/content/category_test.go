package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tagged struct {
	id  int
	cat string
}

func tagOf(t tagged) string { return t.cat }

func TestDecodeCategory(t *testing.T) {
	assert.Equal(t, "Économie", DecodeCategory("%C3%89conomie"))
	assert.Equal(t, "Chroniques d’experts", DecodeCategory("Chroniques%20d%E2%80%99experts"))
	assert.Equal(t, "Sport", DecodeCategory("Sport"))
	assert.Equal(t, "100%", DecodeCategory("100%"), "malformed escape keeps the raw token")
	assert.Equal(t, "\u00c9conomie", DecodeCategory("E\u0301conomie"), "decomposed accent is composed")
}

func TestFilterByCategory(t *testing.T) {
	items := []tagged{
		{1, "Sport"},
		{2, "Économie"},
		{3, "Sport"},
		{4, "Culture"},
	}

	t.Run("sentinel returns everything in order", func(t *testing.T) {
		assert.Equal(t, items, FilterByCategory(items, "Tout", "Tout", tagOf))
	})

	t.Run("empty token returns everything", func(t *testing.T) {
		assert.Equal(t, items, FilterByCategory(items, "", "Tout", tagOf))
	})

	t.Run("exact match", func(t *testing.T) {
		got := FilterByCategory(items, "Sport", "Tout", tagOf)
		assert.Equal(t, []tagged{{1, "Sport"}, {3, "Sport"}}, got)
	})

	t.Run("encoded token", func(t *testing.T) {
		got := FilterByCategory(items, "%C3%89conomie", "Tout", tagOf)
		assert.Equal(t, []tagged{{2, "Économie"}}, got)
	})

	t.Run("no partial matching", func(t *testing.T) {
		assert.Empty(t, FilterByCategory(items, "Spo", "Tout", tagOf))
		assert.Empty(t, FilterByCategory(items, "sport", "Tout", tagOf))
	})

	t.Run("unknown category is empty, not nil", func(t *testing.T) {
		got := FilterByCategory(items, "Politique", "Tout", tagOf)
		assert.NotNil(t, got)
		assert.Len(t, got, 0)
	})
}

func TestCatalog(t *testing.T) {
	c := Catalog{
		All: "Tout",
		Categories: []Category{
			{Name: "Sport"},
			{Name: "Villes et communes africaines", Label: "Villes et Communes"},
		},
	}

	assert.True(t, c.Contains("Sport"))
	assert.False(t, c.Contains("Tout"))
	assert.Equal(t, []string{"Sport", "Villes et communes africaines"}, c.Names())
	assert.Equal(t, "Sport", c.Categories[0].DisplayName())
	assert.Equal(t, "Villes et Communes", c.Categories[1].DisplayName())
}
