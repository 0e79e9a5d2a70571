package content

import (
	"net/url"

	"golang.org/x/text/unicode/norm"
)

type Category struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

// DisplayName is the navigation label, falling back to the stored name.
func (c Category) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// Catalog is the closed list of article categories plus the "show all" sentinel.
type Catalog struct {
	All        string
	Categories []Category
}

func (c Catalog) Contains(name string) bool {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return true
		}
	}
	return false
}

func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	return names
}

// DecodeCategory turns a query token into a category name: percent escapes are
// resolved and the result is put in NFC so decomposed accents still match.
func DecodeCategory(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	return norm.NFC.String(decoded)
}

// FilterByCategory keeps the items whose category equals the decoded token.
// The sentinel and the empty token return items unchanged.
func FilterByCategory[T any](items []T, token, sentinel string, category func(T) string) []T {
	name := DecodeCategory(token)
	if name == "" || name == sentinel {
		return items
	}

	out := make([]T, 0)
	for _, item := range items {
		if norm.NFC.String(category(item)) == name {
			out = append(out, item)
		}
	}
	return out
}
