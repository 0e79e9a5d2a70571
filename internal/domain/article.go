package domain

import "time"

type Article struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Slug      string    `db:"slug" json:"slug"`
	Category  string    `db:"category" json:"category"`
	Excerpt   string    `db:"excerpt" json:"excerpt"`
	Content   string    `db:"content" json:"content"`
	ImageURL  *string   `db:"image_url" json:"image_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ArticlePatch is a partial update. Nil fields are left untouched; the slug is
// derived once at creation and cannot be patched.
type ArticlePatch struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	Excerpt  *string `json:"excerpt,omitempty"`
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// ArticleInput is what the editor submits from the article form.
type ArticleInput struct {
	Title    string
	Category string
	Excerpt  string
	Content  string
	ImageURL string
}

func (a Article) Image(placeholder string) string {
	if a.ImageURL == nil || *a.ImageURL == "" {
		return placeholder
	}
	return *a.ImageURL
}
