package domain

import "time"

// Podcast is a video entry. The link is stored in audio_url, the column name
// used by the hosted schema.
type Podcast struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Duration    string    `db:"duration" json:"duration"`
	VideoURL    string    `db:"audio_url" json:"audio_url"`
	ImageURL    *string   `db:"image_url" json:"image_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type PodcastPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	VideoURL    *string `json:"audio_url,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type PodcastInput struct {
	Title       string
	Description string
	Duration    string
	VideoURL    string
	ImageURL    string
}

func (p Podcast) Image(placeholder string) string {
	if p.ImageURL == nil || *p.ImageURL == "" {
		return placeholder
	}
	return *p.ImageURL
}
