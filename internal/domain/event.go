package domain

import "time"

type EventAction string

const (
	ActionCreated EventAction = "created"
	ActionUpdated EventAction = "updated"
	ActionDeleted EventAction = "deleted"
)

type RecordKind string

const (
	KindArticle RecordKind = "article"
	KindPodcast RecordKind = "podcast"
)

// ContentEvent announces an editor change to one record.
type ContentEvent struct {
	Action    EventAction `json:"action"`
	Kind      RecordKind  `json:"kind"`
	ID        int64       `json:"id"`
	Slug      string      `json:"slug,omitempty"`
	Title     string      `json:"title"`
	Timestamp time.Time   `json:"timestamp"`
}
