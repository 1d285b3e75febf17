package analytics

import "time"

const (
	TopicLinkCreating = "link.creating"
	TopicLinkCreated  = "link.created"
	TopicLinkResolved = "link.resolved"
)

// LinkCreatingEvent mirrors a creating notification: the fields about to be persisted.
type LinkCreatingEvent struct {
	Entity       string     `json:"entity"`
	Hash         string     `json:"hash"`
	URL          string     `json:"url"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	Expires      bool       `json:"expires"`
	RelationType string     `json:"relationType,omitempty"`
	RelationID   *int64     `json:"relationId,omitempty"`
	ObservedAt   time.Time  `json:"observedAt"`
}

// LinkCreatedEvent represents an event emitted when a link is shortened.
type LinkCreatedEvent struct {
	Hash         string     `json:"hash"`
	URL          string     `json:"url"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	RelationType string     `json:"relationType,omitempty"`
	RelationID   *int64     `json:"relationId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ClientIP     string     `json:"clientIp"`
	UserAgent    string     `json:"userAgent"`
}

// LinkResolvedEvent represents an event emitted when a hash is resolved to its URL.
type LinkResolvedEvent struct {
	Hash       string    `json:"hash"`
	ResolvedAt time.Time `json:"resolvedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}
