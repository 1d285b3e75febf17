package shortener

import "time"

// DefaultEntityName names the logical entity whose observers receive creating notifications.
const DefaultEntityName = "ShortLink"

// Hash is a short random identifier naming a stored URL. It is not a digest.
type Hash string

// ShortLink is a persisted hash -> URL mapping.
type ShortLink struct {
	ID           int64
	Hash         Hash
	URL          string
	ExpiresAt    *time.Time // nil: never expires
	Expires      bool
	RelationType string
	RelationID   *int64
	CreatedAt    time.Time
}

// IsExpiredAt reports whether the link carries an expiry at or before now.
func (l *ShortLink) IsExpiredAt(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// HasRelation reports whether the link is attached to an external entity.
func (l *ShortLink) HasRelation() bool {
	return l.RelationType != "" && l.RelationID != nil
}

// Fields is the record handed to observers and to Repository.Create.
type Fields struct {
	URL          string     `json:"url"`
	Hash         Hash       `json:"hash"`
	ExpiresAt    *time.Time `json:"expires_at"`
	Expires      bool       `json:"expires"`
	RelationType string     `json:"relation_type,omitempty"`
	RelationID   *int64     `json:"relation_id,omitempty"`
}

// Link builds the record a repository persists for these fields.
func (f Fields) Link(id int64, createdAt time.Time) *ShortLink {
	return &ShortLink{
		ID:           id,
		Hash:         f.Hash,
		URL:          f.URL,
		ExpiresAt:    f.ExpiresAt,
		Expires:      f.Expires,
		RelationType: f.RelationType,
		RelationID:   f.RelationID,
		CreatedAt:    createdAt,
	}
}
