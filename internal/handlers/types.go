package handlers

import "time"

// CreateLinkRequest is the request body for creating a short link.
type CreateLinkRequest struct {
	Body struct {
		URL          string     `doc:"The URL to shorten"                        example:"https://example.com/very/long/path" json:"url"                    minLength:"1"`
		ExpiresAt    *time.Time `doc:"When the link stops resolving"             json:"expiresAt,omitempty"`
		RelationType string     `doc:"Type of the entity the link belongs to"    example:"campaign"                           json:"relationType,omitempty"`
		RelationID   string     `doc:"Numeric id of the related entity"        example:"42"                                 json:"relationId,omitempty"`
	}
}

// LinkBody describes a persisted short link.
type LinkBody struct {
	Hash         string     `doc:"The short hash"                 example:"aZ3k9"                              json:"hash"`
	ShortURL     string     `doc:"The full short URL"             example:"http://localhost:8888/aZ3k9"        json:"shortUrl"`
	URL          string     `doc:"The original URL"               example:"https://example.com/very/long/path" json:"url"`
	ExpiresAt    *time.Time `doc:"Expiry, absent for permanent links" json:"expiresAt,omitempty"`
	RelationType string     `doc:"Related entity type"            json:"relationType,omitempty"`
	RelationID   *int64     `doc:"Related entity id"              json:"relationId,omitempty"`
	CreatedAt    time.Time  `doc:"Creation time"                  json:"createdAt"`
}

// CreateLinkResponse is the response for a successfully created short link.
type CreateLinkResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body LinkBody
}

// HashRequest addresses a link by its hash.
type HashRequest struct {
	Hash string `doc:"The short hash" example:"aZ3k9" path:"hash"`
}

// RedirectResponse redirects the client to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `header:"Location"`
	}
}

// GetLinkResponse returns the metadata of a live link.
type GetLinkResponse struct {
	Body LinkBody
}
