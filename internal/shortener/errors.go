package shortener

import "errors"

var (
	// ErrNotFound is returned when a hash is absent or its link has expired.
	ErrNotFound = errors.New("short link not found")

	// ErrDuplicate is returned by Repository.Create when a live link already owns the hash.
	ErrDuplicate = errors.New("short link hash already taken")

	// ErrExhausted is returned when a configured generation guard is hit.
	ErrExhausted = errors.New("hash generation exhausted")

	// ErrInvalidURL is returned when the target URL is missing or malformed.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidLength is returned when a hash of length < 1 is requested.
	ErrInvalidLength = errors.New("invalid hash length")

	errCollision = errors.New("hash collision")
)
