package models

import "time"

// URL represents a shortened URL mapping and its click statistics.
type URL struct {
	// ID is the unique identifier for the mapping record.
	ID int64
	// ShortCode is the opaque token used as the redirect lookup key.
	ShortCode string
	// LongURL is the original, full-length URL the short code points to.
	LongURL string
	// Clicks tracks the number of times the short code has been resolved.
	Clicks int64
	// CreatedAt is the timestamp indicating when the mapping was created.
	CreatedAt time.Time
}
