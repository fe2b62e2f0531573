package types

import "time"

// DateTime wraps a time.Time struct, allowing for improved dateTime JSON compatibility.
type DateTime struct {
	time.Time
}

// NewDateTime creates a new DateTime, embedding a time.Time struct.
func NewDateTime(t time.Time) *DateTime {
	return &DateTime{Time: t}
}
