package model

import "time"

// ContentVersion is one immutable snapshot of a tenant's three content
// layers. Versions are only ever appended; the live version is the one
// with the highest (created_at, sequence).
type ContentVersion struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Sequence  int64     `json:"sequence"`
	Shell     string    `json:"shell"`
	Behavior  string    `json:"behavior"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}
