package model

import (
	"regexp"
	"strings"
	"time"
)

// Tenant represents one registered site owner
type Tenant struct {
	Slug         string    `json:"slug"`
	LastSequence int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9_]`)

// NormalizeSlug lowercases the raw name and strips every character
// outside [a-z0-9_]. An empty result means the name is unusable.
func NormalizeSlug(rawName string) string {
	return slugStrip.ReplaceAllString(strings.ToLower(rawName), "")
}
