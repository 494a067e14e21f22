package model

import "time"

// VisitMarkerPageLoad is the fixed sentinel recorded with every visit
// event to mark a full page load.
const VisitMarkerPageLoad = "yes"

// OriginUnknown is recorded when the caller's network identifier could
// not be determined.
const OriginUnknown = "unknown"

// VisitEvent is one append-only page-load record for a tenant.
type VisitEvent struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	SourceMarker string    `json:"source_marker"`
	Origin       string    `json:"origin"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// DailyVisits is one bucket of the gap-free daily series. Day is the
// bucket date in the canonical reporting time zone, formatted YYYY-MM-DD.
type DailyVisits struct {
	Day          string `json:"date"`
	Visits       int64  `json:"visits"`
	UniqueVisits int64  `json:"unique_visits"`
}

// Enquiry is one append-only form submission for a tenant. Contact and
// Body are free text; either may be empty if the submission was malformed.
type Enquiry struct {
	ID         int64     `json:"id"`
	Slug       string    `json:"slug"`
	Contact    string    `json:"contact"`
	Body       string    `json:"body"`
	OccurredAt time.Time `json:"occurred_at"`
}
