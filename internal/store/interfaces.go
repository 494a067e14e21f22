package store

import (
	"context"
	"errors"
	"time"

	"github.com/anuranjan87/7wink/internal/model"
)

// ErrNotFound is returned by caches when a key is not present.
var ErrNotFound = errors.New("not found")

// Domain error taxonomy. Services and handlers match on these with
// errors.Is; stores wrap the underlying driver error where useful.
var (
	ErrInvalidName        = errors.New("name normalizes to an empty slug")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrTenantExists       = errors.New("tenant already exists")
	ErrVersionNotFound    = errors.New("content version not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// RegistryStore is the global tenant registry, the root of trust for
// whether a tenant's storage exists.
type RegistryStore interface {
	CreateTenant(ctx context.Context, tenant *model.Tenant) error
	GetTenant(ctx context.Context, slug string) (*model.Tenant, error)
	ListTenants(ctx context.Context) ([]*model.Tenant, error)

	Ping(ctx context.Context) error
	Close()
}

// ContentStore is the append-only versioned store of a tenant's three
// content layers.
type ContentStore interface {
	// Append writes a new version and assigns the next sequence number
	// atomically with respect to concurrent appends for the same tenant.
	Append(ctx context.Context, slug, shell, behavior, payload string) (*model.ContentVersion, error)
	// GetLatest returns the current version, or ErrVersionNotFound when
	// the tenant has no versions or was never registered.
	GetLatest(ctx context.Context, slug string) (*model.ContentVersion, error)
	// GetHistory returns all versions newest first.
	GetHistory(ctx context.Context, slug string) ([]*model.ContentVersion, error)
	// GetBySequence returns one version by its sequence number.
	GetBySequence(ctx context.Context, slug string, sequence int64) (*model.ContentVersion, error)
}

// VisitStore is the append-only visit-event ledger.
type VisitStore interface {
	RecordVisit(ctx context.Context, slug, origin string) error
	CountVisits(ctx context.Context, slug string) (int64, error)
	// DailyCounts returns sparse per-day totals in the given location,
	// oldest first. Days with no events are absent; gap filling is the
	// caller's job.
	DailyCounts(ctx context.Context, slug string, loc *time.Location) ([]*model.DailyVisits, error)
}

// EnquiryStore is the append-only enquiry ledger.
type EnquiryStore interface {
	RecordEnquiry(ctx context.Context, slug, contact, body string) error
	ListEnquiries(ctx context.Context, slug string) ([]*model.Enquiry, error)
}

// TemplateStore is the read-only shared template catalog.
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]*model.Template, error)
	GetTemplate(ctx context.Context, id int64) (*model.Template, error)
}

// TenantCache caches registry lookups keyed by slug so the hot read
// paths can skip the database.
type TenantCache interface {
	Get(ctx context.Context, slug string) (*model.Tenant, error)
	Set(ctx context.Context, slug string, tenant *model.Tenant, ttl time.Duration) error
	Delete(ctx context.Context, slug string) error
}

// RenderCache caches assembled documents keyed by slug so the public
// render path can skip assembly on warm reads.
type RenderCache interface {
	Get(ctx context.Context, slug string) (string, error)
	Set(ctx context.Context, slug, document string, ttl time.Duration) error
	Invalidate(ctx context.Context, slug string) error
	Ping(ctx context.Context) error
	Close() error
}
