package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
)

// InMemoryTenantCache implements TenantCache with a TTL map. It backs
// tenant-existence lookups on the render and enquiry paths.
type InMemoryTenantCache struct {
	entries map[string]*tenantEntry
	mu      sync.RWMutex
	maxSize int
	logger  *zap.Logger
}

type tenantEntry struct {
	tenant    *model.Tenant
	expiresAt time.Time
}

// NewInMemoryTenantCache creates a new in-memory tenant cache
func NewInMemoryTenantCache(maxSize int, logger *zap.Logger) TenantCache {
	cache := &InMemoryTenantCache{
		entries: make(map[string]*tenantEntry),
		maxSize: maxSize,
		logger:  logger,
	}

	// Start cleanup goroutine
	go cache.cleanup()

	return cache
}

// Get retrieves a cached tenant by slug
func (c *InMemoryTenantCache) Get(ctx context.Context, slug string) (*model.Tenant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[slug]
	if !exists {
		return nil, ErrNotFound
	}

	if time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}

	return entry.tenant, nil
}

// Set stores a tenant with TTL
func (c *InMemoryTenantCache) Set(ctx context.Context, slug string, tenant *model.Tenant, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Size-based eviction: prefer an expired entry, otherwise any entry
	if len(c.entries) >= c.maxSize {
		for k, v := range c.entries {
			if time.Now().After(v.expiresAt) {
				delete(c.entries, k)
				break
			}
		}
		if len(c.entries) >= c.maxSize {
			for k := range c.entries {
				delete(c.entries, k)
				break
			}
		}
	}

	c.entries[slug] = &tenantEntry{
		tenant:    tenant,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a tenant from the cache
func (c *InMemoryTenantCache) Delete(ctx context.Context, slug string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, slug)
	return nil
}

// cleanup periodically removes expired entries
func (c *InMemoryTenantCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for slug, entry := range c.entries {
			if now.After(entry.expiresAt) {
				delete(c.entries, slug)
			}
		}
		c.mu.Unlock()
	}
}

// Size returns the number of cached tenants
func (c *InMemoryTenantCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
