package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/anuranjan87/7wink/internal/model"
	"github.com/anuranjan87/7wink/internal/store"
)

// MockRegistryStore is a mock implementation of RegistryStore
type MockRegistryStore struct {
	mock.Mock
}

func (m *MockRegistryStore) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockRegistryStore) GetTenant(ctx context.Context, slug string) (*model.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tenant), args.Error(1)
}

func (m *MockRegistryStore) ListTenants(ctx context.Context) ([]*model.Tenant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.Tenant), args.Error(1)
}

func (m *MockRegistryStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRegistryStore) Close() {
	m.Called()
}

// MockContentStore is a mock implementation of ContentStore
type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) Append(ctx context.Context, slug, shell, behavior, payload string) (*model.ContentVersion, error) {
	args := m.Called(ctx, slug, shell, behavior, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentVersion), args.Error(1)
}

func (m *MockContentStore) GetLatest(ctx context.Context, slug string) (*model.ContentVersion, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentVersion), args.Error(1)
}

func (m *MockContentStore) GetHistory(ctx context.Context, slug string) ([]*model.ContentVersion, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).([]*model.ContentVersion), args.Error(1)
}

func (m *MockContentStore) GetBySequence(ctx context.Context, slug string, sequence int64) (*model.ContentVersion, error) {
	args := m.Called(ctx, slug, sequence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentVersion), args.Error(1)
}

// MockVisitStore is a mock implementation of VisitStore
type MockVisitStore struct {
	mock.Mock
}

func (m *MockVisitStore) RecordVisit(ctx context.Context, slug, origin string) error {
	args := m.Called(ctx, slug, origin)
	return args.Error(0)
}

func (m *MockVisitStore) CountVisits(ctx context.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVisitStore) DailyCounts(ctx context.Context, slug string, loc *time.Location) ([]*model.DailyVisits, error) {
	args := m.Called(ctx, slug, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DailyVisits), args.Error(1)
}

// MockEnquiryStore is a mock implementation of EnquiryStore
type MockEnquiryStore struct {
	mock.Mock
}

func (m *MockEnquiryStore) RecordEnquiry(ctx context.Context, slug, contact, body string) error {
	args := m.Called(ctx, slug, contact, body)
	return args.Error(0)
}

func (m *MockEnquiryStore) ListEnquiries(ctx context.Context, slug string) ([]*model.Enquiry, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).([]*model.Enquiry), args.Error(1)
}

// MockTemplateStore is a mock implementation of TemplateStore
type MockTemplateStore struct {
	mock.Mock
}

func (m *MockTemplateStore) ListTemplates(ctx context.Context) ([]*model.Template, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.Template), args.Error(1)
}

func (m *MockTemplateStore) GetTemplate(ctx context.Context, id int64) (*model.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

// MockRenderCache is a mock implementation of RenderCache
type MockRenderCache struct {
	mock.Mock
}

func (m *MockRenderCache) Get(ctx context.Context, slug string) (string, error) {
	args := m.Called(ctx, slug)
	return args.String(0), args.Error(1)
}

func (m *MockRenderCache) Set(ctx context.Context, slug, document string, ttl time.Duration) error {
	args := m.Called(ctx, slug, document, ttl)
	return args.Error(0)
}

func (m *MockRenderCache) Invalidate(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockRenderCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRenderCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// noopRenderCache never holds anything. It keeps tests that do not care
// about the render path from having to set mock expectations for it.
type noopRenderCache struct{}

func (noopRenderCache) Get(ctx context.Context, slug string) (string, error) {
	return "", store.ErrNotFound
}

func (noopRenderCache) Set(ctx context.Context, slug, document string, ttl time.Duration) error {
	return nil
}

func (noopRenderCache) Invalidate(ctx context.Context, slug string) error { return nil }
func (noopRenderCache) Ping(ctx context.Context) error                    { return nil }
func (noopRenderCache) Close() error                                      { return nil }

// fakeContentStore is an in-memory ContentStore honoring the append-only
// contract: per-tenant monotonic sequences assigned under a lock.
type fakeContentStore struct {
	mu       sync.Mutex
	lastSeq  map[string]int64
	versions map[string][]*model.ContentVersion
	nextID   int64
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{
		lastSeq:  make(map[string]int64),
		versions: make(map[string][]*model.ContentVersion),
	}
}

func (f *fakeContentStore) Append(ctx context.Context, slug, shell, behavior, payload string) (*model.ContentVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastSeq[slug]++
	f.nextID++
	version := &model.ContentVersion{
		ID:        f.nextID,
		Slug:      slug,
		Sequence:  f.lastSeq[slug],
		Shell:     shell,
		Behavior:  behavior,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	f.versions[slug] = append(f.versions[slug], version)
	return version, nil
}

func (f *fakeContentStore) GetLatest(ctx context.Context, slug string) (*model.ContentVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	history := f.versions[slug]
	if len(history) == 0 {
		return nil, store.ErrVersionNotFound
	}
	return history[len(history)-1], nil
}

func (f *fakeContentStore) GetHistory(ctx context.Context, slug string) ([]*model.ContentVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	history := f.versions[slug]
	out := make([]*model.ContentVersion, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

func (f *fakeContentStore) GetBySequence(ctx context.Context, slug string, sequence int64) (*model.ContentVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, version := range f.versions[slug] {
		if version.Sequence == sequence {
			return version, nil
		}
	}
	return nil, store.ErrVersionNotFound
}
