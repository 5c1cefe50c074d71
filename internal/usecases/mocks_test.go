package usecases_test

import (
	"context"
	"io"
	"sync"
	"time"

	"company-site.backend/internal/domain/entities"
	"company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock ResourceRepository
type MockResourceRepository[P entities.Resource] struct {
	mock.Mock
}

func (m *MockResourceRepository[P]) Create(ctx context.Context, item P) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockResourceRepository[P]) GetByID(ctx context.Context, id uuid.UUID) (P, error) {
	args := m.Called(ctx, id)
	return itemArg[P](args, 0), args.Error(1)
}

func (m *MockResourceRepository[P]) GetBySlug(ctx context.Context, slug string) (P, error) {
	args := m.Called(ctx, slug)
	return itemArg[P](args, 0), args.Error(1)
}

func (m *MockResourceRepository[P]) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceRepository[P]) List(ctx context.Context, q repositories.ListQuery) ([]P, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]P)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockResourceRepository[P]) Update(ctx context.Context, item P) (P, error) {
	args := m.Called(ctx, item)
	return itemArg[P](args, 0), args.Error(1)
}

func (m *MockResourceRepository[P]) UpdateStatus(ctx context.Context, id uuid.UUID, version int, status string, extra map[string]interface{}) (P, error) {
	args := m.Called(ctx, id, version, status, extra)
	return itemArg[P](args, 0), args.Error(1)
}

func (m *MockResourceRepository[P]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceRepository[P]) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[string]int64)
	return counts, args.Error(1)
}

func (m *MockResourceRepository[P]) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func itemArg[P any](args mock.Arguments, i int) P {
	item, _ := args.Get(i).(P)
	return item
}

// Mock BlogPostRepository
type MockBlogPostRepository struct {
	MockResourceRepository[*entities.BlogPost]
}

func (m *MockBlogPostRepository) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*entities.BlogPost, error) {
	args := m.Called(ctx, now, limit)
	posts, _ := args.Get(0).([]*entities.BlogPost)
	return posts, args.Error(1)
}

// Mock AdminUserRepository
type MockAdminUserRepository struct {
	mock.Mock
}

func (m *MockAdminUserRepository) Create(ctx context.Context, user *entities.AdminUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAdminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) GetByEmail(ctx context.Context, email string) (*entities.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockAdminUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// Mock ListCache
type MockListCache struct {
	mock.Mock
}

func (m *MockListCache) Load(ctx context.Context, resource string, query, dst interface{}) (string, bool, error) {
	args := m.Called(ctx, resource, query, dst)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockListCache) StoreAt(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockListCache) Invalidate(ctx context.Context, resource string) (string, error) {
	args := m.Called(ctx, resource)
	return args.String(0), args.Error(1)
}

// Mock SearchIndex
type MockSearchIndex struct {
	mock.Mock
}

func (m *MockSearchIndex) Index(ctx context.Context, doc entities.SearchDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockSearchIndex) Remove(ctx context.Context, kind entities.Kind, id uuid.UUID) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockSearchIndex) Search(ctx context.Context, query string, kinds []entities.Kind, limit int) ([]entities.SearchHit, error) {
	args := m.Called(ctx, query, kinds, limit)
	hits, _ := args.Get(0).([]entities.SearchHit)
	return hits, args.Error(1)
}

func (m *MockSearchIndex) Enabled() bool {
	return m.Called().Bool(0)
}

// Mock Uploader
type MockUploader struct {
	mock.Mock
	// Body holds what the last Upload call read.
	Body []byte
}

func (m *MockUploader) Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*storage.Object, error) {
	m.Body, _ = io.ReadAll(r)
	args := m.Called(ctx, folder, name, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// recordingRevalidator remembers every revalidated path.
type recordingRevalidator struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (r *recordingRevalidator) Revalidate(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return r.err
}

func (r *recordingRevalidator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
