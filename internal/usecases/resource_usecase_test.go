package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/usecases"
	"company-site.backend/pkg/content"
	"company-site.backend/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func newJobUsecase(repo *MockResourceRepository[*entities.Job], deps usecases.ResourceDeps) *usecases.ResourceUsecase[*entities.Job] {
	return usecases.NewResourceUsecase[*entities.Job](repo, func() *entities.Job { return &entities.Job{} }, deps)
}

func validJob() *entities.Job {
	return &entities.Job{
		Title:           "Senior Go Engineer",
		Description:     "Build the platform",
		Department:      "Engineering",
		Location:        "Remote",
		ExperienceLevel: "Senior",
		Status:          entities.JobOpen,
	}
}

func TestResourceUsecase_CreateValidationFailsBeforeStore(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})

	job := validJob()
	job.Department = "   "
	_, err := uc.Create(context.Background(), job)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Fields, "department")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResourceUsecase_CreateBlogPost(t *testing.T) {
	repo := new(MockBlogPostRepository)
	cache := new(MockListCache)
	index := new(MockSearchIndex)
	uow := new(MockUnitOfWork)
	rv := &recordingRevalidator{}

	uc := usecases.NewBlogPostUsecase(repo, usecases.ResourceDeps{
		UnitOfWork:  uow,
		Cache:       cache,
		Sanitizer:   content.NewSanitizer(),
		Index:       index,
		Revalidator: rv,
	})

	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	repo.On("SlugExists", mock.Anything, "my-awesome-post", uuid.Nil).Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.BlogPost")).Return(nil)
	cache.On("Invalidate", mock.Anything, "blog-posts").Return("2", nil)
	index.On("Enabled").Return(true)
	index.On("Index", mock.Anything, mock.MatchedBy(func(doc entities.SearchDocument) bool {
		return doc.Kind == entities.KindBlogPost && doc.Slug == "my-awesome-post"
	})).Return(nil)

	post, err := uc.Create(context.Background(), &entities.BlogPost{
		Title:   "My Awesome Post!",
		Content: "<p>Hello <script>alert(1)</script>world</p>",
		Author:  entities.Author{Name: "Ada"},
		Status:  entities.BlogPostPublished,
	})
	require.NoError(t, err)
	uc.Wait()

	assert.Equal(t, "my-awesome-post", post.Slug)
	assert.Equal(t, "1 min read", post.ReadTime)
	assert.NotContains(t, post.Content, "<script>")
	assert.True(t, post.PublishedAt.Valid)
	assert.ElementsMatch(t, []string{"/blog/my-awesome-post", "/blog"}, rv.Paths())
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	index.AssertExpectations(t)
}

func TestResourceUsecase_RevalidationFailureDoesNotFailSave(t *testing.T) {
	repo := new(MockBlogPostRepository)
	rv := &recordingRevalidator{err: errors.New("site down")}
	uc := usecases.NewBlogPostUsecase(repo, usecases.ResourceDeps{Revalidator: rv})

	repo.On("SlugExists", mock.Anything, "draft-post", uuid.Nil).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	post, err := uc.Create(context.Background(), &entities.BlogPost{
		Title:   "Draft post",
		Content: "words",
		Author:  entities.Author{Name: "Ada"},
	})
	require.NoError(t, err)
	uc.Wait()

	assert.Equal(t, entities.BlogPostDraft, post.Status)
	assert.Len(t, rv.Paths(), 2)
}

func TestResourceUsecase_CreateSlugConflict(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})
	repo.On("SlugExists", mock.Anything, "senior-go-engineer", uuid.Nil).Return(true, nil)

	_, err := uc.Create(context.Background(), validJob())

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Contains(t, appErr.Fields, "slug")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResourceUsecase_CreateDuplicateKeyBecomesSlugConflict(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})
	repo.On("SlugExists", mock.Anything, mock.Anything, uuid.Nil).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists)

	_, err := uc.Create(context.Background(), validJob())
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestResourceUsecase_CreateIgnoresClientRecordFields(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})
	repo.On("SlugExists", mock.Anything, mock.Anything, uuid.Nil).Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(j *entities.Job) bool {
		return j.ID == uuid.Nil && j.Version == 0
	})).Return(nil)

	job := validJob()
	job.ID = uuid.New()
	job.Version = 7
	_, err := uc.Create(context.Background(), job)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestResourceUsecase_UpdateVersionConflict(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})
	id := uuid.New()

	repo.On("SlugExists", mock.Anything, "senior-go-engineer", id).Return(false, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(j *entities.Job) bool {
		return j.ID == id && j.Version == 3
	})).Return(nil, domainerrors.ErrConflict)

	job := validJob()
	job.Version = 3
	_, err := uc.Update(context.Background(), id, job)

	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.Equal(t, http.StatusConflict, domainerrors.FromError(err).Status)
}

func TestResourceUsecase_UpdateReturnsStoredRecord(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	cache := new(MockListCache)
	uc := newJobUsecase(repo, usecases.ResourceDeps{Cache: cache})
	id := uuid.New()

	stored := validJob()
	stored.ID = id
	stored.Version = 2
	repo.On("SlugExists", mock.Anything, mock.Anything, id).Return(false, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(stored, nil)
	cache.On("Invalidate", mock.Anything, "jobs").Return("", errors.New("redis down"))

	got, err := uc.Update(context.Background(), id, validJob())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
}

func TestResourceUsecase_ListNormalizesAllFilterAndCaches(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	cache := new(MockListCache)
	uc := newJobUsecase(repo, usecases.ResourceDeps{Cache: cache})

	want := repositories.ListQuery{Search: "go", Page: 1, Limit: 10}
	cache.On("Load", mock.Anything, "jobs", want, mock.Anything).Return("cache:jobs:v0:abc", false, nil)
	cache.On("StoreAt", mock.Anything, "cache:jobs:v0:abc", mock.Anything).Return(nil)
	repo.On("List", mock.Anything, want).Return([]*entities.Job{validJob()}, int64(1), nil)

	all, err := uc.List(context.Background(), repositories.ListQuery{Search: " go ", Status: "all", Category: "ALL", Limit: 10})
	require.NoError(t, err)
	none, err := uc.List(context.Background(), repositories.ListQuery{Search: "go", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, all.Pagination, none.Pagination)
	assert.Len(t, all.Items, 1)
	assert.Equal(t, 1, all.Pagination.Pages)
	repo.AssertNumberOfCalls(t, "List", 2)
	cache.AssertNumberOfCalls(t, "StoreAt", 2)
}

func TestResourceUsecase_ListServesCacheHit(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	cache := new(MockListCache)
	uc := newJobUsecase(repo, usecases.ResourceDeps{Cache: cache})

	cache.On("Load", mock.Anything, "jobs", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			dst := args.Get(3).(*usecases.ListResult[*entities.Job])
			dst.Items = []*entities.Job{validJob()}
			dst.Pagination.Total = 1
		}).
		Return("cache:jobs:v0:abc", true, nil)

	res, err := uc.List(context.Background(), repositories.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Pagination.Total)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestResourceUsecase_ListWithoutCacheKeySkipsStore(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	cache := new(MockListCache)
	uc := newJobUsecase(repo, usecases.ResourceDeps{Cache: cache})

	cache.On("Load", mock.Anything, "jobs", mock.Anything, mock.Anything).Return("", false, errors.New("redis down"))
	repo.On("List", mock.Anything, mock.Anything).Return([]*entities.Job{validJob()}, int64(1), nil)

	res, err := uc.List(context.Background(), repositories.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	cache.AssertNotCalled(t, "StoreAt", mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceUsecase_ListReadAcrossWriteIsNotServedLater(t *testing.T) {
	srv := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))
	t.Cleanup(func() { redis.SetClient(nil) })

	cache := redis.NewQueryCache("cache", time.Minute)
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{Cache: cache})
	ctx := context.Background()

	old := validJob()
	old.Title = "old"
	fresh := validJob()
	fresh.Title = "fresh"

	// a write commits and invalidates while the first read is in flight
	repo.On("List", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			_, err := cache.Invalidate(ctx, "jobs")
			require.NoError(t, err)
		}).
		Return([]*entities.Job{old}, int64(1), nil).Once()
	repo.On("List", mock.Anything, mock.Anything).Return([]*entities.Job{fresh}, int64(1), nil).Once()

	first, err := uc.List(ctx, repositories.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "old", first.Items[0].Title)

	second, err := uc.List(ctx, repositories.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "fresh", second.Items[0].Title)

	third, err := uc.List(ctx, repositories.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "fresh", third.Items[0].Title)
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestResourceUsecase_ListError(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})
	repo.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("db down"))

	_, err := uc.List(context.Background(), repositories.ListQuery{})
	assert.Error(t, err)
}

func TestResourceUsecase_UpdateStatus(t *testing.T) {
	repo := new(MockResourceRepository[*entities.JobApplication])
	uc := usecases.NewResourceUsecase[*entities.JobApplication](repo, func() *entities.JobApplication { return &entities.JobApplication{} }, usecases.ResourceDeps{})
	id := uuid.New()

	app := validApplication()
	app.Record = entities.Record{ID: id, Version: 4}
	app.Status = entities.ApplicationPending
	repo.On("GetByID", mock.Anything, id).Return(app, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.JobApplication) bool {
		return a.Status == entities.ApplicationReviewing && a.AdminNotes.String == "Strong portfolio" && a.Version == 4
	})).Return(app, nil)

	notes := "  Strong portfolio "
	got, err := uc.UpdateStatus(context.Background(), id, usecases.StatusChange{Status: entities.ApplicationReviewing, AdminNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, entities.ApplicationReviewing, got.Status)
	repo.AssertExpectations(t)
}

func TestResourceUsecase_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})
	id := uuid.New()
	job := validJob()
	job.ID = id
	repo.On("GetByID", mock.Anything, id).Return(job, nil)

	_, err := uc.UpdateStatus(context.Background(), id, usecases.StatusChange{Status: "archived"})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "status")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResourceUsecase_UpdateStatusScheduledNeedsPublishDate(t *testing.T) {
	repo := new(MockBlogPostRepository)
	uc := usecases.NewBlogPostUsecase(repo, usecases.ResourceDeps{})
	id := uuid.New()
	draft := &entities.BlogPost{
		Record:  entities.Record{ID: id, Version: 1},
		Title:   "Launch notes",
		Slug:    "launch-notes",
		Content: "words",
		Author:  entities.Author{Name: "Ada"},
		Status:  entities.BlogPostDraft,
	}
	repo.On("GetByID", mock.Anything, id).Return(draft, nil)

	_, err := uc.UpdateStatus(context.Background(), id, usecases.StatusChange{Status: entities.BlogPostScheduled})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Fields, "publishedAt")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	results := uc.BulkStatus(context.Background(), []uuid.UUID{id}, entities.BlogPostScheduled)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResourceUsecase_UpdateStatusScheduledWithDate(t *testing.T) {
	repo := new(MockBlogPostRepository)
	uc := usecases.NewBlogPostUsecase(repo, usecases.ResourceDeps{})
	id := uuid.New()
	when := time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC)
	post := &entities.BlogPost{
		Record:      entities.Record{ID: id, Version: 1},
		Title:       "Launch notes",
		Slug:        "launch-notes",
		Content:     "words",
		Author:      entities.Author{Name: "Ada"},
		Status:      entities.BlogPostDraft,
		PublishedAt: null.TimeFrom(when),
	}
	repo.On("GetByID", mock.Anything, id).Return(post, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *entities.BlogPost) bool {
		return p.Status == entities.BlogPostScheduled && p.PublishedAt.Time.Equal(when)
	})).Return(post, nil)

	_, err := uc.UpdateStatus(context.Background(), id, usecases.StatusChange{Status: entities.BlogPostScheduled})
	require.NoError(t, err)
	uc.Wait()
	repo.AssertExpectations(t)
}

func TestResourceUsecase_UpdateStatusStaleVersion(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})
	id := uuid.New()
	job := validJob()
	job.ID = id
	job.Version = 5
	repo.On("GetByID", mock.Anything, id).Return(job, nil)

	_, err := uc.UpdateStatus(context.Background(), id, usecases.StatusChange{Status: entities.JobClosed, Version: 4})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestResourceUsecase_BulkDeleteReportsEveryItem(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	index := new(MockSearchIndex)
	uc := newJobUsecase(repo, usecases.ResourceDeps{Index: index})
	okID, missingID, brokenID := uuid.New(), uuid.New(), uuid.New()

	job := validJob()
	job.ID = okID
	broken := validJob()
	broken.ID = brokenID
	repo.On("GetByID", mock.Anything, okID).Return(job, nil)
	repo.On("GetByID", mock.Anything, missingID).Return(nil, domainerrors.ErrNotFound)
	repo.On("GetByID", mock.Anything, brokenID).Return(broken, nil)
	repo.On("SoftDelete", mock.Anything, okID).Return(nil)
	repo.On("SoftDelete", mock.Anything, brokenID).Return(errors.New("db down"))
	index.On("Enabled").Return(true)
	index.On("Remove", mock.Anything, entities.KindJob, okID).Return(nil)

	results := uc.BulkDelete(context.Background(), []uuid.UUID{okID, missingID, brokenID})

	require.Len(t, results, 3)
	assert.Equal(t, entities.BulkResult{ID: okID, OK: true}, results[0])
	assert.False(t, results[1].OK)
	assert.Equal(t, "resource not found", results[1].Error)
	assert.False(t, results[2].OK)
	assert.Equal(t, "internal server error", results[2].Error)
	index.AssertExpectations(t)
}

func TestResourceUsecase_BulkStatus(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Message])
	uc := usecases.NewResourceUsecase[*entities.Message](repo, func() *entities.Message { return &entities.Message{} }, usecases.ResourceDeps{})
	a, b := uuid.New(), uuid.New()

	msgA := &entities.Message{Record: entities.Record{ID: a}, Status: entities.MessageUnread}
	repo.On("GetByID", mock.Anything, a).Return(msgA, nil)
	repo.On("GetByID", mock.Anything, b).Return(nil, domainerrors.ErrNotFound)
	repo.On("Update", mock.Anything, msgA).Return(msgA, nil)

	results := uc.BulkStatus(context.Background(), []uuid.UUID{a, b}, entities.MessageRead)

	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Equal(t, entities.MessageRead, msgA.Status)
}

func TestResourceUsecase_DeleteMediaRemovesStoredFile(t *testing.T) {
	repo := new(MockResourceRepository[*entities.MediaAsset])
	files := new(MockUploader)
	uc := usecases.NewResourceUsecase[*entities.MediaAsset](repo, func() *entities.MediaAsset { return &entities.MediaAsset{} }, usecases.ResourceDeps{Files: files})
	id := uuid.New()

	asset := &entities.MediaAsset{Record: entities.Record{ID: id}, StorageKey: "media/a.png"}
	repo.On("GetByID", mock.Anything, id).Return(asset, nil)
	repo.On("SoftDelete", mock.Anything, id).Return(nil)
	files.On("Delete", mock.Anything, "media/a.png").Return(errors.New("gone"))

	require.NoError(t, uc.Delete(context.Background(), id))
	files.AssertExpectations(t)
}

func TestResourceUsecase_GetPublicBySlugHidesUnpublished(t *testing.T) {
	repo := new(MockResourceRepository[*entities.Job])
	uc := newJobUsecase(repo, usecases.ResourceDeps{})

	draft := validJob()
	draft.Status = entities.JobDraft
	repo.On("GetBySlug", mock.Anything, "draft-job").Return(draft, nil)
	repo.On("GetBySlug", mock.Anything, "open-job").Return(validJob(), nil)

	_, err := uc.GetPublicBySlug(context.Background(), "Draft-Job")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err := uc.GetPublicBySlug(context.Background(), "open-job")
	require.NoError(t, err)
	assert.Equal(t, entities.JobOpen, got.Status)
}

func TestResourceUsecase_GetPublic(t *testing.T) {
	repo := new(MockResourceRepository[*entities.TeamMember])
	uc := usecases.NewResourceUsecase[*entities.TeamMember](repo, func() *entities.TeamMember { return &entities.TeamMember{} }, usecases.ResourceDeps{})
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&entities.TeamMember{Status: entities.TeamMemberInactive}, nil)

	_, err := uc.GetPublic(context.Background(), id)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Equal(t, entities.KindTeamMember, uc.Kind())
	assert.NotNil(t, uc.New())
}
