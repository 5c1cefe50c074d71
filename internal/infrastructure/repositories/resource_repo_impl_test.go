package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	domainrepos "company-site.backend/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func newJob(title, department, status string) *entities.Job {
	j := &entities.Job{
		Title:           title,
		Description:     "Join us",
		Department:      department,
		Location:        "Remote",
		ExperienceLevel: "Mid",
		Technologies:    []string{"Go", "Postgres"},
		Status:          status,
	}
	j.Normalize()
	return j
}

func TestJobRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createJobTable(t, db)
	repo := NewJobRepository(db)
	ctx := context.Background()

	job := newJob("Backend Engineer", "Engineering", entities.JobOpen)
	require.NoError(t, repo.Create(ctx, job))
	require.NotEqual(t, uuid.Nil, job.ID)
	require.Equal(t, 1, job.Version)

	byID, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", byID.Title)
	assert.Equal(t, []string{"Go", "Postgres"}, byID.Technologies)

	bySlug, err := repo.GetBySlug(ctx, "backend-engineer")
	require.NoError(t, err)
	assert.Equal(t, job.ID, bySlug.ID)

	byID.Salary = "Competitive"
	updated, err := repo.Update(ctx, byID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "Competitive", updated.Salary)

	closed, err := repo.UpdateStatus(ctx, job.ID, 0, entities.JobClosed, nil)
	require.NoError(t, err)
	assert.Equal(t, entities.JobClosed, closed.Status)
	assert.Equal(t, 3, closed.Version)

	require.NoError(t, repo.SoftDelete(ctx, job.ID))
	_, err = repo.GetByID(ctx, job.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SoftDelete(ctx, job.ID), domainerrors.ErrNotFound)
}

func TestJobRepository_UpdateVersionConflict(t *testing.T) {
	db := newTestDB(t)
	createJobTable(t, db)
	repo := NewJobRepository(db)
	ctx := context.Background()

	job := newJob("Designer", "Design", entities.JobOpen)
	require.NoError(t, repo.Create(ctx, job))

	first, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)

	first.Salary = "A"
	_, err = repo.Update(ctx, first)
	require.NoError(t, err)

	second.Salary = "B"
	_, err = repo.Update(ctx, second)
	require.ErrorIs(t, err, domainerrors.ErrConflict)

	// version 0 skips the check
	second.Version = 0
	saved, err := repo.Update(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "B", saved.Salary)

	missing := newJob("Ghost", "None", entities.JobOpen)
	missing.ID = uuid.New()
	missing.Version = 1
	_, err = repo.Update(ctx, missing)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.UpdateStatus(ctx, missing.ID, 0, entities.JobOpen, nil)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// the status write honours the version too
	current, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, job.ID, current.Version-1, entities.JobClosed, nil)
	require.ErrorIs(t, err, domainerrors.ErrConflict)
	closed, err := repo.UpdateStatus(ctx, job.ID, current.Version, entities.JobClosed, nil)
	require.NoError(t, err)
	assert.Equal(t, entities.JobClosed, closed.Status)
	assert.Equal(t, current.Version+1, closed.Version)
}

func TestJobRepository_SlugUniqueness(t *testing.T) {
	db := newTestDB(t)
	createJobTable(t, db)
	repo := NewJobRepository(db)
	ctx := context.Background()

	job := newJob("Data Analyst", "Data", entities.JobOpen)
	require.NoError(t, repo.Create(ctx, job))

	exists, err := repo.SlugExists(ctx, "data-analyst", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists(ctx, "data-analyst", job.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = repo.Create(ctx, newJob("Data Analyst", "Data", entities.JobDraft))
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	// a deleted record frees its slug
	require.NoError(t, repo.SoftDelete(ctx, job.ID))
	require.NoError(t, repo.Create(ctx, newJob("Data Analyst", "Data", entities.JobDraft)))
}

func TestJobRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createJobTable(t, db)
	repo := NewJobRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newJob("Backend Engineer", "Engineering", entities.JobOpen)))
	require.NoError(t, repo.Create(ctx, newJob("Frontend Engineer", "Engineering", entities.JobClosed)))
	require.NoError(t, repo.Create(ctx, newJob("Recruiter", "People", entities.JobOpen)))

	all, total, err := repo.List(ctx, domainrepos.ListQuery{Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	noFilter, _, err := repo.List(ctx, domainrepos.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, noFilter, len(all))

	items, total, err := repo.List(ctx, domainrepos.ListQuery{Search: "ENGINEER"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, _, err = repo.List(ctx, domainrepos.ListQuery{Search: "engineer", Status: entities.JobOpen})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Backend Engineer", items[0].Title)

	items, _, err = repo.List(ctx, domainrepos.ListQuery{Category: "People"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, _, err = repo.List(ctx, domainrepos.ListQuery{PublicOnly: true})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{entities.JobOpen: 2, entities.JobClosed: 1}, counts)

	recent, err := repo.CountCreatedSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), recent)
}

func TestResourceRepository_Pagination(t *testing.T) {
	db := newTestDB(t)
	createMessageTable(t, db)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, newMessage(fmt.Sprintf("subject %02d", i))))
	}

	page2, total, err := repo.List(ctx, domainrepos.ListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, page2, 10)

	page3, _, err := repo.List(ctx, domainrepos.ListQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3, 5)

	first, _, err := repo.List(ctx, domainrepos.ListQuery{Page: 0, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, first, 10)

	none, _, err := repo.List(ctx, domainrepos.ListQuery{PublicOnly: true})
	require.NoError(t, err)
	assert.Empty(t, none, "messages are never public")

	_, err = repo.GetBySlug(ctx, "anything")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	exists, err := repo.SlugExists(ctx, "anything", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBlogPostRepository_ScheduledAndAuthor(t *testing.T) {
	db := newTestDB(t)
	createBlogPostTable(t, db)
	repo := NewBlogPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	due := &entities.BlogPost{
		Title:       "Launch Day",
		Content:     "We launched",
		Author:      entities.Author{Name: "Sam", Role: "CEO"},
		Tags:        []string{"news"},
		Status:      entities.BlogPostScheduled,
		PublishedAt: null.TimeFrom(now.Add(-time.Minute)),
	}
	later := &entities.BlogPost{
		Title:       "Next Week",
		Content:     "Soon",
		Author:      entities.Author{Name: "Sam"},
		Status:      entities.BlogPostScheduled,
		PublishedAt: null.TimeFrom(now.Add(time.Hour)),
	}
	for _, p := range []*entities.BlogPost{due, later} {
		p.Normalize()
		require.NoError(t, repo.Create(ctx, p))
	}

	items, err := repo.ListDueScheduled(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, due.ID, items[0].ID)
	assert.Equal(t, "CEO", items[0].Author.Role)
	assert.Equal(t, []string{"news"}, items[0].Tags)
	assert.True(t, items[0].PublishedAt.Valid)

	bySearch, _, err := repo.List(ctx, domainrepos.ListQuery{Search: "sam"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 2, "author name is searchable")
}

func TestVentureRepository_JSONColumns(t *testing.T) {
	db := newTestDB(t)
	createVentureTable(t, db)
	repo := NewVentureRepository(db)
	ctx := context.Background()

	v := &entities.Venture{
		Name:         "Acme Labs",
		Description:  "d",
		Tagline:      "t",
		FoundedYear:  null.IntFrom(2019),
		Metrics:      []entities.Metric{{Label: "Users", Value: "10k"}, {Label: "ARR", Value: "$1M"}},
		Testimonials: []entities.Testimonial{{Quote: "Great", Author: "Kim"}},
	}
	v.Normalize()
	require.NoError(t, repo.Create(ctx, v))

	got, err := repo.GetBySlug(ctx, "acme-labs")
	require.NoError(t, err)
	assert.Equal(t, v.Metrics, got.Metrics)
	assert.Equal(t, v.Testimonials, got.Testimonials)
	assert.Equal(t, 2019, got.FoundedYear.Int)
}

func TestJobApplicationRepository_StatusWithNotes(t *testing.T) {
	db := newTestDB(t)
	createJobApplicationTable(t, db)
	repo := NewJobApplicationRepository(db)
	ctx := context.Background()

	app := &entities.JobApplication{
		JobID:    uuid.New(),
		JobTitle: "Designer",
		JobSlug:  "designer",
		ApplicantInfo: entities.ApplicantInfo{
			FullName:    "Ada Lovelace",
			Email:       "ada@example.com",
			Phone:       "123",
			CoverLetter: "Hello",
		},
		Attachments: map[string]string{entities.DocumentResume: "https://cdn/resume.pdf"},
	}
	app.Normalize()
	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.UpdateStatus(ctx, app.ID, 0, entities.ApplicationReviewing, map[string]interface{}{"admin_notes": "call back"})
	require.NoError(t, err)
	assert.Equal(t, entities.ApplicationReviewing, got.Status)
	assert.Equal(t, "call back", got.AdminNotes.String)
	assert.Equal(t, "https://cdn/resume.pdf", got.Attachments[entities.DocumentResume])

	items, _, err := repo.List(ctx, domainrepos.ListQuery{Category: "designer", Search: "lovelace"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestTeamMemberRepository_PublicOrder(t *testing.T) {
	db := newTestDB(t)
	createTeamMemberTable(t, db)
	repo := NewTeamMemberRepository(db)
	ctx := context.Background()

	members := []*entities.TeamMember{
		{Name: "Second", Email: "b@x.io", Role: "Eng", DisplayOrder: 2, Social: entities.SocialLinks{GitHub: "gh/b"}},
		{Name: "First", Email: "a@x.io", Role: "CEO", DisplayOrder: 1},
		{Name: "Away", Email: "c@x.io", Role: "Ops", Status: entities.TeamMemberOnLeave},
	}
	for _, m := range members {
		m.Normalize()
		require.NoError(t, repo.Create(ctx, m))
	}

	items, total, err := repo.List(ctx, domainrepos.ListQuery{PublicOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "First", items[0].Name)
	assert.Equal(t, "gh/b", items[1].Social.GitHub)
}

func TestMediaAssetRepository_TypeActsAsStatus(t *testing.T) {
	db := newTestDB(t)
	createMediaAssetTable(t, db)
	repo := NewMediaAssetRepository(db)
	ctx := context.Background()

	for _, a := range []*entities.MediaAsset{
		{Filename: "cover.png", URL: "/uploads/blog/cover.png", ContentType: "image/png", Folder: "blog", Size: 10},
		{Filename: "deck.pdf", URL: "/uploads/docs/deck.pdf", ContentType: "application/pdf", Folder: "docs", Size: 20},
	} {
		a.Normalize()
		require.NoError(t, repo.Create(ctx, a))
	}

	images, _, err := repo.List(ctx, domainrepos.ListQuery{Status: entities.MediaImage})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "cover.png", images[0].Filename)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[entities.MediaDocument])
}

func TestAdminUserRepository(t *testing.T) {
	db := newTestDB(t)
	createAdminUserTable(t, db)
	repo := NewAdminUserRepository(db)
	ctx := context.Background()

	u := &entities.AdminUser{Email: " Admin@Company.test ", Name: "Admin", PasswordHash: "hash", Role: entities.AdminRoleAdmin}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "admin@company.test", u.Email)

	byEmail, err := repo.GetByEmail(ctx, "ADMIN@company.test")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.True(t, byEmail.CanDelete())

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "hash2"))
	require.NoError(t, repo.TouchLastLogin(ctx, u.ID, time.Now().UTC()))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash2", byID.PasswordHash)
	assert.True(t, byID.LastLoginAt.Valid)

	err = repo.Create(ctx, &entities.AdminUser{Email: "admin@company.test", Name: "Dup", PasswordHash: "x", Role: entities.AdminRoleEditor})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = repo.GetByEmail(ctx, "nobody@company.test")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "x"), domainerrors.ErrNotFound)
}
