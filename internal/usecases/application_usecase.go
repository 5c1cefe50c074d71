package usecases

import (
	"context"
	"errors"
	"time"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/domain/repositories"
	"github.com/volatiletech/null/v8"
)

// ApplicationUsecase accepts public job applications and lets admins review them.
type ApplicationUsecase struct {
	*ResourceUsecase[*entities.JobApplication]
	jobs repositories.ResourceRepository[*entities.Job]
}

func NewApplicationUsecase(
	applications repositories.ResourceRepository[*entities.JobApplication],
	jobs repositories.ResourceRepository[*entities.Job],
	deps ResourceDeps,
) *ApplicationUsecase {
	return &ApplicationUsecase{
		ResourceUsecase: NewResourceUsecase[*entities.JobApplication](applications, func() *entities.JobApplication { return &entities.JobApplication{} }, deps),
		jobs:            jobs,
	}
}

// Apply stores an application for the open job with the given slug. Review
// fields the applicant may have sent are reset.
func (u *ApplicationUsecase) Apply(ctx context.Context, jobSlug string, app *entities.JobApplication) (*entities.JobApplication, error) {
	job, err := u.jobs.GetBySlug(ctx, jobSlug)
	if errors.Is(err, domainerrors.ErrNotFound) || (err == nil && !job.IsPublic()) {
		return nil, domainerrors.NotFound("job not found or no longer accepting applications")
	}
	if err != nil {
		return nil, err
	}

	app.ApplyToJob(job)
	app.Status = entities.ApplicationStatuses.Default()
	app.AdminNotes = null.String{}
	app.AppliedAt = time.Time{}
	return u.Create(ctx, app)
}
