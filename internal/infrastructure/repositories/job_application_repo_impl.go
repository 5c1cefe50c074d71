package repositories

import (
	"company-site.backend/internal/domain/entities"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/models"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type JobApplicationRepository = ResourceRepository[*entities.JobApplication, models.JobApplication]

var _ domainrepos.ResourceRepository[*entities.JobApplication] = (*JobApplicationRepository)(nil)

func NewJobApplicationRepository(db *gorm.DB) *JobApplicationRepository {
	return newResourceRepository(db, resourceMapping[*entities.JobApplication, models.JobApplication]{
		toEntity:       jobApplicationToEntity,
		toModel:        jobApplicationToModel,
		updates:        jobApplicationUpdates,
		searchColumns:  []string{"full_name", "email", "job_title"},
		categoryColumn: "job_slug",
		order:          "applied_at DESC",
	})
}

func jobApplicationToEntity(m *models.JobApplication) *entities.JobApplication {
	e := &entities.JobApplication{
		Record: entities.Record{
			ID:        m.ID,
			Version:   m.Version,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		JobID:    m.JobID,
		JobTitle: m.JobTitle,
		JobSlug:  m.JobSlug,
		ApplicantInfo: entities.ApplicantInfo{
			FullName:       m.FullName,
			Email:          m.Email,
			Phone:          m.Phone,
			LinkedIn:       m.LinkedInURL,
			Portfolio:      m.PortfolioURL,
			CoverLetter:    m.CoverLetter,
			Experience:     m.Experience,
			ExpectedSalary: m.ExpectedSalary,
			AvailableFrom:  m.AvailableFrom,
		},
		Attachments: map[string]string{},
		Status:      m.Status,
		AdminNotes:  null.StringFromPtr(m.AdminNotes),
		AppliedAt:   m.AppliedAt,
	}
	decodeJSON(m.Attachments, &e.Attachments)
	return e
}

func jobApplicationToModel(e *entities.JobApplication) *models.JobApplication {
	info := e.ApplicantInfo
	return &models.JobApplication{
		ID:             e.ID,
		Version:        e.Version,
		JobID:          e.JobID,
		JobTitle:       e.JobTitle,
		JobSlug:        e.JobSlug,
		FullName:       info.FullName,
		Email:          info.Email,
		Phone:          info.Phone,
		LinkedInURL:    info.LinkedIn,
		PortfolioURL:   info.Portfolio,
		CoverLetter:    info.CoverLetter,
		Experience:     info.Experience,
		ExpectedSalary: info.ExpectedSalary,
		AvailableFrom:  info.AvailableFrom,
		Attachments:    encodeJSON(e.Attachments),
		Status:         e.Status,
		AdminNotes:     e.AdminNotes.Ptr(),
		AppliedAt:      e.AppliedAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func jobApplicationUpdates(e *entities.JobApplication) map[string]interface{} {
	m := jobApplicationToModel(e)
	return map[string]interface{}{
		"full_name":       m.FullName,
		"email":           m.Email,
		"phone":           m.Phone,
		"linkedin_url":    m.LinkedInURL,
		"portfolio_url":   m.PortfolioURL,
		"cover_letter":    m.CoverLetter,
		"experience":      m.Experience,
		"expected_salary": m.ExpectedSalary,
		"available_from":  m.AvailableFrom,
		"attachments":     m.Attachments,
		"status":          m.Status,
		"admin_notes":     m.AdminNotes,
	}
}
