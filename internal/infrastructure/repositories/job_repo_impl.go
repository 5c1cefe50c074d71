package repositories

import (
	"company-site.backend/internal/domain/entities"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/models"
	"gorm.io/gorm"
)

type JobRepository = ResourceRepository[*entities.Job, models.Job]

var _ domainrepos.ResourceRepository[*entities.Job] = (*JobRepository)(nil)

func NewJobRepository(db *gorm.DB) *JobRepository {
	return newResourceRepository(db, resourceMapping[*entities.Job, models.Job]{
		toEntity:       jobToEntity,
		toModel:        jobToModel,
		updates:        jobUpdates,
		searchColumns:  []string{"title", "department", "location"},
		categoryColumn: "department",
		slugColumn:     "slug",
		publicScope: func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", entities.JobOpen)
		},
	})
}

func jobToEntity(m *models.Job) *entities.Job {
	return &entities.Job{
		Record: entities.Record{
			ID:        m.ID,
			Version:   m.Version,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Title:            m.Title,
		Slug:             m.Slug,
		Description:      m.Description,
		ShortDescription: m.ShortDescription,
		Department:       m.Department,
		Location:         m.Location,
		Type:             m.Type,
		Salary:           m.Salary,
		ExperienceLevel:  m.ExperienceLevel,
		Technologies:     []string(m.Technologies),
		Responsibilities: []string(m.Responsibilities),
		Requirements:     []string(m.Requirements),
		Benefits:         []string(m.Benefits),
		Status:           m.Status,
	}
}

func jobToModel(e *entities.Job) *models.Job {
	return &models.Job{
		ID:               e.ID,
		Version:          e.Version,
		Title:            e.Title,
		Slug:             e.Slug,
		Description:      e.Description,
		ShortDescription: e.ShortDescription,
		Department:       e.Department,
		Location:         e.Location,
		Type:             e.Type,
		Salary:           e.Salary,
		ExperienceLevel:  e.ExperienceLevel,
		Technologies:     e.Technologies,
		Responsibilities: e.Responsibilities,
		Requirements:     e.Requirements,
		Benefits:         e.Benefits,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func jobUpdates(e *entities.Job) map[string]interface{} {
	m := jobToModel(e)
	return map[string]interface{}{
		"title":             m.Title,
		"slug":              m.Slug,
		"description":       m.Description,
		"short_description": m.ShortDescription,
		"department":        m.Department,
		"location":          m.Location,
		"type":              m.Type,
		"salary":            m.Salary,
		"experience_level":  m.ExperienceLevel,
		"technologies":      m.Technologies,
		"responsibilities":  m.Responsibilities,
		"requirements":      m.Requirements,
		"benefits":          m.Benefits,
		"status":            m.Status,
	}
}
