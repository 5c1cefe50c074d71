package repositories

import (
	"company-site.backend/internal/domain/entities"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/models"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type VentureRepository = ResourceRepository[*entities.Venture, models.Venture]

var _ domainrepos.ResourceRepository[*entities.Venture] = (*VentureRepository)(nil)

func NewVentureRepository(db *gorm.DB) *VentureRepository {
	return newResourceRepository(db, resourceMapping[*entities.Venture, models.Venture]{
		toEntity:       ventureToEntity,
		toModel:        ventureToModel,
		updates:        ventureUpdates,
		searchColumns:  []string{"name", "tagline", "category"},
		categoryColumn: "category",
		slugColumn:     "slug",
		order:          "name ASC",
		publicScope: func(db *gorm.DB) *gorm.DB {
			return db.Where("status <> ?", entities.VentureInactive)
		},
	})
}

func ventureToEntity(m *models.Venture) *entities.Venture {
	e := &entities.Venture{
		Record: entities.Record{
			ID:        m.ID,
			Version:   m.Version,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   m.Description,
		Tagline:       m.Tagline,
		Category:      m.Category,
		Status:        m.Status,
		FoundedYear:   null.IntFromPtr(m.FoundedYear),
		TeamSize:      m.TeamSize,
		Growth:        m.Growth,
		Website:       m.Website,
		Technologies:  []string(m.Technologies),
		Features:      []string(m.Features),
		Achievements:  []string(m.Achievements),
		Logo:          m.Logo,
		FeaturedImage: m.FeaturedImage,
	}
	decodeJSON(m.Metrics, &e.Metrics)
	decodeJSON(m.Testimonials, &e.Testimonials)
	return e
}

func ventureToModel(e *entities.Venture) *models.Venture {
	return &models.Venture{
		ID:            e.ID,
		Version:       e.Version,
		Name:          e.Name,
		Slug:          e.Slug,
		Description:   e.Description,
		Tagline:       e.Tagline,
		Category:      e.Category,
		Status:        e.Status,
		FoundedYear:   e.FoundedYear.Ptr(),
		TeamSize:      e.TeamSize,
		Growth:        e.Growth,
		Website:       e.Website,
		Metrics:       encodeJSON(e.Metrics),
		Technologies:  e.Technologies,
		Features:      e.Features,
		Achievements:  e.Achievements,
		Testimonials:  encodeJSON(e.Testimonials),
		Logo:          e.Logo,
		FeaturedImage: e.FeaturedImage,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ventureUpdates(e *entities.Venture) map[string]interface{} {
	m := ventureToModel(e)
	return map[string]interface{}{
		"name":           m.Name,
		"slug":           m.Slug,
		"description":    m.Description,
		"tagline":        m.Tagline,
		"category":       m.Category,
		"status":         m.Status,
		"founded_year":   m.FoundedYear,
		"team_size":      m.TeamSize,
		"growth":         m.Growth,
		"website":        m.Website,
		"metrics":        m.Metrics,
		"technologies":   m.Technologies,
		"features":       m.Features,
		"achievements":   m.Achievements,
		"testimonials":   m.Testimonials,
		"logo":           m.Logo,
		"featured_image": m.FeaturedImage,
	}
}
