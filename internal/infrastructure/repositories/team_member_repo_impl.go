package repositories

import (
	"company-site.backend/internal/domain/entities"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/models"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type TeamMemberRepository = ResourceRepository[*entities.TeamMember, models.TeamMember]

var _ domainrepos.ResourceRepository[*entities.TeamMember] = (*TeamMemberRepository)(nil)

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return newResourceRepository(db, resourceMapping[*entities.TeamMember, models.TeamMember]{
		toEntity:       teamMemberToEntity,
		toModel:        teamMemberToModel,
		updates:        teamMemberUpdates,
		searchColumns:  []string{"name", "role", "department", "email"},
		categoryColumn: "department",
		order:          "display_order ASC, created_at ASC",
		publicScope: func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", entities.TeamMemberActive)
		},
	})
}

func teamMemberToEntity(m *models.TeamMember) *entities.TeamMember {
	return &entities.TeamMember{
		Record: entities.Record{
			ID:        m.ID,
			Version:   m.Version,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:       m.Name,
		Email:      m.Email,
		Role:       m.Role,
		Department: m.Department,
		Location:   m.Location,
		JoinDate:   null.TimeFromPtr(m.JoinDate),
		Bio:        m.Bio,
		Skills:     []string(m.Skills),
		Social: entities.SocialLinks{
			LinkedIn: m.LinkedInURL,
			Twitter:  m.TwitterURL,
			GitHub:   m.GithubURL,
		},
		ProfileImage: m.ProfileImage,
		Status:       m.Status,
		DisplayOrder: m.DisplayOrder,
	}
}

func teamMemberToModel(e *entities.TeamMember) *models.TeamMember {
	return &models.TeamMember{
		ID:           e.ID,
		Version:      e.Version,
		Name:         e.Name,
		Email:        e.Email,
		Role:         e.Role,
		Department:   e.Department,
		Location:     e.Location,
		JoinDate:     e.JoinDate.Ptr(),
		Bio:          e.Bio,
		Skills:       e.Skills,
		LinkedInURL:  e.Social.LinkedIn,
		TwitterURL:   e.Social.Twitter,
		GithubURL:    e.Social.GitHub,
		ProfileImage: e.ProfileImage,
		Status:       e.Status,
		DisplayOrder: e.DisplayOrder,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func teamMemberUpdates(e *entities.TeamMember) map[string]interface{} {
	m := teamMemberToModel(e)
	return map[string]interface{}{
		"name":          m.Name,
		"email":         m.Email,
		"role":          m.Role,
		"department":    m.Department,
		"location":      m.Location,
		"join_date":     m.JoinDate,
		"bio":           m.Bio,
		"skills":        m.Skills,
		"linkedin_url":  m.LinkedInURL,
		"twitter_url":   m.TwitterURL,
		"github_url":    m.GithubURL,
		"profile_image": m.ProfileImage,
		"status":        m.Status,
		"display_order": m.DisplayOrder,
	}
}
