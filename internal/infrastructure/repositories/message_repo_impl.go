package repositories

import (
	"company-site.backend/internal/domain/entities"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/models"
	"gorm.io/gorm"
)

type MessageRepository = ResourceRepository[*entities.Message, models.Message]

var _ domainrepos.ResourceRepository[*entities.Message] = (*MessageRepository)(nil)

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return newResourceRepository(db, resourceMapping[*entities.Message, models.Message]{
		toEntity:      messageToEntity,
		toModel:       messageToModel,
		updates:       messageUpdates,
		searchColumns: []string{"name", "email", "subject", "message"},
	})
}

func messageToEntity(m *models.Message) *entities.Message {
	return &entities.Message{
		Record: entities.Record{
			ID:        m.ID,
			Version:   m.Version,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:    m.Name,
		Email:   m.Email,
		Subject: m.Subject,
		Message: m.Body,
		Phone:   m.Phone,
		Status:  m.Status,
	}
}

func messageToModel(e *entities.Message) *models.Message {
	return &models.Message{
		ID:        e.ID,
		Version:   e.Version,
		Name:      e.Name,
		Email:     e.Email,
		Subject:   e.Subject,
		Body:      e.Message,
		Phone:     e.Phone,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func messageUpdates(e *entities.Message) map[string]interface{} {
	return map[string]interface{}{
		"name":    e.Name,
		"email":   e.Email,
		"subject": e.Subject,
		"message": e.Message,
		"phone":   e.Phone,
		"status":  e.Status,
	}
}
