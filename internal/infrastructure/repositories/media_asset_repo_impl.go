package repositories

import (
	"company-site.backend/internal/domain/entities"
	domainrepos "company-site.backend/internal/domain/repositories"
	"company-site.backend/internal/infrastructure/models"
	"gorm.io/gorm"
)

type MediaAssetRepository = ResourceRepository[*entities.MediaAsset, models.MediaAsset]

var _ domainrepos.ResourceRepository[*entities.MediaAsset] = (*MediaAssetRepository)(nil)

func NewMediaAssetRepository(db *gorm.DB) *MediaAssetRepository {
	return newResourceRepository(db, resourceMapping[*entities.MediaAsset, models.MediaAsset]{
		toEntity:       mediaAssetToEntity,
		toModel:        mediaAssetToModel,
		updates:        mediaAssetUpdates,
		searchColumns:  []string{"filename", "folder"},
		statusColumn:   "type",
		categoryColumn: "folder",
		publicScope:    func(db *gorm.DB) *gorm.DB { return db },
	})
}

func mediaAssetToEntity(m *models.MediaAsset) *entities.MediaAsset {
	return &entities.MediaAsset{
		Record: entities.Record{
			ID:        m.ID,
			Version:   m.Version,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Filename:    m.Filename,
		URL:         m.URL,
		Type:        m.Type,
		Size:        m.Size,
		Folder:      m.Folder,
		ContentType: m.ContentType,
		StorageKey:  m.StorageKey,
	}
}

func mediaAssetToModel(e *entities.MediaAsset) *models.MediaAsset {
	return &models.MediaAsset{
		ID:          e.ID,
		Version:     e.Version,
		Filename:    e.Filename,
		URL:         e.URL,
		Type:        e.Type,
		Size:        e.Size,
		Folder:      e.Folder,
		ContentType: e.ContentType,
		StorageKey:  e.StorageKey,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func mediaAssetUpdates(e *entities.MediaAsset) map[string]interface{} {
	return map[string]interface{}{
		"filename":     e.Filename,
		"url":          e.URL,
		"type":         e.Type,
		"size":         e.Size,
		"folder":       e.Folder,
		"content_type": e.ContentType,
		"storage_key":  e.StorageKey,
	}
}
