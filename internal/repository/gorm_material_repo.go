package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/pkg/log"
)

// GormMaterialRepository implements MaterialRepository using GORM.
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GORM-based material repository.
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// Create creates a study material record.
func (r *GormMaterialRepository) Create(ctx context.Context, material *domain.StudyMaterial) error {
	l := log.Ctx(ctx)

	model := domain.MaterialToModel(material)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldGroupID, material.GroupID).Msg("failed to create material in db")
		return result.Error
	}

	material.ID = model.ID
	material.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a study material by ID.
func (r *GormMaterialRepository) GetByID(ctx context.Context, id int64) (*domain.StudyMaterial, error) {
	l := log.Ctx(ctx)

	var model domain.MaterialModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		l.Error().Err(result.Error).Msg("failed to get material by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// ListByGroup retrieves materials of a group, newest first, joined with
// the uploader's name.
func (r *GormMaterialRepository) ListByGroup(ctx context.Context, groupID int64) ([]domain.StudyMaterial, error) {
	l := log.Ctx(ctx)

	var materials []domain.StudyMaterial
	result := r.db.WithContext(ctx).Model(&domain.MaterialModel{}).
		Select("study_materials.id, study_materials.group_id, study_materials.uploader_id, users.name AS uploader_name, study_materials.file_name, study_materials.content_type, study_materials.size, study_materials.description, study_materials.category, study_materials.storage_key, study_materials.created_at").
		Joins("JOIN users ON users.id = study_materials.uploader_id").
		Where("study_materials.group_id = ?", groupID).
		Order("study_materials.created_at DESC").
		Scan(&materials)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldGroupID, groupID).Msg("failed to list materials from db")
		return nil, result.Error
	}
	return materials, nil
}

// Delete removes a study material record.
func (r *GormMaterialRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.MaterialModel{}, "id = ?", id)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Msg("failed to delete material from db")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMaterialNotFound
	}
	return nil
}
