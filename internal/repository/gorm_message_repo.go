package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/pkg/log"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Create persists a chat message and fills in the allocated id.
func (r *GormMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	l := log.Ctx(ctx)

	model := domain.MessageToModel(message)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldGroupID, message.GroupID).Msg("failed to create message in db")
		return result.Error
	}

	message.ID = model.ID
	message.CreatedAt = model.CreatedAt
	return nil
}

// ListByGroup retrieves messages of a group in send order, joined with
// the sender's name.
func (r *GormMessageRepository) ListByGroup(ctx context.Context, groupID int64, limit int) ([]domain.Message, error) {
	l := log.Ctx(ctx)

	if limit <= 0 {
		limit = 100
	}

	var messages []domain.Message
	result := r.db.WithContext(ctx).Model(&domain.MessageModel{}).
		Select("messages.id, messages.group_id, messages.user_id, users.name AS username, messages.content, messages.created_at").
		Joins("JOIN users ON users.id = messages.user_id").
		Where("messages.group_id = ?", groupID).
		Order("messages.created_at ASC").
		Limit(limit).
		Scan(&messages)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldGroupID, groupID).Msg("failed to list messages from db")
		return nil, result.Error
	}
	return messages, nil
}
