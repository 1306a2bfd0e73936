package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/pkg/log"
)

// GormGroupRepository implements GroupRepository using GORM.
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GORM-based group repository.
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Create creates a group and enrolls the creator as admin member in one
// transaction.
func (r *GormGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	l := log.Ctx(ctx)

	model := domain.GroupToModel(group)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		member := &domain.GroupMemberModel{
			GroupID: model.ID,
			UserID:  model.CreatedBy,
			IsAdmin: true,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		l.Error().Err(err).Msg("failed to create group in db")
		return err
	}

	group.ID = model.ID
	group.CreatedAt = model.CreatedAt
	l.Debug().Int64(log.FieldGroupID, group.ID).Msg("group created in db")
	return nil
}

// GetByID retrieves a group by ID.
func (r *GormGroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	l := log.Ctx(ctx)

	var model domain.GroupModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		l.Error().Err(result.Error).Int64(log.FieldGroupID, id).Msg("failed to get group by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetByInviteCode retrieves a group by invite code.
func (r *GormGroupRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	l := log.Ctx(ctx)

	var model domain.GroupModel
	result := r.db.WithContext(ctx).First(&model, "invite_code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		l.Error().Err(result.Error).Msg("failed to get group by invite code")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// ListForUser retrieves all groups the user is a member of, each with
// its member count aggregated in the same query.
func (r *GormGroupRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Group, error) {
	l := log.Ctx(ctx)

	var groups []domain.Group
	result := r.db.WithContext(ctx).Model(&domain.GroupModel{}).
		Select("groups.id, groups.name, groups.description, groups.subject, groups.invite_code, groups.created_by, groups.created_at, COUNT(members.user_id) AS member_count").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Joins("JOIN group_members AS members ON members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Group("groups.id").
		Order("groups.created_at DESC").
		Scan(&groups)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldUserID, userID).Msg("failed to list groups for user")
		return nil, result.Error
	}
	return groups, nil
}

// AddMember adds a membership record.
func (r *GormGroupRepository) AddMember(ctx context.Context, member *domain.GroupMember) error {
	l := log.Ctx(ctx)

	model := &domain.GroupMemberModel{
		GroupID: member.GroupID,
		UserID:  member.UserID,
		IsAdmin: member.IsAdmin,
	}
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateMember
		}
		l.Error().Err(result.Error).
			Int64(log.FieldGroupID, member.GroupID).
			Int64(log.FieldUserID, member.UserID).
			Msg("failed to add group member in db")
		return result.Error
	}

	member.JoinedAt = model.JoinedAt
	return nil
}

// IsMember reports whether the user is a member of the group.
func (r *GormGroupRepository) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&domain.GroupMemberModel{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).
			Int64(log.FieldGroupID, groupID).
			Int64(log.FieldUserID, userID).
			Msg("failed to check group membership")
		return false, result.Error
	}
	return count > 0, nil
}

// MemberIDs retrieves the user ids of all members of the group.
func (r *GormGroupRepository) MemberIDs(ctx context.Context, groupID int64) ([]int64, error) {
	var ids []int64
	result := r.db.WithContext(ctx).Model(&domain.GroupMemberModel{}).
		Where("group_id = ?", groupID).
		Pluck("user_id", &ids)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Int64(log.FieldGroupID, groupID).Msg("failed to get member ids")
		return nil, result.Error
	}
	return ids, nil
}

// Members retrieves membership records joined with user info.
func (r *GormGroupRepository) Members(ctx context.Context, groupID int64) ([]domain.GroupMemberDetail, error) {
	l := log.Ctx(ctx)

	var members []domain.GroupMemberDetail
	result := r.db.WithContext(ctx).Model(&domain.GroupMemberModel{}).
		Select("group_members.user_id, users.name, users.email, group_members.is_admin, group_members.joined_at").
		Joins("JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", groupID).
		Order("group_members.joined_at ASC").
		Scan(&members)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldGroupID, groupID).Msg("failed to list group members")
		return nil, result.Error
	}
	return members, nil
}

// GroupIDsOf retrieves the ids of all groups the user belongs to.
func (r *GormGroupRepository) GroupIDsOf(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	result := r.db.WithContext(ctx).Model(&domain.GroupMemberModel{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Int64(log.FieldUserID, userID).Msg("failed to get group ids for user")
		return nil, result.Error
	}
	return ids, nil
}

// MemberCount counts members of the group.
func (r *GormGroupRepository) MemberCount(ctx context.Context, groupID int64) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&domain.GroupMemberModel{}).
		Where("group_id = ?", groupID).
		Count(&count)
	if result.Error != nil {
		log.Ctx(ctx).Error().Err(result.Error).Int64(log.FieldGroupID, groupID).Msg("failed to count group members")
		return 0, result.Error
	}
	return int(count), nil
}
