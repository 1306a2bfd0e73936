package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/pkg/log"
)

// GormMeetingRepository implements MeetingRepository using GORM.
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewGormMeetingRepository creates a new GORM-based meeting repository.
func NewGormMeetingRepository(db *gorm.DB) *GormMeetingRepository {
	return &GormMeetingRepository{db: db}
}

// Create creates a meeting.
func (r *GormMeetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	l := log.Ctx(ctx)

	model := domain.MeetingToModel(meeting)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldGroupID, meeting.GroupID).Msg("failed to create meeting in db")
		return result.Error
	}

	meeting.ID = model.ID
	meeting.CreatedAt = model.CreatedAt
	l.Debug().Int64(log.FieldMeetingID, meeting.ID).Msg("meeting created in db")
	return nil
}

// GetByID retrieves a meeting by ID.
func (r *GormMeetingRepository) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	l := log.Ctx(ctx)

	var model domain.MeetingModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		l.Error().Err(result.Error).Int64(log.FieldMeetingID, id).Msg("failed to get meeting by id")
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// ListByGroup retrieves meetings of a group ordered by start time.
func (r *GormMeetingRepository) ListByGroup(ctx context.Context, groupID int64) ([]domain.Meeting, error) {
	l := log.Ctx(ctx)

	var models []domain.MeetingModel
	result := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("starts_at ASC").
		Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldGroupID, groupID).Msg("failed to list meetings from db")
		return nil, result.Error
	}

	meetings := make([]domain.Meeting, len(models))
	for i, model := range models {
		meetings[i] = *model.ToDomain()
	}
	return meetings, nil
}

// ListForUser retrieves the meetings of every group the user belongs
// to, ordered by start time.
func (r *GormMeetingRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Meeting, error) {
	l := log.Ctx(ctx)

	var models []domain.MeetingModel
	result := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = meetings.group_id").
		Where("group_members.user_id = ?", userID).
		Order("meetings.starts_at ASC").
		Find(&models)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldUserID, userID).Msg("failed to list meetings for user")
		return nil, result.Error
	}

	meetings := make([]domain.Meeting, len(models))
	for i, model := range models {
		meetings[i] = *model.ToDomain()
	}
	return meetings, nil
}

// UpsertRSVP inserts or updates the RSVP for (meeting, user).
func (r *GormMeetingRepository) UpsertRSVP(ctx context.Context, rsvp *domain.MeetingAttendee) error {
	l := log.Ctx(ctx)

	model := &domain.MeetingAttendeeModel{
		MeetingID: rsvp.MeetingID,
		UserID:    rsvp.UserID,
		Attending: rsvp.Attending,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"attending", "responded_at"}),
	}).Create(model)
	if result.Error != nil {
		l.Error().Err(result.Error).
			Int64(log.FieldMeetingID, rsvp.MeetingID).
			Int64(log.FieldUserID, rsvp.UserID).
			Msg("failed to upsert rsvp in db")
		return result.Error
	}

	rsvp.RespondedAt = model.RespondedAt
	return nil
}

// Attendees retrieves RSVPs joined with user info.
func (r *GormMeetingRepository) Attendees(ctx context.Context, meetingID int64) ([]domain.AttendeeResponse, error) {
	l := log.Ctx(ctx)

	var attendees []domain.AttendeeResponse
	result := r.db.WithContext(ctx).Model(&domain.MeetingAttendeeModel{}).
		Select("meeting_attendees.user_id, users.name, meeting_attendees.attending, meeting_attendees.responded_at").
		Joins("JOIN users ON users.id = meeting_attendees.user_id").
		Where("meeting_attendees.meeting_id = ?", meetingID).
		Order("meeting_attendees.responded_at ASC").
		Scan(&attendees)
	if result.Error != nil {
		l.Error().Err(result.Error).Int64(log.FieldMeetingID, meetingID).Msg("failed to list attendees")
		return nil, result.Error
	}
	return attendees, nil
}
