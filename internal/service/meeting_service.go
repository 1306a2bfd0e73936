package service

import (
	"context"
	"errors"

	"github.com/ykwizera/studysync/internal/audit"
	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/repository"
	"github.com/ykwizera/studysync/pkg/log"
)

// meetingServiceImpl implements MeetingService interface.
type meetingServiceImpl struct {
	repo   repository.MeetingRepository
	groups GroupService
}

// NewMeetingService creates a new meeting service.
func NewMeetingService(repo repository.MeetingRepository, groups GroupService) MeetingService {
	return &meetingServiceImpl{
		repo:   repo,
		groups: groups,
	}
}

// Create schedules a meeting; the creator is auto-RSVP'd as going.
func (s *meetingServiceImpl) Create(ctx context.Context, userID, groupID int64, req *domain.CreateMeetingRequest) (*domain.MeetingResponse, error) {
	l := log.Ctx(ctx)

	if err := s.groups.RequireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}

	meeting := &domain.Meeting{
		GroupID:     groupID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		IsOnline:    req.IsOnline,
		MeetingURL:  req.MeetingURL,
		CreatedBy:   userID,
	}

	if err := s.repo.Create(ctx, meeting); err != nil {
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to create meeting")
		return nil, err
	}

	rsvp := &domain.MeetingAttendee{
		MeetingID: meeting.ID,
		UserID:    userID,
		Attending: true,
	}
	if err := s.repo.UpsertRSVP(ctx, rsvp); err != nil {
		l.Warn().Err(err).Int64(log.FieldMeetingID, meeting.ID).Msg("failed to auto-rsvp meeting creator")
	}

	audit.LogWithDetail(ctx, audit.ActionCreateMeet, userID, meeting.Title, "meeting created")

	resp := meeting.ToResponse()
	return &resp, nil
}

// ListByGroup lists a group's meetings with attendees; membership gated.
func (s *meetingServiceImpl) ListByGroup(ctx context.Context, userID, groupID int64) ([]domain.MeetingResponse, error) {
	if err := s.groups.RequireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}

	meetings, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.MeetingResponse, len(meetings))
	for i, meeting := range meetings {
		responses[i] = meeting.ToResponse()
		attendees, err := s.repo.Attendees(ctx, meeting.ID)
		if err != nil {
			return nil, err
		}
		responses[i].Attendees = attendees
	}
	return responses, nil
}

// ListMine lists the meetings of every group the caller belongs to.
func (s *meetingServiceImpl) ListMine(ctx context.Context, userID int64) ([]domain.MeetingResponse, error) {
	meetings, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.MeetingResponse, len(meetings))
	for i, meeting := range meetings {
		responses[i] = meeting.ToResponse()
		attendees, err := s.repo.Attendees(ctx, meeting.ID)
		if err != nil {
			return nil, err
		}
		responses[i].Attendees = attendees
	}
	return responses, nil
}

// RSVP records the caller's answer; a repeated RSVP overwrites the
// previous one. Membership gated via the meeting's group.
func (s *meetingServiceImpl) RSVP(ctx context.Context, userID, meetingID int64, attending bool) (*domain.MeetingAttendee, error) {
	meeting, err := s.repo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}

	if err := s.groups.RequireMember(ctx, userID, meeting.GroupID); err != nil {
		return nil, err
	}

	rsvp := &domain.MeetingAttendee{
		MeetingID: meetingID,
		UserID:    userID,
		Attending: attending,
	}
	if err := s.repo.UpsertRSVP(ctx, rsvp); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionRSVP, userID, "meeting rsvp recorded")
	return rsvp, nil
}
