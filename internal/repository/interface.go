package repository

import (
	"context"
	"errors"

	"github.com/ykwizera/studysync/internal/domain"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrGroupNotFound    = errors.New("group not found")
	ErrDuplicateMember  = errors.New("user is already a member of this group")
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrMaterialNotFound = errors.New("study material not found")
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// GroupRepository defines the interface for group and membership persistence.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.Group, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Group, error)

	AddMember(ctx context.Context, member *domain.GroupMember) error
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)
	MemberIDs(ctx context.Context, groupID int64) ([]int64, error)
	Members(ctx context.Context, groupID int64) ([]domain.GroupMemberDetail, error)
	GroupIDsOf(ctx context.Context, userID int64) ([]int64, error)
	MemberCount(ctx context.Context, groupID int64) (int, error)
}

// MeetingRepository defines the interface for meeting persistence.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) error
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
	ListByGroup(ctx context.Context, groupID int64) ([]domain.Meeting, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Meeting, error)
	UpsertRSVP(ctx context.Context, rsvp *domain.MeetingAttendee) error
	Attendees(ctx context.Context, meetingID int64) ([]domain.AttendeeResponse, error)
}

// MaterialRepository defines the interface for study material metadata.
type MaterialRepository interface {
	Create(ctx context.Context, material *domain.StudyMaterial) error
	GetByID(ctx context.Context, id int64) (*domain.StudyMaterial, error)
	ListByGroup(ctx context.Context, groupID int64) ([]domain.StudyMaterial, error)
	Delete(ctx context.Context, id int64) error
}

// MessageRepository defines the interface for chat message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByGroup(ctx context.Context, groupID int64, limit int) ([]domain.Message, error)
}
