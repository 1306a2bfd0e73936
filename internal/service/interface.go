package service

import (
	"context"
	"io"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/hub"
)

// UserService defines the interface for user and auth business logic.
type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	Refresh(ctx context.Context, req *domain.RefreshTokenRequest) (*domain.AuthResponse, error)
	GetUser(ctx context.Context, userID int64) (*domain.UserResponse, error)
	ListUsers(ctx context.Context) ([]domain.UserResponse, error)
}

// GroupService defines the interface for group business logic. All
// group-scoped reads are membership gated.
type GroupService interface {
	Create(ctx context.Context, userID int64, req *domain.CreateGroupRequest) (*domain.GroupResponse, error)
	Get(ctx context.Context, userID, groupID int64) (*domain.GroupResponse, error)
	ListMine(ctx context.Context, userID int64) ([]domain.GroupResponse, error)
	Join(ctx context.Context, userID int64, inviteCode string) (*domain.GroupResponse, error)
	Members(ctx context.Context, userID, groupID int64) ([]domain.GroupMemberDetail, error)
	RequireMember(ctx context.Context, userID, groupID int64) error
}

// MeetingService defines the interface for meeting business logic.
type MeetingService interface {
	Create(ctx context.Context, userID, groupID int64, req *domain.CreateMeetingRequest) (*domain.MeetingResponse, error)
	ListByGroup(ctx context.Context, userID, groupID int64) ([]domain.MeetingResponse, error)
	ListMine(ctx context.Context, userID int64) ([]domain.MeetingResponse, error)
	RSVP(ctx context.Context, userID, meetingID int64, attending bool) (*domain.MeetingAttendee, error)
}

// MaterialService defines the interface for study material business logic.
type MaterialService interface {
	Upload(ctx context.Context, userID, groupID int64, in *domain.UploadMaterialInput, r io.Reader) (*domain.MaterialResponse, error)
	ListByGroup(ctx context.Context, userID, groupID int64) ([]domain.MaterialResponse, error)
	Download(ctx context.Context, userID, groupID, materialID int64) (*domain.MaterialResponse, io.ReadCloser, error)
	Delete(ctx context.Context, userID, groupID, materialID int64) error
}

// MessageService defines the interface for chat message history.
type MessageService interface {
	ListByGroup(ctx context.Context, userID, groupID int64, limit int) ([]domain.MessageResponse, error)
	Post(ctx context.Context, userID int64, username string, groupID int64, content string) (*domain.MessageResponse, error)
}

// ChatService drives the realtime fan-out: it authenticates connections,
// dispatches group messages, and broadcasts presence changes.
type ChatService interface {
	HandleAuthenticate(ctx context.Context, c *hub.Client, userID int64) error
	HandleGroupMessage(ctx context.Context, c *hub.Client, groupID int64, content string) (*domain.MessageResponse, error)
	HandleDisconnect(ctx context.Context, c *hub.Client)
	BroadcastMessage(ctx context.Context, msg *domain.MessageResponse) error
}
