package domain

import (
	"time"
)

// Group represents a study group. MemberCount is not stored on the row;
// repositories fill it in from an aggregate.
type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	InviteCode  string    `json:"inviteCode"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	MemberCount int       `json:"memberCount,omitempty"`
}

// GroupMember represents a group membership record.
// At most one record exists per (GroupID, UserID) pair.
type GroupMember struct {
	GroupID  int64     `json:"groupId"`
	UserID   int64     `json:"userId"`
	IsAdmin  bool      `json:"isAdmin"`
	JoinedAt time.Time `json:"joinedAt"`
}

// GroupMemberDetail is a membership record joined with user info.
type GroupMemberDetail struct {
	UserID   int64     `json:"userId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"isAdmin"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CreateGroupRequest represents a create group request.
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
}

// JoinGroupRequest represents a join-by-invite-code request.
type JoinGroupRequest struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	InviteCode  string    `json:"inviteCode"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	MemberCount int       `json:"memberCount,omitempty"`
}

// ToResponse converts Group to GroupResponse.
func (g *Group) ToResponse() GroupResponse {
	return GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Subject:     g.Subject,
		InviteCode:  g.InviteCode,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
		MemberCount: g.MemberCount,
	}
}
