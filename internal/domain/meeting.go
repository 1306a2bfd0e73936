package domain

import (
	"time"
)

// Meeting represents a scheduled group meeting. Online meetings carry a
// MeetingURL instead of (or in addition to) a physical Location.
type Meeting struct {
	ID          int64      `json:"id"`
	GroupID     int64      `json:"groupId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	IsOnline    bool       `json:"isOnline"`
	MeetingURL  string     `json:"meetingUrl,omitempty"`
	CreatedBy   int64      `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// MeetingAttendee represents an RSVP for a meeting.
// At most one record exists per (MeetingID, UserID) pair; a repeated
// RSVP overwrites the previous answer.
type MeetingAttendee struct {
	MeetingID   int64     `json:"meetingId"`
	UserID      int64     `json:"userId"`
	Attending   bool      `json:"attending"`
	RespondedAt time.Time `json:"respondedAt"`
}

// CreateMeetingRequest represents a create meeting request.
type CreateMeetingRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt" binding:"required"`
	EndsAt      *time.Time `json:"endsAt" binding:"omitempty,gtfield=StartsAt"`
	IsOnline    bool       `json:"isOnline"`
	MeetingURL  string     `json:"meetingUrl" binding:"omitempty,url,max=500"`
}

// RSVPRequest represents an RSVP submission.
type RSVPRequest struct {
	Attending *bool `json:"attending" binding:"required"`
}

// AttendeeResponse represents an RSVP joined with user info.
type AttendeeResponse struct {
	UserID      int64     `json:"userId"`
	Name        string    `json:"name"`
	Attending   bool      `json:"attending"`
	RespondedAt time.Time `json:"respondedAt"`
}

// MeetingResponse represents a meeting in API responses.
type MeetingResponse struct {
	ID          int64              `json:"id"`
	GroupID     int64              `json:"groupId"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Location    string             `json:"location,omitempty"`
	StartsAt    time.Time          `json:"startsAt"`
	EndsAt      *time.Time         `json:"endsAt,omitempty"`
	IsOnline    bool               `json:"isOnline"`
	MeetingURL  string             `json:"meetingUrl,omitempty"`
	CreatedBy   int64              `json:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt"`
	Attendees   []AttendeeResponse `json:"attendees,omitempty"`
}

// ToResponse converts Meeting to MeetingResponse.
func (m *Meeting) ToResponse() MeetingResponse {
	return MeetingResponse{
		ID:          m.ID,
		GroupID:     m.GroupID,
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
		IsOnline:    m.IsOnline,
		MeetingURL:  m.MeetingURL,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
