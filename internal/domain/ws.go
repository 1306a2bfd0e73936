package domain

import (
	"time"
)

// WebSocket message types from client.
const (
	MsgTypeAuthenticate = "authenticate"
	MsgTypeGroupMessage = "group_message"
)

// WebSocket message types to client.
const (
	MsgTypeAuthSuccess = "auth_success"
	MsgTypeNewMessage  = "new_message"
	MsgTypeUserStatus  = "user_status"
	MsgTypeError       = "error"
)

// Presence statuses.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// BaseMessage is the base structure for all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

type AuthenticateMessage struct {
	Type   string `json:"type"`
	UserID int64  `json:"userId"`
}

type GroupMessageIn struct {
	Type    string `json:"type"`
	GroupID int64  `json:"groupId"`
	Content string `json:"content"`
}

// Server -> Client messages

type AuthSuccessMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type NewMessageEvent struct {
	Type    string          `json:"type"`
	Message MessageResponse `json:"message"`
}

type UserStatusMessage struct {
	Type      string    `json:"type"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorMessage(message string) *ErrorMessage {
	return &ErrorMessage{
		Type:    MsgTypeError,
		Message: message,
	}
}

func NewUserStatusMessage(userID int64, username, status string) *UserStatusMessage {
	return &UserStatusMessage{
		Type:      MsgTypeUserStatus,
		UserID:    userID,
		Username:  username,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}
