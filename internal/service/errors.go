package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownUser        = errors.New("unknown user")
	ErrGroupNotFound      = errors.New("group not found")
	ErrInviteNotFound     = errors.New("invite code not found")
	ErrAlreadyMember      = errors.New("already a member of this group")
	ErrNotMember          = errors.New("not a member of this group")
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrMaterialNotFound   = errors.New("study material not found")
	ErrUnauthenticated    = errors.New("connection is not authenticated")
)
