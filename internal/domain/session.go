package domain

import (
	"sync"
	"time"
)

// Session tracks the authenticated identity of one live connection.
// Identity is absent until the authentication gate admits the connection.
type Session struct {
	ID            string
	UserID        int64
	Username      string
	Authenticated bool
	JoinedAt      time.Time
	LastActiveAt  time.Time
	mu            sync.RWMutex
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		JoinedAt:     now,
		LastActiveAt: now,
	}
}

// Authenticate attaches an identity to the session. Re-authenticating
// overwrites the previous identity.
func (s *Session) Authenticate(userID int64, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UserID = userID
	s.Username = username
	s.Authenticated = true
	s.LastActiveAt = time.Now()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Authenticated
}

func (s *Session) GetUserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.UserID
}

func (s *Session) GetUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Username
}

func (s *Session) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActiveAt = time.Now()
}
