package domain

import (
	"time"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

// UserToModel converts domain User to UserModel.
func UserToModel(u *User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// GroupModel is the GORM model for the groups table.
type GroupModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Subject     string    `gorm:"type:varchar(100)"`
	InviteCode  string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	CreatedBy   int64     `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (GroupModel) TableName() string {
	return "groups"
}

// ToDomain converts GroupModel to domain Group.
func (m *GroupModel) ToDomain() *Group {
	return &Group{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Subject:     m.Subject,
		InviteCode:  m.InviteCode,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// GroupToModel converts domain Group to GroupModel.
func GroupToModel(g *Group) *GroupModel {
	return &GroupModel{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Subject:     g.Subject,
		InviteCode:  g.InviteCode,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
}

// GroupMemberModel is the GORM model for the group_members table.
// The composite unique index enforces one membership row per (group, user).
type GroupMemberModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	GroupID  int64     `gorm:"uniqueIndex:idx_group_user;index;not null"`
	UserID   int64     `gorm:"uniqueIndex:idx_group_user;index;not null"`
	IsAdmin  bool      `gorm:"not null;default:false"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (GroupMemberModel) TableName() string {
	return "group_members"
}

// ToDomain converts GroupMemberModel to domain GroupMember.
func (m *GroupMemberModel) ToDomain() *GroupMember {
	return &GroupMember{
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		IsAdmin:  m.IsAdmin,
		JoinedAt: m.JoinedAt,
	}
}

// MeetingModel is the GORM model for the meetings table.
type MeetingModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	GroupID     int64      `gorm:"index;not null"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	Location    string     `gorm:"type:varchar(200)"`
	StartsAt    time.Time  `gorm:"index;not null"`
	EndsAt      *time.Time
	IsOnline    bool       `gorm:"not null;default:false"`
	MeetingURL  string     `gorm:"type:varchar(500)"`
	CreatedBy   int64      `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (MeetingModel) TableName() string {
	return "meetings"
}

// ToDomain converts MeetingModel to domain Meeting.
func (m *MeetingModel) ToDomain() *Meeting {
	return &Meeting{
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

// MeetingToModel converts domain Meeting to MeetingModel.
func MeetingToModel(m *Meeting) *MeetingModel {
	return &MeetingModel{
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

// MeetingAttendeeModel is the GORM model for the meeting_attendees table.
// The composite unique index makes repeated RSVPs an upsert.
type MeetingAttendeeModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	MeetingID   int64     `gorm:"uniqueIndex:idx_meeting_user;index;not null"`
	UserID      int64     `gorm:"uniqueIndex:idx_meeting_user;not null"`
	Attending   bool      `gorm:"not null"`
	RespondedAt time.Time `gorm:"autoUpdateTime"`
}

func (MeetingAttendeeModel) TableName() string {
	return "meeting_attendees"
}

// ToDomain converts MeetingAttendeeModel to domain MeetingAttendee.
func (m *MeetingAttendeeModel) ToDomain() *MeetingAttendee {
	return &MeetingAttendee{
		MeetingID:   m.MeetingID,
		UserID:      m.UserID,
		Attending:   m.Attending,
		RespondedAt: m.RespondedAt,
	}
}

// MaterialModel is the GORM model for the study_materials table.
type MaterialModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	GroupID     int64     `gorm:"index;not null"`
	UploaderID  int64     `gorm:"not null"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	Size        int64     `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(50);not null;default:other"`
	StorageKey  string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (MaterialModel) TableName() string {
	return "study_materials"
}

// ToDomain converts MaterialModel to domain StudyMaterial. UploaderName
// is not stored on the row; repositories fill it in from a join.
func (m *MaterialModel) ToDomain() *StudyMaterial {
	return &StudyMaterial{
		ID:          m.ID,
		GroupID:     m.GroupID,
		UploaderID:  m.UploaderID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		Description: m.Description,
		Category:    m.Category,
		StorageKey:  m.StorageKey,
		CreatedAt:   m.CreatedAt,
	}
}

// MaterialToModel converts domain StudyMaterial to MaterialModel.
func MaterialToModel(m *StudyMaterial) *MaterialModel {
	return &MaterialModel{
		ID:          m.ID,
		GroupID:     m.GroupID,
		UploaderID:  m.UploaderID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Size:        m.Size,
		Description: m.Description,
		Category:    m.Category,
		StorageKey:  m.StorageKey,
		CreatedAt:   m.CreatedAt,
	}
}

// MessageModel is the GORM model for the messages table.
type MessageModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	GroupID   int64     `gorm:"index;not null"`
	UserID    int64     `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
}

func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts MessageModel to domain Message. Username is not
// stored on the row; repositories fill it in from a join.
func (m *MessageModel) ToDomain() *Message {
	return &Message{
		ID:        m.ID,
		GroupID:   m.GroupID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// MessageToModel converts domain Message to MessageModel.
func MessageToModel(m *Message) *MessageModel {
	return &MessageModel{
		ID:        m.ID,
		GroupID:   m.GroupID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
