package domain

import (
	"time"
)

// DefaultMaterialCategory is applied when an upload carries no category.
const DefaultMaterialCategory = "other"

// StudyMaterial represents a file shared with a group. UploaderName is
// not stored on the row; repositories fill it in from a join.
type StudyMaterial struct {
	ID           int64     `json:"id"`
	GroupID      int64     `json:"groupId"`
	UploaderID   int64     `json:"uploaderId"`
	UploaderName string    `json:"uploaderName,omitempty"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType,omitempty"`
	Size         int64     `json:"size"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	StorageKey   string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UploadMaterialInput carries the metadata of a file upload. Description
// and Category come from the multipart form fields of the same names.
type UploadMaterialInput struct {
	FileName    string
	ContentType string
	Size        int64
	Description string
	Category    string
}

// MaterialResponse represents a study material in API responses.
type MaterialResponse struct {
	ID           int64     `json:"id"`
	GroupID      int64     `json:"groupId"`
	UploaderID   int64     `json:"uploaderId"`
	UploaderName string    `json:"uploaderName,omitempty"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType,omitempty"`
	Size         int64     `json:"size"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"createdAt"`
	URL          string    `json:"url,omitempty"`
}

// ToResponse converts StudyMaterial to MaterialResponse.
func (m *StudyMaterial) ToResponse() MaterialResponse {
	return MaterialResponse{
		ID:           m.ID,
		GroupID:      m.GroupID,
		UploaderID:   m.UploaderID,
		UploaderName: m.UploaderName,
		FileName:     m.FileName,
		ContentType:  m.ContentType,
		Size:         m.Size,
		Description:  m.Description,
		Category:     m.Category,
		CreatedAt:    m.CreatedAt,
	}
}
