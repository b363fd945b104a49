package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is the persisted record of a single parse: the raw text that was
// uploaded plus the profile derived from it, stored as JSON.
type Resume struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileName         string    `gorm:"type:text" json:"file_name"`
	OriginalFileName string    `gorm:"type:text" json:"original_file_name"`
	RawText          string    `gorm:"type:text" json:"-"`
	ProfileJSON      string    `gorm:"type:jsonb" json:"-"`
	Mode             string    `gorm:"type:text" json:"mode"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
