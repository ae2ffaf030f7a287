package domain

import (
	"time"

	"gorm.io/gorm"
)

// Registration is the attendee profile record written after a submission.
type Registration struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	PublicID   string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	FirstName  string  `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName   string  `gorm:"type:varchar(255);not null" json:"last_name"`
	Phone      string  `gorm:"type:varchar(50)" json:"phone"`
	Email      string  `gorm:"type:varchar(255);index;not null" json:"email"`
	University string  `gorm:"type:varchar(255);not null" json:"university"`
	Program    string  `gorm:"type:varchar(255);not null" json:"program"`
	ResumeURL  *string `gorm:"type:text" json:"resume_url,omitempty"`
	ResumeKey  *string `gorm:"type:varchar(255)" json:"resume_key,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
