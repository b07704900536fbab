package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	IntakeStatusNew       = "new"
	IntakeStatusContacted = "contacted"
)

// IntakeApplication is a completed start-your-journey submission.
type IntakeApplication struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;not null"`
	FullName  string         `json:"fullName" gorm:"type:text;not null"`
	Email     string         `json:"email" gorm:"type:text;not null;index:idx_intake_email"`
	Phone     string         `json:"phone" gorm:"type:text"`
	Country   string         `json:"country" gorm:"type:text"`
	Timeframe string         `json:"timeframe" gorm:"type:text"`
	Answers   datatypes.JSON `json:"answers" gorm:"type:jsonb;not null"`
	Status    string         `json:"status" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"createdAt" gorm:"not null;index:idx_intake_created_at"`
}

// ContactMessage is a message left through the home page contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	Phone     string    `json:"phone,omitempty" gorm:"type:text"`
	Message   string    `json:"message" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}
