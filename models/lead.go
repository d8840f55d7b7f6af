package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead status
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
)

// Lead is a prospective-client contact-form submission.
type Lead struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Contact information
	Name    string `gorm:"not null" json:"name"`
	Phone   string `gorm:"not null" json:"phone"`
	Email   string `gorm:"not null" json:"email"`
	Message string `gorm:"type:text" json:"message,omitempty"`

	// Audit fields
	SourceURL string `json:"source_url,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`

	Status string `gorm:"not null;default:new;index" json:"status"`
}

// BeforeCreate hook to generate UUID
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Lead model
func (Lead) TableName() string {
	return "leads"
}

// IsValidLeadStatus checks if the lead status is valid
func IsValidLeadStatus(status string) bool {
	validStatuses := []string{
		LeadStatusNew,
		LeadStatusContacted,
		LeadStatusClosed,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}
