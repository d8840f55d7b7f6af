package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsentAction represents how the visitor resolved the consent banner
type ConsentAction string

const (
	ConsentActionAcceptAll  ConsentAction = "ACCEPT_ALL"
	ConsentActionDeclineAll ConsentAction = "DECLINE_ALL"
	ConsentActionSaveCustom ConsentAction = "SAVE_CUSTOM"
)

// ConsentLog is an immutable audit record of a cookie consent decision.
type ConsentLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_consent_created_at" json:"created_at"`

	VisitorID string        `gorm:"not null;index:idx_consent_visitor" json:"visitor_id"`
	Action    ConsentAction `gorm:"not null" json:"action"`

	// Snapshot of the saved preference bag at decision time, JSON-encoded
	Preferences   string `gorm:"type:text;not null" json:"preferences"`
	PolicyVersion string `gorm:"not null" json:"policy_version"`

	// Request metadata (for legal evidence)
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`
}

// BeforeCreate generates UUID
func (c *ConsentLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate prevents modification of consent logs (immutability)
func (c *ConsentLog) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// BeforeDelete prevents deletion of consent logs (immutability)
func (c *ConsentLog) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// TableName specifies the table name
func (ConsentLog) TableName() string {
	return "consent_logs"
}

// IsValidConsentAction checks if the consent action is valid
func IsValidConsentAction(a ConsentAction) bool {
	return a == ConsentActionAcceptAll || a == ConsentActionDeclineAll || a == ConsentActionSaveCustom
}
