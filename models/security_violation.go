package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Violation types
const (
	ViolationCSRFMismatch = "csrf_mismatch"
	ViolationLoginLockout = "login_lockout"
	ViolationXSSAttempt   = "xss_attempt"
)

// MaxStoredViolations caps the durable security violation log. Oldest entries
// are evicted first once the cap is exceeded.
const MaxStoredViolations = 100

// SecurityViolation is an immutable record of a detected security event.
type SecurityViolation struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_violation_created_at" json:"created_at"`

	Type      string `gorm:"not null;index:idx_violation_type" json:"type"`
	Details   string `gorm:"type:text" json:"details"`
	SessionID string `gorm:"not null" json:"session_id"`
	URL       string `json:"url,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`
}

// BeforeCreate generates UUID
func (v *SecurityViolation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate prevents modification of violation records (immutability).
// Deletion stays allowed so FIFO eviction can enforce the cap.
func (v *SecurityViolation) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// TableName specifies the table name
func (SecurityViolation) TableName() string {
	return "security_violations"
}
