package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxStoredCSPViolations caps the durable CSP report log (FIFO eviction).
const MaxStoredCSPViolations = 50

// CSPViolation records a Content-Security-Policy report sent by the browser.
type CSPViolation struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_csp_created_at" json:"created_at"`

	BlockedURI        string `json:"blocked_uri"`
	ViolatedDirective string `gorm:"index:idx_csp_directive" json:"violated_directive"`
	OriginalPolicy    string `gorm:"type:text" json:"original_policy,omitempty"`
	SourceFile        string `json:"source_file,omitempty"`
	LineNumber        int    `json:"line_number,omitempty"`
	UserAgent         string `gorm:"type:text" json:"user_agent,omitempty"`
}

// BeforeCreate generates UUID
func (v *CSPViolation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (CSPViolation) TableName() string {
	return "csp_violations"
}
