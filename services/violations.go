package services

import (
	"fmt"

	"law_landing_go/models"

	"gorm.io/gorm"
)

// ViolationLog is the durable, capped store for security and CSP violation
// records. Inserts evict the oldest rows once the cap is exceeded (FIFO).
type ViolationLog struct {
	db *gorm.DB
}

// NewViolationLog creates a violation log backed by the given database
func NewViolationLog(db *gorm.DB) *ViolationLog {
	return &ViolationLog{db: db}
}

// Record appends a security violation and enforces the cap
func (l *ViolationLog) Record(sessionID, vtype, details, url, userAgent string) error {
	violation := models.SecurityViolation{
		Type:      vtype,
		Details:   details,
		SessionID: sessionID,
		URL:       url,
		UserAgent: userAgent,
	}

	if err := l.db.Create(&violation).Error; err != nil {
		return fmt.Errorf("failed to store security violation: %w", err)
	}

	return l.evictOldest(&models.SecurityViolation{}, models.MaxStoredViolations)
}

// RecordCSP appends a CSP report and enforces its cap
func (l *ViolationLog) RecordCSP(v *models.CSPViolation) error {
	if err := l.db.Create(v).Error; err != nil {
		return fmt.Errorf("failed to store CSP violation: %w", err)
	}

	return l.evictOldest(&models.CSPViolation{}, models.MaxStoredCSPViolations)
}

// evictOldest deletes the oldest rows of the model beyond the cap
func (l *ViolationLog) evictOldest(model interface{}, maxRows int64) error {
	var count int64
	if err := l.db.Model(model).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count violations: %w", err)
	}
	if count <= maxRows {
		return nil
	}

	var staleIDs []string
	if err := l.db.Model(model).
		Order("created_at ASC, id ASC").
		Limit(int(count-maxRows)).
		Pluck("id", &staleIDs).Error; err != nil {
		return fmt.Errorf("failed to find stale violations: %w", err)
	}

	if err := l.db.Unscoped().Where("id IN ?", staleIDs).Delete(model).Error; err != nil {
		return fmt.Errorf("failed to evict stale violations: %w", err)
	}
	return nil
}

// Recent returns the newest security violations, newest first
func (l *ViolationLog) Recent(limit int) ([]models.SecurityViolation, error) {
	var violations []models.SecurityViolation
	if err := l.db.Order("created_at DESC, id DESC").Limit(limit).Find(&violations).Error; err != nil {
		return nil, fmt.Errorf("failed to get violations: %w", err)
	}
	return violations, nil
}

// RecentCSP returns the newest CSP reports, newest first
func (l *ViolationLog) RecentCSP(limit int) ([]models.CSPViolation, error) {
	var violations []models.CSPViolation
	if err := l.db.Order("created_at DESC, id DESC").Limit(limit).Find(&violations).Error; err != nil {
		return nil, fmt.Errorf("failed to get CSP violations: %w", err)
	}
	return violations, nil
}

// Clear removes all stored security violations
func (l *ViolationLog) Clear() error {
	if err := l.db.Unscoped().Where("1 = 1").Delete(&models.SecurityViolation{}).Error; err != nil {
		return fmt.Errorf("failed to clear violations: %w", err)
	}
	return nil
}
