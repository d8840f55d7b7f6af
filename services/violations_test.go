package services

import (
	"fmt"
	"testing"
	"time"

	"law_landing_go/models"

	"github.com/stretchr/testify/assert"
)

func TestViolationLogRecord(t *testing.T) {
	testDB := setupTestDB(t)
	violations := NewViolationLog(testDB)

	err := violations.Record("session-1", models.ViolationCSRFMismatch, "CSRF token validation failed", "/contact", "test-agent")
	assert.NoError(t, err)

	recent, err := violations.Recent(10)
	assert.NoError(t, err)
	assert.Len(t, recent, 1)
	assert.Equal(t, models.ViolationCSRFMismatch, recent[0].Type)
	assert.Equal(t, "session-1", recent[0].SessionID)
	assert.NotEmpty(t, recent[0].ID)
}

func TestViolationRecordsAreImmutable(t *testing.T) {
	testDB := setupTestDB(t)
	violations := NewViolationLog(testDB)

	assert.NoError(t, violations.Record("session-1", models.ViolationXSSAttempt, "XSS pattern detected in input", "/", "test-agent"))

	var stored models.SecurityViolation
	assert.NoError(t, testDB.First(&stored).Error)

	stored.Details = "rewritten"
	assert.Error(t, testDB.Save(&stored).Error)

	var unchanged models.SecurityViolation
	assert.NoError(t, testDB.First(&unchanged, "id = ?", stored.ID).Error)
	assert.Equal(t, "XSS pattern detected in input", unchanged.Details)
}

func TestViolationLogEvictsOldest(t *testing.T) {
	testDB := setupTestDB(t)
	violations := NewViolationLog(testDB)

	// Fill to the cap with rows at distinct, known timestamps
	base := time.Now().Add(-time.Hour)
	for i := 0; i < models.MaxStoredViolations; i++ {
		row := models.SecurityViolation{
			ID:        fmt.Sprintf("violation-%03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Type:      models.ViolationCSRFMismatch,
			Details:   "CSRF token validation failed",
			SessionID: "session-1",
		}
		assert.NoError(t, testDB.Create(&row).Error)
	}

	assert.NoError(t, violations.Record("session-1", models.ViolationLoginLockout, "Account locked after 5 failed attempts", "", ""))

	var count int64
	assert.NoError(t, testDB.Model(&models.SecurityViolation{}).Count(&count).Error)
	assert.Equal(t, int64(models.MaxStoredViolations), count)

	// The oldest row was evicted; the newest insert survived
	var evicted int64
	assert.NoError(t, testDB.Model(&models.SecurityViolation{}).Where("id = ?", "violation-000").Count(&evicted).Error)
	assert.Equal(t, int64(0), evicted)

	var newest int64
	assert.NoError(t, testDB.Model(&models.SecurityViolation{}).Where("type = ?", models.ViolationLoginLockout).Count(&newest).Error)
	assert.Equal(t, int64(1), newest)
}

func TestCSPViolationLogEvictsOldest(t *testing.T) {
	testDB := setupTestDB(t)
	violations := NewViolationLog(testDB)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < models.MaxStoredCSPViolations; i++ {
		row := models.CSPViolation{
			ID:                fmt.Sprintf("csp-%03d", i),
			CreatedAt:         base.Add(time.Duration(i) * time.Second),
			BlockedURI:        "https://evil.example/x.js",
			ViolatedDirective: "script-src",
		}
		assert.NoError(t, testDB.Create(&row).Error)
	}

	assert.NoError(t, violations.RecordCSP(&models.CSPViolation{
		BlockedURI:        "inline",
		ViolatedDirective: "script-src",
	}))

	var count int64
	assert.NoError(t, testDB.Model(&models.CSPViolation{}).Count(&count).Error)
	assert.Equal(t, int64(models.MaxStoredCSPViolations), count)

	var evicted int64
	assert.NoError(t, testDB.Model(&models.CSPViolation{}).Where("id = ?", "csp-000").Count(&evicted).Error)
	assert.Equal(t, int64(0), evicted)
}

func TestViolationLogRecentOrder(t *testing.T) {
	testDB := setupTestDB(t)
	violations := NewViolationLog(testDB)

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		row := models.SecurityViolation{
			ID:        fmt.Sprintf("violation-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Type:      models.ViolationCSRFMismatch,
			SessionID: "session-1",
		}
		assert.NoError(t, testDB.Create(&row).Error)
	}

	recent, err := violations.Recent(2)
	assert.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "violation-2", recent[0].ID)
	assert.Equal(t, "violation-1", recent[1].ID)
}

func TestViolationLogClear(t *testing.T) {
	testDB := setupTestDB(t)
	violations := NewViolationLog(testDB)

	assert.NoError(t, violations.Record("session-1", models.ViolationCSRFMismatch, "", "/", ""))
	assert.NoError(t, violations.Clear())

	recent, err := violations.Recent(10)
	assert.NoError(t, err)
	assert.Empty(t, recent)
}
