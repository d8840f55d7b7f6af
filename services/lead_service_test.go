package services

import (
	"errors"
	"testing"

	"law_landing_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubNotifier records delivered leads and fails on demand
type stubNotifier struct {
	sent []*models.Lead
	err  error
}

func (n *stubNotifier) SendLeadNotification(lead *models.Lead) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, lead)
	return nil
}

func TestLeadSubmitSuccess(t *testing.T) {
	testDB := setupTestDB(t)
	notifier := &stubNotifier{}
	submitter := NewLeadSubmitter(testDB, notifier)

	result, err := submitter.Submit(LeadInput{
		Name:      "  ישראל ישראלי  ",
		Phone:     "050-123-4567",
		Email:     "Israel@Example.COM",
		Message:   "אשמח לייעוץ",
		SourceURL: "/",
		UserAgent: "test-agent",
		IPAddress: "10.0.0.1",
	})
	assert.NoError(t, err)
	assert.True(t, result.Success())
	assert.True(t, result.Stored)
	assert.True(t, result.Notified)

	state, reason := submitter.State()
	assert.Equal(t, LeadStateSucceeded, state)
	assert.Empty(t, reason)

	var stored models.Lead
	assert.NoError(t, testDB.First(&stored).Error)
	assert.Equal(t, "ישראל ישראלי", stored.Name)
	assert.Equal(t, "israel@example.com", stored.Email)
	assert.Equal(t, models.LeadStatusNew, stored.Status)
	assert.NotEmpty(t, stored.ID)

	assert.Len(t, notifier.sent, 1)
	assert.Equal(t, "israel@example.com", notifier.sent[0].Email)
}

func TestLeadSubmitValidation(t *testing.T) {
	testDB := setupTestDB(t)
	notifier := &stubNotifier{}
	submitter := NewLeadSubmitter(testDB, notifier)

	t.Run("MissingRequiredField", func(t *testing.T) {
		_, err := submitter.Submit(LeadInput{
			Name:  "ישראל",
			Email: "test@example.com",
		})

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "נא למלא את כל השדות הנדרשים", vErr.Message)
	})

	t.Run("WhitespaceOnlyFieldIsMissing", func(t *testing.T) {
		_, err := submitter.Submit(LeadInput{
			Name:  "   ",
			Phone: "0501234567",
			Email: "test@example.com",
		})

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("BadEmailFormat", func(t *testing.T) {
		_, err := submitter.Submit(LeadInput{
			Name:  "ישראל",
			Phone: "0501234567",
			Email: "not-an-email",
		})

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "email", vErr.Field)
		assert.Equal(t, "כתובת אימייל לא תקינה", vErr.Message)
	})

	t.Run("PresenceCheckedBeforeFormat", func(t *testing.T) {
		_, err := submitter.Submit(LeadInput{
			Name:  "ישראל",
			Email: "not-an-email",
		})

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "נא למלא את כל השדות הנדרשים", vErr.Message)
	})

	// Validation failures never reach either sink
	assert.Empty(t, notifier.sent)
	var count int64
	assert.NoError(t, testDB.Model(&models.Lead{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	state, reason := submitter.State()
	assert.Equal(t, LeadStateFailed, state)
	assert.NotEmpty(t, reason)
}

func TestLeadSubmitStoreFailureIsBestEffort(t *testing.T) {
	// A database with no leads table makes the store write fail
	emptyDB, err := gorm.Open(sqlite.Open("file:mem_store_failure?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	notifier := &stubNotifier{}
	submitter := NewLeadSubmitter(emptyDB, notifier)

	result, err := submitter.Submit(LeadInput{
		Name:  "ישראל",
		Phone: "0501234567",
		Email: "test@example.com",
	})
	assert.NoError(t, err, "store failure alone must not fail the submission")
	assert.True(t, result.Success())
	assert.False(t, result.Stored)
	assert.Error(t, result.StoreErr)
	assert.Len(t, notifier.sent, 1)

	state, _ := submitter.State()
	assert.Equal(t, LeadStateSucceeded, state)
}

func TestLeadSubmitNotifierFailureIsTerminal(t *testing.T) {
	testDB := setupTestDB(t)
	notifier := &stubNotifier{err: errors.New("relay unreachable")}
	submitter := NewLeadSubmitter(testDB, notifier)

	result, err := submitter.Submit(LeadInput{
		Name:  "ישראל",
		Phone: "0501234567",
		Email: "test@example.com",
	})
	assert.ErrorIs(t, err, ErrNotificationFailed)
	assert.False(t, result.Success())
	assert.True(t, result.Stored, "the best-effort store write still happened")
	assert.Error(t, result.NotifyErr)

	state, reason := submitter.State()
	assert.Equal(t, LeadStateFailed, state)
	assert.Equal(t, "שליחת הפנייה נכשלה. נא לנסות שוב.", reason)
}

func TestLeadSubmitterReset(t *testing.T) {
	testDB := setupTestDB(t)
	submitter := NewLeadSubmitter(testDB, &stubNotifier{err: errors.New("boom")})

	_, err := submitter.Submit(LeadInput{Name: "א", Phone: "0501234567", Email: "a@b.co"})
	assert.Error(t, err)

	submitter.Reset()
	state, reason := submitter.State()
	assert.Equal(t, LeadStateIdle, state)
	assert.Empty(t, reason)
}

func TestLeadSubmitSanitizesFields(t *testing.T) {
	testDB := setupTestDB(t)
	notifier := &stubNotifier{}
	submitter := NewLeadSubmitter(testDB, notifier)

	_, err := submitter.Submit(LeadInput{
		Name:    "<b>ישראל</b>",
		Phone:   "0501234567",
		Email:   "test@example.com",
		Message: "<script>alert(1)</script>",
	})
	assert.NoError(t, err)

	var stored models.Lead
	assert.NoError(t, testDB.First(&stored).Error)
	assert.NotContains(t, stored.Name, "<")
	assert.NotContains(t, stored.Message, "<script")
}
