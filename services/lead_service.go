package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"law_landing_go/models"

	"gorm.io/gorm"
)

// LeadState is the observable lifecycle of the most recent submission
type LeadState string

const (
	LeadStateIdle       LeadState = "idle"
	LeadStateSubmitting LeadState = "submitting"
	LeadStateSucceeded  LeadState = "succeeded"
	LeadStateFailed     LeadState = "failed"
)

// ErrNotificationFailed marks a failed delivery to the email relay - the
// primary sink, whose failure fails the whole submission.
var ErrNotificationFailed = errors.New("lead notification delivery failed")

// ValidationError is a recoverable bad-input error with a user-facing message
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// LeadInput is a transient contact-form payload
type LeadInput struct {
	Name      string
	Phone     string
	Email     string
	Message   string
	SourceURL string
	UserAgent string
	IPAddress string
}

// SinkResult separates the two external sinks: the document store is
// best-effort (secondary), the email relay is required (primary). The
// user-visible contract is "a human gets notified", not "the row was written".
type SinkResult struct {
	Stored    bool
	StoreErr  error
	Notified  bool
	NotifyErr error
}

// Success reports whether the submission as a whole succeeded
func (r SinkResult) Success() bool {
	return r.Notified
}

// LeadNotifier delivers the new-lead notification to a human
type LeadNotifier interface {
	SendLeadNotification(lead *models.Lead) error
}

// LeadSubmitter validates and forwards contact-form submissions to the
// document store and the email relay, tracking an observable
// idle/submitting/succeeded/failed lifecycle.
type LeadSubmitter struct {
	db       *gorm.DB
	notifier LeadNotifier

	mu        sync.Mutex
	state     LeadState
	lastError string
}

// NewLeadSubmitter creates a submitter wired to both sinks
func NewLeadSubmitter(db *gorm.DB, notifier LeadNotifier) *LeadSubmitter {
	return &LeadSubmitter{
		db:       db,
		notifier: notifier,
		state:    LeadStateIdle,
	}
}

// State returns the current lifecycle state and, when failed, the
// user-facing reason.
func (s *LeadSubmitter) State() (LeadState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.lastError
}

// Reset returns the submitter to the idle state
func (s *LeadSubmitter) Reset() {
	s.setState(LeadStateIdle, "")
}

func (s *LeadSubmitter) setState(state LeadState, errMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.lastError = errMessage
}

// Submit validates the payload and forwards it to both sinks. Validation
// failures and relay failures fail the submission; a document-store failure
// is logged and swallowed.
func (s *LeadSubmitter) Submit(input LeadInput) (SinkResult, error) {
	s.setState(LeadStateSubmitting, "")

	lead, err := s.buildLead(input)
	if err != nil {
		s.setState(LeadStateFailed, err.Error())
		return SinkResult{}, err
	}

	var result SinkResult

	// Secondary sink: best-effort document store write
	if storeErr := s.db.Create(lead).Error; storeErr != nil {
		result.StoreErr = storeErr
		log.Printf("Lead store write failed (continuing with notification): %v", storeErr)
	} else {
		result.Stored = true
	}

	// Primary sink: the email relay. Failure here is terminal.
	if notifyErr := s.notifier.SendLeadNotification(lead); notifyErr != nil {
		result.NotifyErr = notifyErr
		message := "שליחת הפנייה נכשלה. נא לנסות שוב."
		s.setState(LeadStateFailed, message)
		return result, fmt.Errorf("%w: %v", ErrNotificationFailed, notifyErr)
	}
	result.Notified = true

	s.setState(LeadStateSucceeded, "")
	return result, nil
}

// buildLead normalizes and validates the payload. Required-field presence is
// checked before email format; no sink is invoked on failure.
func (s *LeadSubmitter) buildLead(input LeadInput) (*models.Lead, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	message := strings.TrimSpace(input.Message)

	if name == "" || phone == "" || email == "" {
		return nil, &ValidationError{Message: "נא למלא את כל השדות הנדרשים"}
	}
	if !IsValidEmail(email) {
		return nil, &ValidationError{Field: "email", Message: "כתובת אימייל לא תקינה"}
	}

	return &models.Lead{
		Name:      SanitizeInput(name),
		Phone:     SanitizeInput(phone),
		Email:     SanitizeInput(email),
		Message:   SanitizeInput(message),
		SourceURL: input.SourceURL,
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		Status:    models.LeadStatusNew,
	}, nil
}
