package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"math"
	"sync"
	"time"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
	secureIDBytes    = 32
)

// LockoutStatus reports whether further login attempts are currently rejected
type LockoutStatus struct {
	Locked           bool
	RemainingMinutes int
}

// LoginAttemptResult is the outcome of recording a login attempt
type LoginAttemptResult struct {
	Allowed           bool
	LockoutMinutes    int
	AttemptsRemaining int
	Message           string
}

// SecuritySession holds the process-lifetime security state: an opaque
// session identifier, the CSRF token and the login attempt/lockout counter.
// It is constructed once at startup and passed by reference; per-process
// state makes its limits a UX-level deterrent, not a security boundary.
type SecuritySession struct {
	SessionID string

	mu            sync.Mutex
	csrfToken     string
	loginAttempts int
	lockoutUntil  time.Time

	violations *ViolationLog
	now        func() time.Time
}

// NewSecuritySession creates a session with fresh random identifiers.
// violations may be nil, in which case events are only logged to console.
func NewSecuritySession(violations *ViolationLog) *SecuritySession {
	return &SecuritySession{
		SessionID:  GenerateSecureID(secureIDBytes),
		csrfToken:  GenerateSecureID(secureIDBytes),
		violations: violations,
		now:        time.Now,
	}
}

// GenerateSecureID returns a cryptographically random hex string of n bytes
func GenerateSecureID(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand failing means the platform entropy source is broken
		log.Fatalf("Failed to generate secure ID: %v", err)
	}
	return hex.EncodeToString(bytes)
}

// CSRFToken returns the current CSRF token
func (s *SecuritySession) CSRFToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.csrfToken
}

// RefreshCSRFToken replaces the CSRF token and returns the new value
func (s *SecuritySession) RefreshCSRFToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.csrfToken = GenerateSecureID(secureIDBytes)
	return s.csrfToken
}

// ValidateCSRFToken compares a candidate against the session token. A
// mismatch is recorded as a violation with the originating URL and user agent.
func (s *SecuritySession) ValidateCSRFToken(candidate, url, userAgent string) bool {
	s.mu.Lock()
	token := s.csrfToken
	s.mu.Unlock()

	if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) == 1 {
		return true
	}
	s.logViolation("csrf_mismatch", "CSRF token validation failed", url, userAgent)
	return false
}

// RecordLoginAttempt updates the attempt counter. A success clears the
// counter and any lockout. The 5th consecutive failure starts a 15-minute
// lockout and records a violation.
func (s *SecuritySession) RecordLoginAttempt(success bool) LoginAttemptResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if success {
		s.loginAttempts = 0
		s.lockoutUntil = time.Time{}
		return LoginAttemptResult{Allowed: true}
	}

	s.loginAttempts++

	if s.loginAttempts >= maxLoginAttempts {
		s.lockoutUntil = s.now().Add(lockoutDuration)
		details := fmt.Sprintf("Account locked after %d failed attempts", s.loginAttempts)
		s.logViolation("login_lockout", details, "", "")
		return LoginAttemptResult{
			Allowed:        false,
			LockoutMinutes: int(lockoutDuration.Minutes()),
			Message:        "יותר מדי ניסיונות כושלים. נסה שוב בעוד 15 דקות.",
		}
	}

	return LoginAttemptResult{
		Allowed:           true,
		AttemptsRemaining: maxLoginAttempts - s.loginAttempts,
	}
}

// IsLockedOut reports whether login attempts are currently rejected and how
// many minutes remain (ceiling).
func (s *SecuritySession) IsLockedOut() LockoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.lockoutUntil.IsZero() && now.Before(s.lockoutUntil) {
		remaining := s.lockoutUntil.Sub(now)
		return LockoutStatus{
			Locked:           true,
			RemainingMinutes: int(math.Ceil(remaining.Minutes())),
		}
	}
	return LockoutStatus{}
}

// ResetLockout clears the attempt counter and lockout
func (s *SecuritySession) ResetLockout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginAttempts = 0
	s.lockoutUntil = time.Time{}
}

// DetectXSS reports whether the input matches a known attack pattern,
// recording a violation when it does. Pattern matching is a deterrent, not a
// substitute for output encoding.
func (s *SecuritySession) DetectXSS(input, url, userAgent string) bool {
	if !ContainsXSSPattern(input) {
		return false
	}
	s.logViolation("xss_attempt", "XSS pattern detected in input", url, userAgent)
	return true
}

func (s *SecuritySession) logViolation(vtype, details, url, userAgent string) {
	log.Printf("[SECURITY VIOLATION] type=%s details=%q session=%s", vtype, details, s.SessionID)
	if s.violations == nil {
		return
	}
	if err := s.violations.Record(s.SessionID, vtype, details, url, userAgent); err != nil {
		log.Printf("Failed to store security violation: %v", err)
	}
}
