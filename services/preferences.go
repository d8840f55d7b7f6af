package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"law_landing_go/models"

	"gorm.io/gorm"
)

// CurrentPrivacyPolicyVersion is the current version of the privacy policy.
// Update this when the policy changes.
const CurrentPrivacyPolicyVersion = "1.0.0"

// CookiePreferences is the per-visitor cookie category consent bag.
// Necessary is fixed true and never user-togglable.
type CookiePreferences struct {
	Necessary   bool `json:"necessary"`
	Functional  bool `json:"functional"`
	Analytics   bool `json:"analytics"`
	Marketing   bool `json:"marketing"`
	Advertising bool `json:"advertising"`
}

// DefaultCookiePreferences returns the pre-decision defaults
func DefaultCookiePreferences() CookiePreferences {
	return CookiePreferences{
		Necessary:  true,
		Functional: true,
	}
}

// AcceptAllPreferences returns a bag with every category granted
func AcceptAllPreferences() CookiePreferences {
	return CookiePreferences{
		Necessary:   true,
		Functional:  true,
		Analytics:   true,
		Marketing:   true,
		Advertising: true,
	}
}

// DeclineAllPreferences returns a bag with only the necessary category
func DeclineAllPreferences() CookiePreferences {
	return CookiePreferences{Necessary: true}
}

// AccessibilitySettings is the per-visitor display settings bag
type AccessibilitySettings struct {
	FontSize      int    `json:"fontSize"`
	HighContrast  bool   `json:"highContrast"`
	DarkMode      bool   `json:"darkMode"`
	ReducedMotion bool   `json:"reducedMotion"`
	KeyboardNav   bool   `json:"keyboardNav"`
	LineHeight    string `json:"lineHeight"`
}

// DefaultAccessibilitySettings returns the documented defaults
func DefaultAccessibilitySettings() AccessibilitySettings {
	return AccessibilitySettings{
		FontSize:    models.DefaultFontSize,
		KeyboardNav: true,
		LineHeight:  models.LineHeightNormal,
	}
}

// ClampFontSize snaps a requested font size to the nearest step within
// [MinFontSize, MaxFontSize]. Requesting 200 yields 150; requesting 50
// yields 80.
func ClampFontSize(v int) int {
	if v < models.MinFontSize {
		return models.MinFontSize
	}
	if v > models.MaxFontSize {
		return models.MaxFontSize
	}
	// Round to the nearest step
	rounded := ((v + models.FontSizeStep/2) / models.FontSizeStep) * models.FontSizeStep
	if rounded > models.MaxFontSize {
		rounded = models.MaxFontSize
	}
	return rounded
}

// Normalize coerces out-of-range values to valid ones
func (s AccessibilitySettings) Normalize() AccessibilitySettings {
	s.FontSize = ClampFontSize(s.FontSize)
	if !models.IsValidLineHeight(s.LineHeight) {
		s.LineHeight = models.LineHeightNormal
	}
	return s
}

// PreferenceStore reads and writes the per-visitor preference bags and
// broadcasts cookie preference changes to subscribers.
type PreferenceStore struct {
	db *gorm.DB

	mu          sync.Mutex
	subscribers []chan CookiePreferences
}

// NewPreferenceStore creates a preference store backed by the given database
func NewPreferenceStore(db *gorm.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// load fetches the visitor's row, or nil when the visitor has never saved
// anything.
func (ps *PreferenceStore) load(visitorID string) (*models.VisitorPreference, error) {
	var pref models.VisitorPreference
	err := ps.db.Where("visitor_id = ?", visitorID).First(&pref).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load visitor preferences: %w", err)
	}
	return &pref, nil
}

// CookiePreferences returns the visitor's consent bag and whether the visitor
// has already decided. Absent visitors get the documented defaults.
func (ps *PreferenceStore) CookiePreferences(visitorID string) (CookiePreferences, bool, error) {
	pref, err := ps.load(visitorID)
	if err != nil {
		return DefaultCookiePreferences(), false, err
	}
	if pref == nil || !pref.ConsentDecided {
		return DefaultCookiePreferences(), false, nil
	}
	return CookiePreferences{
		Necessary:   true,
		Functional:  pref.Functional,
		Analytics:   pref.Analytics,
		Marketing:   pref.Marketing,
		Advertising: pref.Advertising,
	}, true, nil
}

// SaveCookiePreferences persists the whole consent bag, marks the visitor as
// decided, appends an immutable audit record and notifies subscribers.
// Necessary is forced true regardless of the requested value.
func (ps *PreferenceStore) SaveCookiePreferences(visitorID string, prefs CookiePreferences, action models.ConsentAction, ipAddress, userAgent string) error {
	prefs.Necessary = true

	pref, err := ps.load(visitorID)
	if err != nil {
		return err
	}
	if pref == nil {
		defaults := DefaultAccessibilitySettings()
		pref = &models.VisitorPreference{
			VisitorID:   visitorID,
			FontSize:    defaults.FontSize,
			KeyboardNav: defaults.KeyboardNav,
			LineHeight:  defaults.LineHeight,
		}
	}

	pref.ConsentDecided = true
	pref.Functional = prefs.Functional
	pref.Analytics = prefs.Analytics
	pref.Marketing = prefs.Marketing
	pref.Advertising = prefs.Advertising

	if err := ps.db.Save(pref).Error; err != nil {
		return fmt.Errorf("failed to save cookie preferences: %w", err)
	}

	if err := ps.logConsent(visitorID, prefs, action, ipAddress, userAgent); err != nil {
		// The audit record is best effort; the decision itself stands
		log.Printf("Failed to log consent decision: %v", err)
	}

	ps.notify(prefs)
	return nil
}

// logConsent appends the immutable consent audit record
func (ps *PreferenceStore) logConsent(visitorID string, prefs CookiePreferences, action models.ConsentAction, ipAddress, userAgent string) error {
	snapshot, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preference snapshot: %w", err)
	}

	entry := models.ConsentLog{
		VisitorID:     visitorID,
		Action:        action,
		Preferences:   string(snapshot),
		PolicyVersion: CurrentPrivacyPolicyVersion,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	}
	if err := ps.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to create consent log: %w", err)
	}
	return nil
}

// AccessibilitySettings returns the visitor's display settings bag, with
// defaults for visitors who never saved anything.
func (ps *PreferenceStore) AccessibilitySettings(visitorID string) (AccessibilitySettings, error) {
	pref, err := ps.load(visitorID)
	if err != nil {
		return DefaultAccessibilitySettings(), err
	}
	if pref == nil {
		return DefaultAccessibilitySettings(), nil
	}
	settings := AccessibilitySettings{
		FontSize:      pref.FontSize,
		HighContrast:  pref.HighContrast,
		DarkMode:      pref.DarkMode,
		ReducedMotion: pref.ReducedMotion,
		KeyboardNav:   pref.KeyboardNav,
		LineHeight:    pref.LineHeight,
	}
	return settings.Normalize(), nil
}

// SaveAccessibilitySettings persists the whole settings bag after clamping
// out-of-range values.
func (ps *PreferenceStore) SaveAccessibilitySettings(visitorID string, settings AccessibilitySettings) error {
	settings = settings.Normalize()

	pref, err := ps.load(visitorID)
	if err != nil {
		return err
	}
	if pref == nil {
		pref = &models.VisitorPreference{VisitorID: visitorID, Functional: true}
	}

	pref.FontSize = settings.FontSize
	pref.HighContrast = settings.HighContrast
	pref.DarkMode = settings.DarkMode
	pref.ReducedMotion = settings.ReducedMotion
	pref.KeyboardNav = settings.KeyboardNav
	pref.LineHeight = settings.LineHeight

	if err := ps.db.Save(pref).Error; err != nil {
		return fmt.Errorf("failed to save accessibility settings: %w", err)
	}
	return nil
}

// WidgetHidden reports whether the visitor permanently dismissed the
// accessibility widget.
func (ps *PreferenceStore) WidgetHidden(visitorID string) (bool, error) {
	pref, err := ps.load(visitorID)
	if err != nil || pref == nil {
		return false, err
	}
	return pref.WidgetHidden, nil
}

// SetWidgetHidden persists the widget dismissal flag, independent of the
// settings values.
func (ps *PreferenceStore) SetWidgetHidden(visitorID string, hidden bool) error {
	pref, err := ps.load(visitorID)
	if err != nil {
		return err
	}
	if pref == nil {
		defaults := DefaultAccessibilitySettings()
		pref = &models.VisitorPreference{
			VisitorID:   visitorID,
			Functional:  true,
			FontSize:    defaults.FontSize,
			KeyboardNav: defaults.KeyboardNav,
			LineHeight:  defaults.LineHeight,
		}
	}

	pref.WidgetHidden = hidden
	if err := ps.db.Save(pref).Error; err != nil {
		return fmt.Errorf("failed to save widget visibility: %w", err)
	}
	return nil
}

// Subscribe returns a channel receiving every saved cookie preference bag.
// Slow subscribers miss updates rather than blocking writers.
func (ps *PreferenceStore) Subscribe() <-chan CookiePreferences {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch := make(chan CookiePreferences, 8)
	ps.subscribers = append(ps.subscribers, ch)
	return ch
}

func (ps *PreferenceStore) notify(prefs CookiePreferences) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subscribers {
		select {
		case ch <- prefs:
		default:
		}
	}
}
