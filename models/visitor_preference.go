package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Font size bounds for accessibility settings (percentage of base size,
// adjusted in steps of 10).
const (
	MinFontSize     = 80
	MaxFontSize     = 150
	FontSizeStep    = 10
	DefaultFontSize = 100
)

// Line height options
const (
	LineHeightNormal  = "normal"
	LineHeightRelaxed = "relaxed"
	LineHeightLoose   = "loose"
)

// VisitorPreference persists a visitor's cookie consent choices and
// accessibility display settings, keyed by the anonymous visitor cookie.
// The two preference bags are independent at the API level; they share a row
// here only as a storage detail.
type VisitorPreference struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	VisitorID string `gorm:"not null;uniqueIndex" json:"visitor_id"`

	// Cookie consent. Necessary is not stored: it is always true.
	ConsentDecided bool `gorm:"not null;default:false" json:"consent_decided"`
	Functional     bool `gorm:"not null;default:true" json:"functional"`
	Analytics      bool `gorm:"not null;default:false" json:"analytics"`
	Marketing      bool `gorm:"not null;default:false" json:"marketing"`
	Advertising    bool `gorm:"not null;default:false" json:"advertising"`

	// Accessibility settings
	FontSize      int    `gorm:"not null;default:100" json:"font_size"`
	HighContrast  bool   `gorm:"not null;default:false" json:"high_contrast"`
	DarkMode      bool   `gorm:"not null;default:false" json:"dark_mode"`
	ReducedMotion bool   `gorm:"not null;default:false" json:"reduced_motion"`
	KeyboardNav   bool   `gorm:"not null;default:true" json:"keyboard_nav"`
	LineHeight    string `gorm:"not null;default:normal" json:"line_height"`

	// Accessibility widget dismissal, independent of the settings values
	WidgetHidden bool `gorm:"not null;default:false" json:"widget_hidden"`
}

// BeforeCreate hook to generate UUID
func (p *VisitorPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (VisitorPreference) TableName() string {
	return "visitor_preferences"
}

// IsValidLineHeight checks if the line height value is valid
func IsValidLineHeight(v string) bool {
	return v == LineHeightNormal || v == LineHeightRelaxed || v == LineHeightLoose
}
