package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"law_landing_go/content"
	"law_landing_go/middleware"
	"law_landing_go/models"
	"law_landing_go/services"

	"github.com/labstack/echo/v4"
)

// HomeHandler renders the public pages
type HomeHandler struct {
	Content *content.SiteContent
	Prefs   *services.PreferenceStore
	AppURL  string
}

// landingData is the full view model for the landing page
type landingData struct {
	Content   *content.SiteContent
	Nonce     string
	CSRFToken string
	AppURL    string
	JSONLD    template.JS

	// Consent banner state
	ShowConsentBanner bool
	CookiePrefs       services.CookiePreferences

	// Accessibility state, reflected onto the page shell
	Accessibility services.AccessibilitySettings
	WidgetHidden  bool
	RootClasses   string
	FontSizes     []int

	// Post-submit feedback
	Sent bool
}

// Landing renders the single-page site: hero, features, about, services,
// testimonials, FAQ and the contact form, plus the consent banner and
// accessibility widget in their persisted states.
func (h *HomeHandler) Landing(c echo.Context) error {
	visitorID := middleware.GetVisitorID(c)

	prefs, decided, err := h.Prefs.CookiePreferences(visitorID)
	if err != nil {
		c.Logger().Errorf("Failed to load cookie preferences: %v", err)
		// Defaults were returned; render with the banner visible
	}

	settings, err := h.Prefs.AccessibilitySettings(visitorID)
	if err != nil {
		c.Logger().Errorf("Failed to load accessibility settings: %v", err)
	}

	widgetHidden, err := h.Prefs.WidgetHidden(visitorID)
	if err != nil {
		c.Logger().Errorf("Failed to load widget visibility: %v", err)
	}

	jsonLD, err := BuildJSONLD(h.Content, h.AppURL)
	if err != nil {
		c.Logger().Errorf("Failed to build structured data: %v", err)
	}

	return c.Render(http.StatusOK, "landing.html", landingData{
		Content:           h.Content,
		Nonce:             middleware.GetNonce(c.Request().Context()),
		CSRFToken:         middleware.GetCSRFToken(c),
		AppURL:            h.AppURL,
		JSONLD:            jsonLD,
		ShowConsentBanner: !decided,
		CookiePrefs:       prefs,
		Accessibility:     settings,
		WidgetHidden:      widgetHidden,
		RootClasses:       rootClasses(settings),
		FontSizes:         FontSizeOptions(),
		Sent:              c.QueryParam("sent") == "1",
	})
}

// rootClasses reflects the accessibility settings into the page shell
func rootClasses(s services.AccessibilitySettings) string {
	var classes []string
	if s.HighContrast {
		classes = append(classes, "high-contrast")
	}
	if s.DarkMode {
		classes = append(classes, "dark")
	}
	if s.ReducedMotion {
		classes = append(classes, "reduce-motion")
	}
	if s.KeyboardNav {
		classes = append(classes, "keyboard-nav")
	}
	classes = append(classes, "line-height-"+s.LineHeight)
	return strings.Join(classes, " ")
}

// staticPageData is the view model for the secondary content pages
type staticPageData struct {
	Content       *content.SiteContent
	Nonce         string
	PolicyVersion string
}

// Privacy renders the privacy policy page
func (h *HomeHandler) Privacy(c echo.Context) error {
	return c.Render(http.StatusOK, "privacy.html", staticPageData{
		Content:       h.Content,
		Nonce:         middleware.GetNonce(c.Request().Context()),
		PolicyVersion: services.CurrentPrivacyPolicyVersion,
	})
}

// AccessibilityStatement renders the accessibility statement page
func (h *HomeHandler) AccessibilityStatement(c echo.Context) error {
	return c.Render(http.StatusOK, "accessibility.html", staticPageData{
		Content: h.Content,
		Nonce:   middleware.GetNonce(c.Request().Context()),
	})
}

// FontSizeOptions lists the selectable font size steps for the widget
func FontSizeOptions() []int {
	var options []int
	for v := models.MinFontSize; v <= models.MaxFontSize; v += models.FontSizeStep {
		options = append(options, v)
	}
	return options
}
