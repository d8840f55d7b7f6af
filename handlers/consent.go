package handlers

import (
	"net/http"
	"strconv"

	"law_landing_go/middleware"
	"law_landing_go/models"
	"law_landing_go/services"

	"github.com/labstack/echo/v4"
)

// ConsentHandler handles the consent banner and accessibility widget actions
type ConsentHandler struct {
	Prefs *services.PreferenceStore
}

// AcceptAll handles POST /consent/accept: every category granted
func (h *ConsentHandler) AcceptAll(c echo.Context) error {
	return h.decide(c, services.AcceptAllPreferences(), models.ConsentActionAcceptAll)
}

// DeclineAll handles POST /consent/decline: only the necessary category
func (h *ConsentHandler) DeclineAll(c echo.Context) error {
	return h.decide(c, services.DeclineAllPreferences(), models.ConsentActionDeclineAll)
}

// SaveCustom handles POST /consent/preferences with per-category checkboxes.
// The necessary category is forced on by the store regardless of input.
func (h *ConsentHandler) SaveCustom(c echo.Context) error {
	prefs := services.CookiePreferences{
		Necessary:   true,
		Functional:  c.FormValue("functional") == "on",
		Analytics:   c.FormValue("analytics") == "on",
		Marketing:   c.FormValue("marketing") == "on",
		Advertising: c.FormValue("advertising") == "on",
	}
	return h.decide(c, prefs, models.ConsentActionSaveCustom)
}

func (h *ConsentHandler) decide(c echo.Context, prefs services.CookiePreferences, action models.ConsentAction) error {
	visitorID := middleware.GetVisitorID(c)
	if visitorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing visitor identifier")
	}

	err := h.Prefs.SaveCookiePreferences(visitorID, prefs, action, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		c.Logger().Errorf("Failed to save cookie preferences: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "שמירת ההעדפות נכשלה. נא לנסות שוב.")
	}

	if c.Request().Header.Get("HX-Request") == "true" {
		// Swap the banner away
		return c.HTML(http.StatusOK, "")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// SaveAccessibility handles POST /accessibility with the whole settings bag.
// Out-of-range values are clamped, not rejected.
func (h *ConsentHandler) SaveAccessibility(c echo.Context) error {
	visitorID := middleware.GetVisitorID(c)
	if visitorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing visitor identifier")
	}

	fontSize, err := strconv.Atoi(c.FormValue("font_size"))
	if err != nil {
		fontSize = models.DefaultFontSize
	}

	settings := services.AccessibilitySettings{
		FontSize:      fontSize,
		HighContrast:  c.FormValue("high_contrast") == "on",
		DarkMode:      c.FormValue("dark_mode") == "on",
		ReducedMotion: c.FormValue("reduced_motion") == "on",
		KeyboardNav:   c.FormValue("keyboard_nav") == "on",
		LineHeight:    c.FormValue("line_height"),
	}

	if err := h.Prefs.SaveAccessibilitySettings(visitorID, settings); err != nil {
		c.Logger().Errorf("Failed to save accessibility settings: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "שמירת ההגדרות נכשלה. נא לנסות שוב.")
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// HideWidget handles POST /accessibility/hide: permanently dismisses the
// widget for this visitor, independent of the settings values.
func (h *ConsentHandler) HideWidget(c echo.Context) error {
	visitorID := middleware.GetVisitorID(c)
	if visitorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing visitor identifier")
	}

	if err := h.Prefs.SetWidgetHidden(visitorID, true); err != nil {
		c.Logger().Errorf("Failed to hide accessibility widget: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "הפעולה נכשלה. נא לנסות שוב.")
	}

	if c.Request().Header.Get("HX-Request") == "true" {
		return c.HTML(http.StatusOK, "")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
