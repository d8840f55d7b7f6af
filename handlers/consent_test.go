package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"law_landing_go/models"
	"law_landing_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestConsentDecisions(t *testing.T) {
	e := echo.New()

	t.Run("AcceptAll", func(t *testing.T) {
		testDB := setupTestDB(t)
		store := services.NewPreferenceStore(testDB)
		h := &ConsentHandler{Prefs: store}
		visitorID := uuid.New().String()

		c, rec := newFormContext(e, "/consent/accept", url.Values{})
		c.Set("visitor_id", visitorID)

		assert.NoError(t, h.AcceptAll(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		prefs, decided, err := store.CookiePreferences(visitorID)
		assert.NoError(t, err)
		assert.True(t, decided)
		assert.True(t, prefs.Analytics)
		assert.True(t, prefs.Advertising)
	})

	t.Run("DeclineAllKeepsOnlyNecessary", func(t *testing.T) {
		testDB := setupTestDB(t)
		store := services.NewPreferenceStore(testDB)
		h := &ConsentHandler{Prefs: store}
		visitorID := uuid.New().String()

		c, _ := newFormContext(e, "/consent/decline", url.Values{})
		c.Set("visitor_id", visitorID)

		assert.NoError(t, h.DeclineAll(c))

		prefs, decided, err := store.CookiePreferences(visitorID)
		assert.NoError(t, err)
		assert.True(t, decided)
		assert.True(t, prefs.Necessary)
		assert.False(t, prefs.Functional)
		assert.False(t, prefs.Analytics)
		assert.False(t, prefs.Marketing)
		assert.False(t, prefs.Advertising)
	})

	t.Run("SaveCustomParsesCheckboxes", func(t *testing.T) {
		testDB := setupTestDB(t)
		store := services.NewPreferenceStore(testDB)
		h := &ConsentHandler{Prefs: store}
		visitorID := uuid.New().String()

		form := url.Values{}
		form.Set("analytics", "on")
		form.Set("marketing", "on")
		c, _ := newFormContext(e, "/consent/preferences", form)
		c.Set("visitor_id", visitorID)

		assert.NoError(t, h.SaveCustom(c))

		prefs, decided, err := store.CookiePreferences(visitorID)
		assert.NoError(t, err)
		assert.True(t, decided)
		assert.True(t, prefs.Analytics)
		assert.True(t, prefs.Marketing)
		assert.False(t, prefs.Functional)
		assert.False(t, prefs.Advertising)

		var logs []models.ConsentLog
		assert.NoError(t, testDB.Where("visitor_id = ?", visitorID).Find(&logs).Error)
		assert.Len(t, logs, 1)
		assert.Equal(t, models.ConsentActionSaveCustom, logs[0].Action)
	})

	t.Run("HXRequestGetsEmptySwap", func(t *testing.T) {
		testDB := setupTestDB(t)
		h := &ConsentHandler{Prefs: services.NewPreferenceStore(testDB)}

		c, rec := newFormContext(e, "/consent/accept", url.Values{})
		c.Set("visitor_id", uuid.New().String())
		c.Request().Header.Set("HX-Request", "true")

		assert.NoError(t, h.AcceptAll(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("MissingVisitorRejected", func(t *testing.T) {
		testDB := setupTestDB(t)
		h := &ConsentHandler{Prefs: services.NewPreferenceStore(testDB)}

		c, _ := newFormContext(e, "/consent/accept", url.Values{})
		err := h.AcceptAll(c)

		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestSaveAccessibility(t *testing.T) {
	e := echo.New()
	testDB := setupTestDB(t)
	store := services.NewPreferenceStore(testDB)
	h := &ConsentHandler{Prefs: store}
	visitorID := uuid.New().String()

	form := url.Values{}
	form.Set("font_size", "200")
	form.Set("high_contrast", "on")
	form.Set("line_height", "relaxed")
	c, rec := newFormContext(e, "/accessibility", form)
	c.Set("visitor_id", visitorID)

	assert.NoError(t, h.SaveAccessibility(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	settings, err := store.AccessibilitySettings(visitorID)
	assert.NoError(t, err)
	assert.Equal(t, models.MaxFontSize, settings.FontSize, "out-of-range size is clamped")
	assert.True(t, settings.HighContrast)
	assert.Equal(t, models.LineHeightRelaxed, settings.LineHeight)
	assert.False(t, settings.KeyboardNav, "unchecked boxes are saved as off")
}

func TestSaveAccessibilityBadFontSizeFallsBack(t *testing.T) {
	e := echo.New()
	testDB := setupTestDB(t)
	store := services.NewPreferenceStore(testDB)
	h := &ConsentHandler{Prefs: store}
	visitorID := uuid.New().String()

	form := url.Values{}
	form.Set("font_size", "huge")
	form.Set("line_height", "normal")
	c, _ := newFormContext(e, "/accessibility", form)
	c.Set("visitor_id", visitorID)

	assert.NoError(t, h.SaveAccessibility(c))

	settings, err := store.AccessibilitySettings(visitorID)
	assert.NoError(t, err)
	assert.Equal(t, models.DefaultFontSize, settings.FontSize)
}

func TestHideWidget(t *testing.T) {
	e := echo.New()
	testDB := setupTestDB(t)
	store := services.NewPreferenceStore(testDB)
	h := &ConsentHandler{Prefs: store}
	visitorID := uuid.New().String()

	c, rec := newFormContext(e, "/accessibility/hide", url.Values{})
	c.Set("visitor_id", visitorID)
	c.Request().Header.Set("HX-Request", "true")

	assert.NoError(t, h.HideWidget(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	hidden, err := store.WidgetHidden(visitorID)
	assert.NoError(t, err)
	assert.True(t, hidden)

	// Hiding the widget is not a consent decision
	_, decided, err := store.CookiePreferences(visitorID)
	assert.NoError(t, err)
	assert.False(t, decided)
}
