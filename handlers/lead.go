package handlers

import (
	"errors"
	"net/http"

	"law_landing_go/services"

	"github.com/labstack/echo/v4"
)

// LeadHandler handles contact-form submissions
type LeadHandler struct {
	Submitter *services.LeadSubmitter
	Security  *services.SecuritySession
}

// Create handles POST /contact. Rate limiting and CSRF run in front as route
// middleware; this handler screens the payload, submits it and reports the
// outcome HX-aware.
func (h *LeadHandler) Create(c echo.Context) error {
	name := c.FormValue("name")
	phone := c.FormValue("phone")
	email := c.FormValue("email")
	message := c.FormValue("message")

	// Attack-pattern screening is logged but non-fatal; sanitization happens
	// in the submitter either way.
	url := c.Request().URL.String()
	userAgent := c.Request().UserAgent()
	for _, value := range []string{name, phone, email, message} {
		if h.Security.DetectXSS(value, url, userAgent) {
			break
		}
	}

	_, err := h.Submitter.Submit(services.LeadInput{
		Name:      name,
		Phone:     phone,
		Email:     email,
		Message:   message,
		SourceURL: url,
		UserAgent: userAgent,
		IPAddress: c.RealIP(),
	})

	isHX := c.Request().Header.Get("HX-Request") == "true"

	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		if isHX {
			return c.HTML(http.StatusBadRequest, `<div class="form-error" role="alert">`+validationErr.Message+`</div>`)
		}
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, services.ErrNotificationFailed):
		c.Logger().Errorf("Lead notification failed: %v", err)
		_, reason := h.Submitter.State()
		if isHX {
			return c.HTML(http.StatusBadGateway, `<div class="form-error" role="alert">`+reason+`</div>`)
		}
		return echo.NewHTTPError(http.StatusBadGateway, reason)
	case err != nil:
		c.Logger().Errorf("Lead submission failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "אירעה שגיאה בשליחת הטופס. נא לנסות שוב.")
	}

	if isHX {
		return c.HTML(http.StatusOK, `<div class="form-success" role="status">הפנייה התקבלה! ניצור איתך קשר בהקדם.</div>`)
	}
	return c.Redirect(http.StatusSeeOther, "/?sent=1")
}
