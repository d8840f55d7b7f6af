package middleware

import (
	"net/http"

	"law_landing_go/services"

	"github.com/labstack/echo/v4"
)

const csrfContextKey = "csrf"

// CSRFConfig configures the CSRF middleware
type CSRFConfig struct {
	Session *services.SecuritySession
	// Skipper bypasses the check for requests that cannot carry a token
	// (e.g. browser-generated CSP reports)
	Skipper func(c echo.Context) bool
}

// CSRF exposes the session token to safe requests and validates it on
// state-changing ones. A mismatch blocks the guarded action with 403; the
// violation itself is logged by the session.
func CSRF(config CSRFConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper != nil && config.Skipper(c) {
				return next(c)
			}

			c.Set(csrfContextKey, config.Session.CSRFToken())

			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			candidate := c.Request().Header.Get("X-CSRF-Token")
			if candidate == "" {
				candidate = c.FormValue("_csrf")
			}

			if !config.Session.ValidateCSRFToken(candidate, c.Request().URL.String(), c.Request().UserAgent()) {
				if c.Request().Header.Get("HX-Request") == "true" {
					return c.HTML(http.StatusForbidden, `<div class="form-error" role="alert">פג תוקף הטופס. רענן את העמוד ונסה שוב.</div>`)
				}
				return echo.NewHTTPError(http.StatusForbidden, "פג תוקף הטופס. רענן את העמוד ונסה שוב.")
			}

			return next(c)
		}
	}
}

// GetCSRFToken retrieves the CSRF token from the Echo context.
// This token should be included in forms and AJAX requests.
func GetCSRFToken(c echo.Context) string {
	token := c.Get(csrfContextKey)
	if token == nil {
		return ""
	}
	if tokenStr, ok := token.(string); ok {
		return tokenStr
	}
	return ""
}
