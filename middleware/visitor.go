package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	visitorCookieName = "visitor_id"
	visitorContextKey = "visitor_id"
	visitorCookieAge  = 365 * 24 * time.Hour
)

// VisitorID assigns each browser an anonymous identifier cookie. Preferences
// are keyed by it, so consent decisions stick per browser rather than per
// session.
func VisitorID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string

			cookie, err := c.Cookie(visitorCookieName)
			if err == nil && cookie.Value != "" {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = uuid.New().String()
				c.SetCookie(&http.Cookie{
					Name:     visitorCookieName,
					Value:    id,
					Path:     "/",
					Expires:  time.Now().Add(visitorCookieAge),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(visitorContextKey, id)
			return next(c)
		}
	}
}

// GetVisitorID retrieves the visitor identifier from the Echo context
func GetVisitorID(c echo.Context) string {
	if id, ok := c.Get(visitorContextKey).(string); ok {
		return id
	}
	return ""
}
