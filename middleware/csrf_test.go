package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"law_landing_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestCSRFMiddleware(t *testing.T) {
	e := echo.New()
	session := services.NewSecuritySession(nil)
	mw := CSRF(CSRFConfig{Session: session})

	echoToken := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, GetCSRFToken(c))
	})

	t.Run("GetExposesToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		err := echoToken(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, session.CSRFToken(), rec.Body.String())
	})

	t.Run("PostWithoutTokenRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		rec := httptest.NewRecorder()

		err := echoToken(e.NewContext(req, rec))
		he, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})

	t.Run("PostWithHeaderTokenAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.Header.Set("X-CSRF-Token", session.CSRFToken())
		rec := httptest.NewRecorder()

		err := echoToken(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("PostWithFormTokenAllowed", func(t *testing.T) {
		form := url.Values{}
		form.Set("_csrf", session.CSRFToken())
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()

		err := echoToken(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("SkipperBypassesCheck", func(t *testing.T) {
		skipping := CSRF(CSRFConfig{
			Session: session,
			Skipper: func(c echo.Context) bool { return c.Path() == "/csp-report" },
		})(func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodPost, "/csp-report", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/csp-report")

		err := skipping(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
