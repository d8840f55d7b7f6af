package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGenerateNonce(t *testing.T) {
	first, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var nonce string
	handler := SecurityHeaders()(func(c echo.Context) error {
		nonce = GetNonce(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, handler(c))
	assert.NotEmpty(t, nonce)

	h := rec.Header()
	csp := h.Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "'nonce-"+nonce+"'")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Contains(t, csp, "report-uri /csp-report")

	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
}
