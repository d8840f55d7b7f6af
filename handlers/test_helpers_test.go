package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"law_landing_go/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:mem_%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.New().String())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Lead{},
		&models.SecurityViolation{},
		&models.CSPViolation{},
		&models.VisitorPreference{},
		&models.ConsentLog{},
	)
	assert.NoError(t, err)

	return testDB
}

// setupEcho creates an Echo instance with the page templates loaded
func setupEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	renderer, err := NewTemplateRenderer("../templates/pages/*.html")
	assert.NoError(t, err)
	e.Renderer = renderer
	return e
}

// newFormContext builds a context carrying a urlencoded form body
func newFormContext(e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
