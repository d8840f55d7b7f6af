package handlers

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"sync"
	"time"

	"law_landing_go/config"
	"law_landing_go/middleware"
	"law_landing_go/models"
	"law_landing_go/services"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminCookieName     = "admin_session"
	adminSessionMaxAge  = 24 * time.Hour
	adminSessionIDBytes = 32
)

// AdminHandler serves the small lead-management surface behind a login
type AdminHandler struct {
	Cfg      *config.Config
	Security *services.SecuritySession
	DB       *gorm.DB

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry
}

// NewAdminHandler creates the admin surface
func NewAdminHandler(cfg *config.Config, security *services.SecuritySession, db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		Cfg:      cfg,
		Security: security,
		DB:       db,
		sessions: make(map[string]time.Time),
	}
}

// loginPageData is the view model for the admin login page
type loginPageData struct {
	Nonce     string
	CSRFToken string
	Error     string
}

// LoginPage renders the admin login form
func (h *AdminHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_login.html", loginPageData{
		Nonce:     middleware.GetNonce(c.Request().Context()),
		CSRFToken: middleware.GetCSRFToken(c),
	})
}

// Login handles POST /admin/login. Failures feed the security session's
// 5-strike lockout; the login rate limiter runs in front as route middleware.
func (h *AdminHandler) Login(c echo.Context) error {
	if status := h.Security.IsLockedOut(); status.Locked {
		return h.loginError(c, http.StatusTooManyRequests,
			"יותר מדי ניסיונות כושלים. נסה שוב בעוד "+minutesLabel(status.RemainingMinutes)+".")
	}

	email := c.FormValue("email")
	password := c.FormValue("password")

	if !h.credentialsValid(email, password) {
		result := h.Security.RecordLoginAttempt(false)
		if !result.Allowed {
			return h.loginError(c, http.StatusTooManyRequests, result.Message)
		}
		return h.loginError(c, http.StatusUnauthorized, "פרטי התחברות שגויים.")
	}

	h.Security.RecordLoginAttempt(true)

	token := services.GenerateSecureID(adminSessionIDBytes)
	h.mu.Lock()
	h.sessions[token] = time.Now().Add(adminSessionMaxAge)
	h.mu.Unlock()

	c.SetCookie(&http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/admin",
		Expires:  time.Now().Add(adminSessionMaxAge),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return c.Redirect(http.StatusSeeOther, "/admin/leads")
}

func (h *AdminHandler) credentialsValid(email, password string) bool {
	if h.Cfg.AdminPasswordHash == "" {
		return false // admin login disabled
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(h.Cfg.AdminEmail)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(h.Cfg.AdminPasswordHash), []byte(password)) == nil
	return emailOK && passwordOK
}

func (h *AdminHandler) loginError(c echo.Context, code int, message string) error {
	return c.Render(code, "admin_login.html", loginPageData{
		Nonce:     middleware.GetNonce(c.Request().Context()),
		CSRFToken: middleware.GetCSRFToken(c),
		Error:     message,
	})
}

func minutesLabel(minutes int) string {
	if minutes == 1 {
		return "דקה"
	}
	return strconv.Itoa(minutes) + " דקות"
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(adminCookieName); err == nil {
		h.mu.Lock()
		delete(h.sessions, cookie.Value)
		h.mu.Unlock()
	}
	c.SetCookie(&http.Cookie{
		Name:    adminCookieName,
		Value:   "",
		Path:    "/admin",
		Expires: time.Unix(0, 0),
	})
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

// RequireAdmin gates the admin routes on a valid session cookie
func (h *AdminHandler) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(adminCookieName)
			if err != nil || !h.sessionValid(cookie.Value) {
				return c.Redirect(http.StatusSeeOther, "/admin/login")
			}
			return next(c)
		}
	}
}

func (h *AdminHandler) sessionValid(token string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	expiry, ok := h.sessions[token]
	return ok && time.Now().Before(expiry)
}

// CleanupExpiredSessions drops expired admin sessions; called from the
// background ticker in cmd/server.
func (h *AdminHandler) CleanupExpiredSessions() {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := time.Now()
	for token, expiry := range h.sessions {
		if now.After(expiry) {
			delete(h.sessions, token)
		}
	}
}

// Leads handles GET /admin/leads: the stored leads as JSON, newest first
func (h *AdminHandler) Leads(c echo.Context) error {
	var leads []models.Lead
	if err := h.DB.Order("created_at DESC").Find(&leads).Error; err != nil {
		c.Logger().Errorf("Failed to fetch leads: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch leads")
	}
	return c.JSON(http.StatusOK, leads)
}

// ExportLeads handles GET /admin/leads/export: the stored leads as an .xlsx
// attachment. The exportData rate limiter runs in front as route middleware.
func (h *AdminHandler) ExportLeads(c echo.Context) error {
	buf, err := services.ExportLeadsXLSX(h.DB)
	if err != nil {
		c.Logger().Errorf("Failed to export leads: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export leads")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="leads.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
