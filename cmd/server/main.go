package main

import (
	"log"
	"time"

	"law_landing_go/config"
	"law_landing_go/content"
	"law_landing_go/db"
	"law_landing_go/handlers"
	"law_landing_go/middleware"
	"law_landing_go/models"
	"law_landing_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Lead{},
		&models.SecurityViolation{},
		&models.CSPViolation{},
		&models.VisitorPreference{},
		&models.ConsentLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire services explicitly; the security session lives for the whole
	// server process.
	violations := services.NewViolationLog(db.DB)
	security := services.NewSecuritySession(violations)
	prefs := services.NewPreferenceStore(db.DB)
	mailer := services.NewLeadMailer(cfg)
	submitter := services.NewLeadSubmitter(db.DB, mailer)
	limiter := middleware.NewRateLimiter()

	// React to consent changes, e.g. to gate analytics
	go func() {
		for p := range prefs.Subscribe() {
			log.Printf("Cookie preferences changed: analytics=%v marketing=%v", p.Analytics, p.Marketing)
		}
	}()

	siteContent := content.Default()
	home := &handlers.HomeHandler{Content: siteContent, Prefs: prefs, AppURL: cfg.AppURL}
	lead := &handlers.LeadHandler{Submitter: submitter, Security: security}
	consent := &handlers.ConsentHandler{Prefs: prefs}
	report := &handlers.SecurityReportHandler{Violations: violations}
	sitemap := &handlers.SitemapHandler{AppURL: cfg.AppURL}
	admin := handlers.NewAdminHandler(cfg, security, db.DB)

	// Create Echo instance
	e := echo.New()

	renderer, err := handlers.NewTemplateRenderer("templates/pages/*.html")
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	e.Renderer = renderer

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.VisitorID())
	e.Use(middleware.CSRF(middleware.CSRFConfig{
		Session: security,
		Skipper: func(c echo.Context) bool {
			// Browser-generated reports carry no token
			return c.Path() == "/csp-report"
		},
	}))

	// Static files
	e.Static("/static", "static")

	// Public pages
	e.GET("/", home.Landing)
	e.GET("/privacy", home.Privacy)
	e.GET("/accessibility-statement", home.AccessibilityStatement)
	e.GET("/sitemap.xml", sitemap.Sitemap)
	e.GET("/robots.txt", sitemap.Robots)

	// Contact form
	e.POST("/contact", lead.Create, limiter.Middleware("contactForm"))

	// Consent banner and accessibility widget
	e.POST("/consent/accept", consent.AcceptAll)
	e.POST("/consent/decline", consent.DeclineAll)
	e.POST("/consent/preferences", consent.SaveCustom)
	e.POST("/accessibility", consent.SaveAccessibility)
	e.POST("/accessibility/hide", consent.HideWidget)

	// CSP violation reports
	e.POST("/csp-report", report.CSPReport)

	// Admin surface
	e.GET("/admin/login", admin.LoginPage)
	e.POST("/admin/login", admin.Login, limiter.Middleware("login"))
	adminRoutes := e.Group("/admin")
	adminRoutes.Use(admin.RequireAdmin())
	{
		adminRoutes.POST("/logout", admin.Logout)
		adminRoutes.GET("/leads", admin.Leads)
		adminRoutes.GET("/leads/export", admin.ExportLeads, limiter.Middleware("exportData"))
	}

	// Start background cleanup job (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			admin.CleanupExpiredSessions()
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
