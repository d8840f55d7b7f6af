package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// SitemapHandler serves the crawl surface
type SitemapHandler struct {
	AppURL string
}

var publicPaths = []string{"/", "/privacy", "/accessibility-statement"}

// Sitemap handles GET /sitemap.xml
func (h *SitemapHandler) Sitemap(c echo.Context) error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	lastMod := time.Now().Format("2006-01-02")
	for _, path := range publicPaths {
		fmt.Fprintf(&b, "  <url><loc>%s%s</loc><lastmod>%s</lastmod></url>\n", h.AppURL, path, lastMod)
	}
	b.WriteString("</urlset>\n")

	return c.Blob(http.StatusOK, "application/xml", []byte(b.String()))
}

// Robots handles GET /robots.txt
func (h *SitemapHandler) Robots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", h.AppURL)
	return c.String(http.StatusOK, body)
}
