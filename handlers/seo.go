package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"

	"law_landing_go/content"
)

// BuildJSONLD renders the LegalService structured-data blob embedded in the
// landing page head.
func BuildJSONLD(c *content.SiteContent, appURL string) (template.JS, error) {
	schema := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "LegalService",
		"name":        c.Metadata.Title,
		"description": c.Metadata.Description,
		"url":         appURL,
		"telephone":   c.Contact.Phone,
		"email":       c.Contact.Email,
		"address": map[string]interface{}{
			"@type":          "PostalAddress",
			"streetAddress":  c.Contact.Address,
			"addressCountry": "IL",
		},
		"areaServed": "IL",
	}

	encoded, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to encode structured data: %w", err)
	}
	return template.JS(encoded), nil
}
