package handlers

import (
	"encoding/json"
	"net/http"

	"law_landing_go/models"
	"law_landing_go/services"

	"github.com/labstack/echo/v4"
)

// cspReportBody matches the report-uri payload browsers POST on a CSP
// violation.
type cspReportBody struct {
	Report struct {
		BlockedURI        string `json:"blocked-uri"`
		ViolatedDirective string `json:"violated-directive"`
		OriginalPolicy    string `json:"original-policy"`
		SourceFile        string `json:"source-file"`
		LineNumber        int    `json:"line-number"`
	} `json:"csp-report"`
}

// SecurityReportHandler receives browser CSP reports
type SecurityReportHandler struct {
	Violations *services.ViolationLog
}

// CSPReport handles POST /csp-report. Reports are stored in the capped CSP
// log; malformed payloads are dropped silently since the sender is not a
// user.
func (h *SecurityReportHandler) CSPReport(c echo.Context) error {
	var body cspReportBody
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return c.NoContent(http.StatusNoContent)
	}

	violation := &models.CSPViolation{
		BlockedURI:        body.Report.BlockedURI,
		ViolatedDirective: body.Report.ViolatedDirective,
		OriginalPolicy:    body.Report.OriginalPolicy,
		SourceFile:        body.Report.SourceFile,
		LineNumber:        body.Report.LineNumber,
		UserAgent:         c.Request().UserAgent(),
	}
	if err := h.Violations.RecordCSP(violation); err != nil {
		c.Logger().Errorf("Failed to store CSP report: %v", err)
	}

	return c.NoContent(http.StatusNoContent)
}
