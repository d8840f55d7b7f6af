package services

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	angleBracketPattern = regexp.MustCompile(`[<>]`)
	jsProtocolPattern   = regexp.MustCompile(`(?i)javascript:`)
	dataURIPattern      = regexp.MustCompile(`(?i)data:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+=`)
)

// xssPatterns is the fixed set of suspicious constructs checked by
// ContainsXSSPattern.
var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)<object`),
	regexp.MustCompile(`(?i)<embed`),
	regexp.MustCompile(`(?i)expression\s*\(`),
	regexp.MustCompile(`(?i)vbscript:`),
}

// htmlPolicy is an allowlist sanitizer for user-generated content
var htmlPolicy = bluemonday.UGCPolicy()

// SanitizeInput strips angle brackets, javascript:/data: URI prefixes and
// on*= attribute-like substrings from plain-text input. This is a denylist,
// not a parser; callers must still escape on output.
func SanitizeInput(input string) string {
	s := angleBracketPattern.ReplaceAllString(input, "")
	s = jsProtocolPattern.ReplaceAllString(s, "")
	s = eventHandlerPattern.ReplaceAllString(s, "")
	s = dataURIPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// SanitizeHTML rebuilds HTML from an allowlist of safe tags and attributes.
// Script, iframe, object and embed tags and inline event handlers do not
// survive the policy.
func SanitizeHTML(html string) string {
	return htmlPolicy.Sanitize(html)
}

// ContainsXSSPattern reports whether the input matches any known attack
// pattern. Side-effect free; SecuritySession.DetectXSS adds violation logging.
func ContainsXSSPattern(input string) bool {
	for _, pattern := range xssPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks email format only; no external verification
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Israeli mobile formats: 05X-XXXXXXX, 05XXXXXXXX, +972-5X-XXXXXXX
var israeliPhonePattern = regexp.MustCompile(`^(\+972|972|0)?(5[0-9])(\d{7})$`)

// IsValidIsraeliPhone checks phone format only, ignoring spaces and hyphens
func IsValidIsraeliPhone(phone string) bool {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return israeliPhonePattern.MatchString(normalized)
}

// HashString returns the SHA-256 hex digest of a string. For display and
// debugging only - not for password storage or integrity decisions.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
