package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	AppURL      string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	LeadNotifyTo  string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Admin access
	AdminEmail        string
	AdminPasswordHash string // bcrypt hash; empty disables admin login
	// Other
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")
	adminHash := getEnv("ADMIN_PASSWORD_HASH", "")
	ValidateAdminPasswordHash(adminHash, environment)

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DBPath:            getEnv("DB_PATH", "db/app.db"),
		Environment:       environment,
		AppURL:            getEnv("APP_URL", "http://localhost:8080"),
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		EmailFrom:         getEnv("EMAIL_FROM", "noreply@cohen-law.co.il"),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "Cohen & Associates"),
		LeadNotifyTo:      getEnv("LEAD_NOTIFY_TO", "office@cohen-law.co.il"),
		EmailTestMode:     getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@cohen-law.co.il"),
		AdminPasswordHash: adminHash,
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// ValidateAdminPasswordHash checks that the configured admin credential is a
// usable bcrypt hash. In production an invalid hash is fatal; an empty value
// disables the admin login entirely.
func ValidateAdminPasswordHash(hash string, environment string) {
	if hash == "" {
		if environment == "production" {
			log.Println("[WARNING] ADMIN_PASSWORD_HASH not set. Admin login is disabled. Generate with: htpasswd -bnBC 10 \"\" <password>")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("probe")); err != nil && err != bcrypt.ErrMismatchedHashAndPassword {
		if environment == "production" {
			log.Fatalf("[CRITICAL] ADMIN_PASSWORD_HASH is not a valid bcrypt hash: %v", err)
		}
		log.Printf("[WARNING] ADMIN_PASSWORD_HASH is not a valid bcrypt hash: %v. Admin login will reject all attempts.", err)
	}
}
