package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	Port        string
	DatabaseURL string
	SQLitePath  string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string

	// Phone normalization for the studio's locale: bare national mobile
	// numbers (10 digits starting with MobilePrefix) get CountryCode
	// prepended before WhatsApp delivery.
	PhoneCountryCode  string
	PhoneMobilePrefix string
	TemplateLanguage  string

	DispatchCronSpec string
	SendTimeout      time.Duration

	AllowedOrigins []string
}

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getenvDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenvDefault("SQLITE_PATH", "shutterdesk.db"),

		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		SendGridFromName:  getenvDefault("SENDGRID_FROM_NAME", "Shutterdesk"),

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),

		PhoneCountryCode:  getenvDefault("PHONE_COUNTRY_CODE", "57"),
		PhoneMobilePrefix: getenvDefault("PHONE_MOBILE_PREFIX", "3"),
		TemplateLanguage:  getenvDefault("WHATSAPP_TEMPLATE_LANGUAGE", "es"),

		DispatchCronSpec: getenvDefault("DISPATCH_CRON", "0 8 * * *"),
		SendTimeout:      parseDurationEnv("SEND_TIMEOUT", 30*time.Second),

		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
	}
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func splitEnv(key, def string) []string {
	value := getenvDefault(key, def)
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as duration: %v", key, value, err)
		return def
	}
	return parsed
}
