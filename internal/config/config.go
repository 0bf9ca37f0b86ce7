package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	SpreadsheetID            string
	GoogleServiceAccountJSON string

	// bcrypt hash of the shared admin secret
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration

	AdminWhatsApp string

	DefaultCapacity       int
	PendingOverdue        time.Duration
	AllowRejectedResubmit bool

	Notifier      string // none|telegram
	TelegramToken string
	AdminTGID     int64
}

func FromEnv() (Config, error) {
	var c Config

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}

	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	c.AdminPasswordHash = strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH"))
	c.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	c.TokenTTL = durationEnv("TOKEN_TTL", 12*time.Hour)

	c.AdminWhatsApp = strings.TrimSpace(os.Getenv("ADMIN_WHATSAPP"))

	c.DefaultCapacity = intEnv("DEFAULT_CAPACITY", 20)
	c.PendingOverdue = durationEnv("PENDING_OVERDUE", time.Hour)
	c.AllowRejectedResubmit = boolEnv("ALLOW_REJECTED_RESUBMIT", true)

	c.Notifier = strings.TrimSpace(os.Getenv("NOTIFIER"))
	if c.Notifier == "" {
		c.Notifier = "none"
	}
	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	c.AdminTGID, _ = strconv.ParseInt(strings.TrimSpace(os.Getenv("ADMIN_TG_ID")), 10, 64)

	if c.SpreadsheetID == "" {
		return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
	}
	if c.GoogleServiceAccountJSON == "" {
		return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
	}
	if c.AdminPasswordHash == "" {
		return c, fmt.Errorf("ADMIN_PASSWORD_HASH is empty")
	}
	if c.JWTSecret == "" {
		return c, fmt.Errorf("JWT_SECRET is empty")
	}
	if c.Notifier == "telegram" && c.TelegramToken == "" {
		return c, fmt.Errorf("NOTIFIER=telegram but TELEGRAM_BOT_TOKEN is empty")
	}

	return c, nil
}

func intEnv(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func boolEnv(key string, def bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch raw {
	case "true", "yes", "1", "y":
		return true
	case "false", "no", "0", "n":
		return false
	default:
		return def
	}
}
