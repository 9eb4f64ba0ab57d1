package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTTTL    time.Duration

	SMTPHost        string
	SMTPUser        string
	SMTPPass        string
	SMTPSkipVerify  bool
	MailFromName    string
	MailFromAddress string
	ContactAddress  string

	UploadDir        string
	DefaultImageName string

	OTPTTL          time.Duration
	WizardTTL       time.Duration
	ContactRateWait time.Duration

	// Cron expression for the contract status refresh job.
	ContractRefreshSchedule string

	// Bootstrap admin credentials; seeding is skipped when either is empty.
	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		SMTPSkipVerify:  getEnv("SMTP_SKIP_VERIFY", "false") == "true",
		MailFromName:    getEnv("MAIL_FROM_NAME", "HR Payroll"),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", "noreply@localhost"),
		ContactAddress:  getEnv("CONTACT_ADDRESS", "hr@localhost"),

		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		DefaultImageName: getEnv("DEFAULT_IMAGE_NAME", "default.jpg"),

		ContractRefreshSchedule: getEnv("CONTRACT_REFRESH_SCHEDULE", "0 3 * * *"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.OTPTTL, err = parseDuration(getEnv("OTP_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL: %w", err)
	}
	cfg.WizardTTL, err = parseDuration(getEnv("WIZARD_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid WIZARD_TTL: %w", err)
	}
	cfg.ContactRateWait, err = parseDuration(getEnv("CONTACT_RATE_WAIT", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONTACT_RATE_WAIT: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
