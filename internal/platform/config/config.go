package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/ticket_gate/internal/platform/database"
)

type Config struct {
	// Server
	Port        string
	Environment string
	CORSOrigin  string
	LogLevel    slog.Level

	Database database.Config
	RedisURL string

	// Payment gateway
	GatewayKeyID     string
	GatewayKeySecret string
	UnitPrice        decimal.Decimal
	Currency         string
	MaxPersons       int
	PaymentSandbox   bool

	// Tickets
	BaseURL string

	// Staff auth
	JWTSecret     string
	JWTTTL        time.Duration
	AdminName     string
	AdminEmail    string
	AdminPassword string

	// Mail
	SMTPHost     string
	SMTPPort     int
	EmailUser    string
	EmailPass    string
	MailFromName string

	// Realtime feed
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubChannel      string
}

// Load reads an optional .env file and then the process environment.
func Load(envFile string) *Config {
	if err := godotenv.Load(envFile); err != nil {
		slog.Info(".env file not found, using process environment", "path", envFile)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:5173"),
		LogLevel:    getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),

		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "ticket_gate"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisURL: getEnv("REDIS_URL", "localhost:6379"),

		GatewayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		GatewayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		UnitPrice:        getEnvAsDecimal("UNIT_PRICE", decimal.NewFromInt(99)),
		Currency:         getEnv("CURRENCY", "INR"),
		MaxPersons:       getEnvAsInt("MAX_PERSONS", 20),
		PaymentSandbox:   getEnvAsBool("PAYMENT_SANDBOX", false),

		BaseURL: getEnv("BASE_URL", "http://localhost:5173"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTL:        getEnvAsDuration("JWT_TTL", "24h"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.titan.email"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		EmailUser:    getEnv("EMAIL_USER", ""),
		EmailPass:    getEnv("EMAIL_PASS", ""),
		MailFromName: getEnv("MAIL_FROM_NAME", "Ticket Desk"),

		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubChannel:      getEnv("PUBNUB_CHANNEL", "tickets"),
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.GatewayKeyID == "" {
		errs = append(errs, errors.New("RAZORPAY_KEY_ID is required"))
	}
	if c.GatewayKeySecret == "" {
		errs = append(errs, errors.New("RAZORPAY_KEY_SECRET is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if !c.UnitPrice.IsPositive() {
		errs = append(errs, errors.New("UNIT_PRICE must be positive"))
	}
	if c.PaymentSandbox && !c.IsDevelopment() {
		errs = append(errs, errors.New("PAYMENT_SANDBOX is only allowed in development"))
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) RealtimeEnabled() bool {
	return c.PubNubPublishKey != "" && c.PubNubSubscribeKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := getEnv(key, "")
	if value, err := decimal.NewFromString(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(getEnv(key, "")))); err == nil {
		return level
	}
	return defaultValue
}
