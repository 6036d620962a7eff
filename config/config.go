package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	BaseURL   string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// MailBackend selects the outgoing mail transport: "smtp", "sendgrid"
	// or "console" (dev default, prints to stdout).
	MailBackend  string
	EmailSender  string
	SenderName   string
	SMTPHost     string
	SMTPPort     string
	SMTPPassword string
	SendGridKey  string

	UploadDir string

	PaymentApiURL    string
	PaymentApiKey    string
	PaymentSecretKey string
	PaymentSandbox   bool

	// ResetTokenMaxAge is the lifetime of a password reset token in seconds.
	ResetTokenMaxAge int
}

// Load initializes configuration from environment variables or defaults.
// The returned Config is handed down explicitly; nothing here is global.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "3000"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "lms"),
		DBPort:     getEnv("DB_PORT", "5432"),

		MailBackend:  getEnv("MAIL_BACKEND", "console"),
		EmailSender:  getEnv("EMAIL_SENDER", "no-reply@localhost"),
		SenderName:   getEnv("EMAIL_SENDER_NAME", "Course Platform"),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SendGridKey:  getEnv("SENDGRID_API_KEY", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./public/uploads"),

		PaymentApiURL:    getEnv("PAYMENT_API_URL", "https://api.sandbox.credpay.io/v1/"),
		PaymentApiKey:    getEnv("PAYMENT_API_KEY", ""),
		PaymentSecretKey: getEnv("PAYMENT_SECRET_KEY", ""),
		PaymentSandbox:   getEnvBool("PAYMENT_SANDBOX", true),

		ResetTokenMaxAge: getEnvInt("RESET_TOKEN_MAX_AGE", 1800),
	}

	// Validate critical configuration
	if cfg.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
