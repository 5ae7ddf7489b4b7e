package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Database
	DatabaseURL string

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Integrations
	S3      S3Config
	Mailgun MailgunConfig
	Redis   RedisConfig
	PDF     PDFConfig
}

// S3Config holds object storage configuration for uploaded documents and
// generated reports.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// MailgunConfig holds Mailgun email delivery configuration.
type MailgunConfig struct {
	Domain        string
	APIKey        string
	Sender        string
	NotifyAddress string // inbox that receives enquiry notifications
}

// RedisConfig holds the OTP store connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PDFConfig holds headless browser settings for report rendering.
type PDFConfig struct {
	ChromiumPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	databaseURL, err := resolveDatabaseURL()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		DatabaseURL:   databaseURL,
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "af-south-1"),
			Bucket:          getEnv("S3_BUCKET", "wisebond-documents"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		Mailgun: MailgunConfig{
			Domain:        getEnv("MAILGUN_DOMAIN", ""),
			APIKey:        getEnv("MAILGUN_API_KEY", ""),
			Sender:        getEnv("MAILGUN_SENDER", "WiseBond <noreply@wisebond.co.za>"),
			NotifyAddress: getEnv("ENQUIRY_NOTIFY_ADDRESS", "consultants@wisebond.co.za"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		PDF: PDFConfig{
			ChromiumPath: getEnv("CHROMIUM_PATH", "/usr/bin/chromium"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveDatabaseURL resolves the connection string in tiers: a full
// DATABASE_URL wins; otherwise the discrete PG* variables are assembled
// into one. Credentials are URL-escaped so passwords with symbols survive.
func resolveDatabaseURL() (string, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}

	host := os.Getenv("PGHOST")
	user := os.Getenv("PGUSER")
	password := os.Getenv("PGPASSWORD")
	dbname := os.Getenv("PGDATABASE")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("DATABASE_URL or PGHOST/PGUSER/PGDATABASE are required")
	}

	port := getEnv("PGPORT", "5432")
	sslmode := getEnv("PGSSLMODE", "require")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(user), url.QueryEscape(password), host, port, dbname, sslmode), nil
}

func (c *Config) validate() error {
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
