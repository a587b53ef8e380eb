package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Store     StoreConfig
	Extractor ExtractorConfig
	Pipeline  PipelineConfig
	Checkout  CheckoutConfig
	Email     EmailConfig
	Download  DownloadConfig
	Admin     AdminConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StoreConfig selects the ResultStore backend.
type StoreConfig struct {
	Provider string        `mapstructure:"provider"` // postgres or memory
	MaxAge   time.Duration `mapstructure:"max_age"`  // unclaimed results expire after this
}

// ExtractorConfig holds remote text-extraction provider settings.
type ExtractorConfig struct {
	APIKey             string `mapstructure:"api_key"`
	BaseURL            string `mapstructure:"base_url"`
	MaxFileSizeMB      int64  `mapstructure:"max_file_size_mb"`
	MaxRetries         int    `mapstructure:"max_retries"`
	RetryBaseDelayMS   int    `mapstructure:"retry_base_delay_ms"`
	UploadTimeoutSecs  int    `mapstructure:"upload_timeout_secs"`
	ConvertTimeoutSecs int    `mapstructure:"convert_timeout_secs"`
	OCRTimeoutSecs     int    `mapstructure:"ocr_timeout_secs"`
	OCRLanguage        string `mapstructure:"ocr_language"`
}

// PipelineConfig holds processing pipeline settings.
type PipelineConfig struct {
	Deliverable  string `mapstructure:"deliverable"` // report or fulltext
	PreviewChars int    `mapstructure:"preview_chars"`
}

// CheckoutConfig holds hosted payment provider settings.
type CheckoutConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	PriceCents    int64  `mapstructure:"price_cents"`
	Currency      string `mapstructure:"currency"`
	BaseURL       string `mapstructure:"base_url"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// DownloadConfig holds signed download link settings.
type DownloadConfig struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

// AdminConfig guards the admin endpoints.
type AdminConfig struct {
	// APIKeyHash is a bcrypt hash of the admin API key. Empty disables
	// the admin surface.
	APIKeyHash string `mapstructure:"api_key_hash"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DIACFIX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DIACFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "diacfix")
	v.SetDefault("db.password", "diacfix_secret")
	v.SetDefault("db.name", "diacfix_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Store defaults
	v.SetDefault("store.provider", "postgres")
	v.SetDefault("store.max_age", "24h")

	// Extractor defaults
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.base_url", "https://api.pdf.co/v1")
	v.SetDefault("extractor.max_file_size_mb", 10)
	v.SetDefault("extractor.max_retries", 3)
	v.SetDefault("extractor.retry_base_delay_ms", 500)
	v.SetDefault("extractor.upload_timeout_secs", 30)
	v.SetDefault("extractor.convert_timeout_secs", 60)
	v.SetDefault("extractor.ocr_timeout_secs", 120)
	v.SetDefault("extractor.ocr_language", "ron")

	// Pipeline defaults
	v.SetDefault("pipeline.deliverable", "report")
	v.SetDefault("pipeline.preview_chars", 500)

	// Checkout defaults
	v.SetDefault("checkout.secret_key", "")
	v.SetDefault("checkout.webhook_secret", "")
	v.SetDefault("checkout.price_cents", 199)
	v.SetDefault("checkout.currency", "eur")
	v.SetDefault("checkout.base_url", "https://diacriticefix.ro")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-central-1")
	v.SetDefault("email.from_address", "contact@diacriticefix.ro")
	v.SetDefault("email.from_name", "DiacriticeFix")

	// Download defaults
	v.SetDefault("download.token_secret", "")
	v.SetDefault("download.token_expiry", "60m")

	// Admin defaults
	v.SetDefault("admin.api_key_hash", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "DIACFIX_SERVER_PORT",
		"server.read_timeout":            "DIACFIX_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "DIACFIX_SERVER_WRITE_TIMEOUT",
		"server.environment":             "DIACFIX_SERVER_ENVIRONMENT",
		"db.host":                        "DIACFIX_DB_HOST",
		"db.port":                        "DIACFIX_DB_PORT",
		"db.user":                        "DIACFIX_DB_USER",
		"db.password":                    "DIACFIX_DB_PASSWORD",
		"db.name":                        "DIACFIX_DB_NAME",
		"db.sslmode":                     "DIACFIX_DB_SSLMODE",
		"db.max_open":                    "DIACFIX_DB_MAX_OPEN",
		"db.max_idle":                    "DIACFIX_DB_MAX_IDLE",
		"store.provider":                 "DIACFIX_STORE_PROVIDER",
		"store.max_age":                  "DIACFIX_STORE_MAX_AGE",
		"extractor.api_key":              "DIACFIX_EXTRACTOR_API_KEY",
		"extractor.base_url":             "DIACFIX_EXTRACTOR_BASE_URL",
		"extractor.max_file_size_mb":     "DIACFIX_EXTRACTOR_MAX_FILE_SIZE_MB",
		"extractor.max_retries":          "DIACFIX_EXTRACTOR_MAX_RETRIES",
		"extractor.retry_base_delay_ms":  "DIACFIX_EXTRACTOR_RETRY_BASE_DELAY_MS",
		"extractor.upload_timeout_secs":  "DIACFIX_EXTRACTOR_UPLOAD_TIMEOUT_SECS",
		"extractor.convert_timeout_secs": "DIACFIX_EXTRACTOR_CONVERT_TIMEOUT_SECS",
		"extractor.ocr_timeout_secs":     "DIACFIX_EXTRACTOR_OCR_TIMEOUT_SECS",
		"extractor.ocr_language":         "DIACFIX_EXTRACTOR_OCR_LANGUAGE",
		"pipeline.deliverable":           "DIACFIX_PIPELINE_DELIVERABLE",
		"pipeline.preview_chars":         "DIACFIX_PIPELINE_PREVIEW_CHARS",
		"checkout.secret_key":            "DIACFIX_CHECKOUT_SECRET_KEY",
		"checkout.webhook_secret":        "DIACFIX_CHECKOUT_WEBHOOK_SECRET",
		"checkout.price_cents":           "DIACFIX_CHECKOUT_PRICE_CENTS",
		"checkout.currency":              "DIACFIX_CHECKOUT_CURRENCY",
		"checkout.base_url":              "DIACFIX_CHECKOUT_BASE_URL",
		"email.provider":                 "DIACFIX_EMAIL_PROVIDER",
		"email.region":                   "DIACFIX_EMAIL_REGION",
		"email.from_address":             "DIACFIX_EMAIL_FROM_ADDRESS",
		"email.from_name":                "DIACFIX_EMAIL_FROM_NAME",
		"download.token_secret":          "DIACFIX_DOWNLOAD_TOKEN_SECRET",
		"download.token_expiry":          "DIACFIX_DOWNLOAD_TOKEN_EXPIRY",
		"admin.api_key_hash":             "DIACFIX_ADMIN_API_KEY_HASH",
		"log.level":                      "DIACFIX_LOG_LEVEL",
		"log.format":                     "DIACFIX_LOG_FORMAT",
		"cors.allowed_origins":           "DIACFIX_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DIACFIX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DIACFIX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Store = StoreConfig{
		Provider: v.GetString("store.provider"),
		MaxAge:   v.GetDuration("store.max_age"),
	}
	cfg.Extractor = ExtractorConfig{
		APIKey:             v.GetString("extractor.api_key"),
		BaseURL:            v.GetString("extractor.base_url"),
		MaxFileSizeMB:      v.GetInt64("extractor.max_file_size_mb"),
		MaxRetries:         v.GetInt("extractor.max_retries"),
		RetryBaseDelayMS:   v.GetInt("extractor.retry_base_delay_ms"),
		UploadTimeoutSecs:  v.GetInt("extractor.upload_timeout_secs"),
		ConvertTimeoutSecs: v.GetInt("extractor.convert_timeout_secs"),
		OCRTimeoutSecs:     v.GetInt("extractor.ocr_timeout_secs"),
		OCRLanguage:        v.GetString("extractor.ocr_language"),
	}
	cfg.Pipeline = PipelineConfig{
		Deliverable:  v.GetString("pipeline.deliverable"),
		PreviewChars: v.GetInt("pipeline.preview_chars"),
	}
	cfg.Checkout = CheckoutConfig{
		SecretKey:     v.GetString("checkout.secret_key"),
		WebhookSecret: v.GetString("checkout.webhook_secret"),
		PriceCents:    v.GetInt64("checkout.price_cents"),
		Currency:      v.GetString("checkout.currency"),
		BaseURL:       v.GetString("checkout.base_url"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Download = DownloadConfig{
		TokenSecret: v.GetString("download.token_secret"),
		TokenExpiry: v.GetDuration("download.token_expiry"),
	}
	cfg.Admin = AdminConfig{
		APIKeyHash: v.GetString("admin.api_key_hash"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
