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
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Vision  VisionConfig
	Fiken   FikenConfig
	Docscan DocscanConfig
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for scan image archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// VisionConfig holds settings for the Google Cloud Vision text-detection
// backend.
type VisionConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// FikenConfig holds settings for the Fiken accounting API.
type FikenConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// DocscanConfig lets deployments extend the document classifier markers
// without a rebuild. Empty lists keep the built-in defaults.
type DocscanConfig struct {
	InvoiceMarkers []string `mapstructure:"invoice_markers"`
	ReceiptMarkers []string `mapstructure:"receipt_markers"`
}

// Load reads configuration from environment variables with the BILAGSKY_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILAGSKY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "bilagsky")
	v.SetDefault("db.password", "bilagsky_secret")
	v.SetDefault("db.name", "bilagsky_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "bilagsky")

	// S3 defaults
	v.SetDefault("s3.region", "eu-north-1")
	v.SetDefault("s3.bucket", "bilagsky-scans")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-north-1")
	v.SetDefault("email.from_address", "noreply@bilagsky.no")
	v.SetDefault("email.from_name", "Bilagsky")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Vision defaults
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.endpoint", "https://vision.googleapis.com/v1/images:annotate")
	v.SetDefault("vision.timeout_secs", 30)

	// Fiken defaults
	v.SetDefault("fiken.base_url", "https://fiken.no/api/v1")
	v.SetDefault("fiken.timeout_secs", 30)

	// Docscan defaults (empty keeps built-in markers)
	v.SetDefault("docscan.invoice_markers", "")
	v.SetDefault("docscan.receipt_markers", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "BILAGSKY_SERVER_PORT",
		"server.read_timeout":     "BILAGSKY_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "BILAGSKY_SERVER_WRITE_TIMEOUT",
		"server.environment":      "BILAGSKY_SERVER_ENVIRONMENT",
		"db.host":                 "BILAGSKY_DB_HOST",
		"db.port":                 "BILAGSKY_DB_PORT",
		"db.user":                 "BILAGSKY_DB_USER",
		"db.password":             "BILAGSKY_DB_PASSWORD",
		"db.name":                 "BILAGSKY_DB_NAME",
		"db.sslmode":              "BILAGSKY_DB_SSLMODE",
		"db.max_open":             "BILAGSKY_DB_MAX_OPEN",
		"db.max_idle":             "BILAGSKY_DB_MAX_IDLE",
		"jwt.secret":              "BILAGSKY_JWT_SECRET",
		"jwt.access_expiry":       "BILAGSKY_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":      "BILAGSKY_JWT_REFRESH_EXPIRY",
		"jwt.issuer":              "BILAGSKY_JWT_ISSUER",
		"s3.region":               "BILAGSKY_S3_REGION",
		"s3.bucket":               "BILAGSKY_S3_BUCKET",
		"s3.endpoint":             "BILAGSKY_S3_ENDPOINT",
		"s3.access_key":           "BILAGSKY_S3_ACCESS_KEY",
		"s3.secret_key":           "BILAGSKY_S3_SECRET_KEY",
		"s3.max_file_size_mb":     "BILAGSKY_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":       "BILAGSKY_S3_PRESIGN_EXPIRY",
		"log.level":               "BILAGSKY_LOG_LEVEL",
		"log.format":              "BILAGSKY_LOG_FORMAT",
		"cors.allowed_origins":    "BILAGSKY_CORS_ALLOWED_ORIGINS",
		"email.provider":          "BILAGSKY_EMAIL_PROVIDER",
		"email.region":            "BILAGSKY_EMAIL_REGION",
		"email.from_address":      "BILAGSKY_EMAIL_FROM_ADDRESS",
		"email.from_name":         "BILAGSKY_EMAIL_FROM_NAME",
		"email.frontend_url":      "BILAGSKY_EMAIL_FRONTEND_URL",
		"vision.api_key":          "BILAGSKY_VISION_API_KEY",
		"vision.endpoint":         "BILAGSKY_VISION_ENDPOINT",
		"vision.timeout_secs":     "BILAGSKY_VISION_TIMEOUT_SECS",
		"fiken.base_url":          "BILAGSKY_FIKEN_BASE_URL",
		"fiken.timeout_secs":      "BILAGSKY_FIKEN_TIMEOUT_SECS",
		"docscan.invoice_markers": "BILAGSKY_DOCSCAN_INVOICE_MARKERS",
		"docscan.receipt_markers": "BILAGSKY_DOCSCAN_RECEIPT_MARKERS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILAGSKY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILAGSKY_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Vision = VisionConfig{
		APIKey:      v.GetString("vision.api_key"),
		Endpoint:    v.GetString("vision.endpoint"),
		TimeoutSecs: v.GetInt("vision.timeout_secs"),
	}
	cfg.Fiken = FikenConfig{
		BaseURL:     v.GetString("fiken.base_url"),
		TimeoutSecs: v.GetInt("fiken.timeout_secs"),
	}
	cfg.Docscan = DocscanConfig{
		InvoiceMarkers: splitList(v.GetString("docscan.invoice_markers")),
		ReceiptMarkers: splitList(v.GetString("docscan.receipt_markers")),
	}

	return cfg, nil
}

// splitList parses a comma-separated env value into a trimmed slice.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
