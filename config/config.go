package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Security   SecurityConfig
	Import     ImportConfig
	Monitoring MonitoringConfig
	CORS       CORSConfig
	Flash      FlashConfig
	Redis      RedisConfig
	S3         S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
	// MaxBodyBytes caps page request bodies. It sits well above the photo cap
	// so an oversized photo is dropped by the upload check, not the transport.
	MaxBodyBytes int64
}

type StorageConfig struct {
	RecipesDir string
	UploadsDir string
	// UploadBackend is "local" or "s3"
	UploadBackend string
}

type SecurityConfig struct {
	AdminPIN      string
	AdminPINHash  string // bcrypt hash, takes precedence over AdminPIN
	CSRFSecret    string
	CSRFTokenTTL  time.Duration
	SessionCookie string
	CookieSecure  bool
}

type ImportConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

type MonitoringConfig struct {
	TargetsFile   string
	ReloadURL     string
	ReloadTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type FlashConfig struct {
	// Backend is "cookie" or "redis"
	Backend string
	TTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
	Prefix          string
}

var (
	ErrMissingAdminSecret = errors.New("ADMIN_PIN or ADMIN_PIN_HASH must be set")
	ErrMissingCSRFSecret  = errors.New("CSRF_SECRET must be set")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			GinMode:      getEnv("GIN_MODE", "debug"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			MaxBodyBytes: parseInt64(getEnv("MAX_BODY_BYTES", "33554432"), 32<<20),
		},
		Storage: loadStorage(),
		Security: SecurityConfig{
			AdminPIN:      getEnv("ADMIN_PIN", ""),
			AdminPINHash:  getEnv("ADMIN_PIN_HASH", ""),
			CSRFSecret:    getEnv("CSRF_SECRET", ""),
			CSRFTokenTTL:  parseDuration(getEnv("CSRF_TOKEN_TTL", "2h"), 2*time.Hour),
			SessionCookie: getEnv("SESSION_COOKIE_NAME", "recipebox_session"),
			CookieSecure:  parseBool(getEnv("SESSION_COOKIE_SECURE", "false")),
		},
		Import: ImportConfig{
			WebhookURL: getEnv("IMPORT_WEBHOOK_URL", "http://localhost:5678/webhook/recipe-import"),
			Timeout:    parseDuration(getEnv("IMPORT_TIMEOUT", "30s"), 30*time.Second),
		},
		Monitoring: MonitoringConfig{
			TargetsFile:   getEnv("TARGETS_FILE", "./blackbox_targets/blackbox_targets.json"),
			ReloadURL:     getEnv("PROMETHEUS_RELOAD_URL", "http://localhost:9090/-/reload"),
			ReloadTimeout: parseDuration(getEnv("RELOAD_TIMEOUT", "5s"), 5*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Flash: FlashConfig{
			Backend: getEnv("FLASH_BACKEND", "cookie"),
			TTL:     parseDuration(getEnv("FLASH_TTL", "5m"), 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       int(parseInt64(getEnv("REDIS_DB", "0"), 0)),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", "recipe-box-uploads"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
			Prefix:          getEnv("AWS_S3_PREFIX", "uploads/recipes"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadStorage reads only the storage settings, for tools that run without
// the server's secrets (cmd/seed)
func LoadStorage() StorageConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return loadStorage()
}

func loadStorage() StorageConfig {
	return StorageConfig{
		RecipesDir:    getEnv("RECIPES_DIR", "./recipes"),
		UploadsDir:    getEnv("UPLOADS_DIR", "./uploads/recipes"),
		UploadBackend: getEnv("UPLOAD_BACKEND", "local"),
	}
}

// Validate checks the secrets the server cannot run without
func (c *Config) Validate() error {
	if c.Security.AdminPIN == "" && c.Security.AdminPINHash == "" {
		return ErrMissingAdminSecret
	}
	if c.Security.CSRFSecret == "" {
		return ErrMissingCSRFSecret
	}
	return nil
}

func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt64(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
