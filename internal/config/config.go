package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Upload  UploadConfig
	JWT     JWTConfig
	Log     LogConfig
	CORS    CORSConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StorageConfig holds the local image store settings.
type StorageConfig struct {
	// BaseDir is the absolute static-files directory; each category is a subdirectory.
	BaseDir string `mapstructure:"base_dir"`
	// BackendURL prefixes every public image URL.
	BackendURL  string `mapstructure:"backend_url"`
	ServeStatic bool   `mapstructure:"serve_static"`
	Provision   bool   `mapstructure:"provision"`
}

// UploadConfig holds upload limits and allow-lists.
type UploadConfig struct {
	MaxFileSizeMB      int64    `mapstructure:"max_file_size_mb"`
	MaxFiles           int      `mapstructure:"max_files"`
	AllowedCategories  []string `mapstructure:"allowed_categories"`
	SniffContent       bool     `mapstructure:"sniff_content"`
	CleanupConcurrency int      `mapstructure:"cleanup_concurrency"`
}

// MaxFileSizeBytes returns the per-file limit in bytes.
func (u *UploadConfig) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// JWTConfig holds access-token verification settings.
type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Issuer     string `mapstructure:"issuer"`
	CookieName string `mapstructure:"cookie_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Load reads configuration from environment variables with the IMAGESVC_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("IMAGESVC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Storage defaults
	v.SetDefault("storage.base_dir", "/var/www/static/petple/images")
	v.SetDefault("storage.backend_url", "http://localhost:8080")
	v.SetDefault("storage.serve_static", false)
	v.SetDefault("storage.provision", true)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)
	v.SetDefault("upload.max_files", 5)
	v.SetDefault("upload.allowed_categories", "profiles,pets,posts")
	v.SetDefault("upload.sniff_content", true)
	v.SetDefault("upload.cleanup_concurrency", 4)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.cookie_name", "accessToken")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", "https://petple-front.vercel.app,https://localhost:5173")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "imagesvc")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "IMAGESVC_SERVER_PORT",
		"server.read_timeout":        "IMAGESVC_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "IMAGESVC_SERVER_WRITE_TIMEOUT",
		"server.environment":         "IMAGESVC_SERVER_ENVIRONMENT",
		"storage.base_dir":           "IMAGESVC_STORAGE_BASE_DIR",
		"storage.backend_url":        "IMAGESVC_STORAGE_BACKEND_URL",
		"storage.serve_static":       "IMAGESVC_STORAGE_SERVE_STATIC",
		"storage.provision":          "IMAGESVC_STORAGE_PROVISION",
		"upload.max_file_size_mb":    "IMAGESVC_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.max_files":           "IMAGESVC_UPLOAD_MAX_FILES",
		"upload.allowed_categories":  "IMAGESVC_UPLOAD_ALLOWED_CATEGORIES",
		"upload.sniff_content":       "IMAGESVC_UPLOAD_SNIFF_CONTENT",
		"upload.cleanup_concurrency": "IMAGESVC_UPLOAD_CLEANUP_CONCURRENCY",
		"jwt.secret":                 "IMAGESVC_JWT_SECRET",
		"jwt.issuer":                 "IMAGESVC_JWT_ISSUER",
		"jwt.cookie_name":            "IMAGESVC_JWT_COOKIE_NAME",
		"log.level":                  "IMAGESVC_LOG_LEVEL",
		"log.format":                 "IMAGESVC_LOG_FORMAT",
		"log.file":                   "IMAGESVC_LOG_FILE",
		"cors.allowed_origins":       "IMAGESVC_CORS_ALLOWED_ORIGINS",
		"metrics.enabled":            "IMAGESVC_METRICS_ENABLED",
		"metrics.namespace":          "IMAGESVC_METRICS_NAMESPACE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if IMAGESVC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("IMAGESVC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Storage = StorageConfig{
		BaseDir:     v.GetString("storage.base_dir"),
		BackendURL:  strings.TrimRight(v.GetString("storage.backend_url"), "/"),
		ServeStatic: v.GetBool("storage.serve_static"),
		Provision:   v.GetBool("storage.provision"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB:      v.GetInt64("upload.max_file_size_mb"),
		MaxFiles:           v.GetInt("upload.max_files"),
		AllowedCategories:  splitList(v.GetString("upload.allowed_categories")),
		SniffContent:       v.GetBool("upload.sniff_content"),
		CleanupConcurrency: v.GetInt("upload.cleanup_concurrency"),
	}
	cfg.JWT = JWTConfig{
		Secret:     v.GetString("jwt.secret"),
		Issuer:     v.GetString("jwt.issuer"),
		CookieName: v.GetString("jwt.cookie_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		File:   v.GetString("log.file"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Metrics = MetricsConfig{
		Enabled:   v.GetBool("metrics.enabled"),
		Namespace: v.GetString("metrics.namespace"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail at request time.
func (c *Config) Validate() error {
	if c.Storage.BaseDir == "" || !filepath.IsAbs(c.Storage.BaseDir) {
		return fmt.Errorf("config: storage.base_dir must be an absolute path, got %q", c.Storage.BaseDir)
	}
	if c.Upload.MaxFileSizeMB <= 0 {
		return fmt.Errorf("config: upload.max_file_size_mb must be positive, got %d", c.Upload.MaxFileSizeMB)
	}
	if c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("config: upload.max_files must be positive, got %d", c.Upload.MaxFiles)
	}
	if c.Upload.CleanupConcurrency <= 0 {
		return fmt.Errorf("config: upload.cleanup_concurrency must be positive, got %d", c.Upload.CleanupConcurrency)
	}
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret must not be empty")
	}
	return nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
