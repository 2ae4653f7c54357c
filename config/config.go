package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/diamondgarment/backend/models"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the process configuration, read once from the environment.
type Config struct {
	Env  string
	Port string

	MongoURI string
	DBName   string

	JWTSecret string
	JWTExpire time.Duration

	CORSAllowedOrigins []string
	// TrustedProxies are CIDR ranges allowed to set X-Forwarded-For.
	TrustedProxies []string

	UploadDir  string
	UploadPath string

	Storage StorageConfig
	Redis   RedisConfig
	SMTP    SMTPConfig
	Admin   AdminConfig

	MetricsEnabled bool
}

// StorageConfig points at an S3-compatible bucket for uploaded images.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// Enabled reports whether external storage credentials are present.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.NotifyTo != ""
}

type AdminConfig struct {
	Name            string
	Email           string
	Password        string
	EnableBootstrap bool
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using process environment")
	}

	env := strings.ToLower(firstNonEmpty(os.Getenv("ENV"), os.Getenv("NODE_ENV"), EnvDevelopment))
	if env == "prod" {
		env = EnvProduction
	}
	if env == "dev" {
		env = EnvDevelopment
	}

	cfg := &Config{
		Env:      env,
		Port:     getEnv("PORT", "5000"),
		MongoURI: firstNonEmpty(os.Getenv("MONGODB_URI"), os.Getenv("MONGO_URI")),
		DBName:   getEnv("DB_NAME", "diamond-garment"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpire: getDuration("JWT_EXPIRE", 30*24*time.Hour),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:     splitList(os.Getenv("TRUSTED_PROXIES")),

		UploadDir:  getEnv("UPLOAD_DIR", "public/uploads"),
		UploadPath: models.UploadPath,

		Storage: StorageConfig{
			Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
			AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
			Bucket:    getEnv("STORAGE_BUCKET", "diamond-garment"),
			UseSSL:    getBool("STORAGE_USE_SSL", true),
			PublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     firstNonEmpty(os.Getenv("FROM_EMAIL"), os.Getenv("SMTP_USER")),
			NotifyTo: os.Getenv("CONTACT_NOTIFY_EMAIL"),
		},
		Admin: AdminConfig{
			Name:            getEnv("ADMIN_NAME", "Admin User"),
			Email:           getEnv("ADMIN_EMAIL", "admin@diamondgarment.com"),
			Password:        getEnv("ADMIN_PASSWORD", "admin123"),
			EnableBootstrap: getBool("ENABLE_ADMIN_BOOTSTRAP", false),
		},
		MetricsEnabled: getBool("METRICS_ENABLED", true),
	}

	if cfg.MongoURI == "" {
		if cfg.IsProduction() {
			log.Fatal().Msg("MONGODB_URI environment variable is required for production")
		}
		cfg.MongoURI = "mongodb://localhost:27017"
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Fatal().Msg("JWT_SECRET environment variable is required for production")
		}
		log.Warn().Msg("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = "development-only-secret"
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// IsDevelopment is true only for the development environment, not for staging or test.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// BootstrapAllowed reports whether the HTTP admin bootstrap endpoints may be mounted.
func (c *Config) BootstrapAllowed() bool {
	return c.Admin.EnableBootstrap && !c.IsProduction()
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-integer environment value")
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-boolean environment value")
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid duration")
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
