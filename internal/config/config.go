package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgconfig "github.com/koolee1372/bpr-cms/pkg/config"
)

type Config struct {
	ServerPort int
	LogLevel   string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string

	ESURL      string
	ESUser     string
	ESPassword string

	KafkaBrokers []string

	JWTSecret    []byte
	PasswordSalt string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	Bootstrap BootstrapConfig
}

// BootstrapConfig seeds the first tenant on GET /bootstrap. The route
// is a no-op when AdminEmail is unset.
type BootstrapConfig struct {
	TenantID      string
	TenantName    string
	TenantSlug    string
	Domains       []string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ServerPort: pkgconfig.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   pkgconfig.EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     pkgconfig.EnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		KafkaBrokers: pkgconfig.CSV(os.Getenv("KAFKA_BROKERS")),

		JWTSecret:    []byte(os.Getenv("JWT_SECRET")),
		PasswordSalt: os.Getenv("PASSWORD_SALT"),

		AccessTokenTTL:  pkgconfig.EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: pkgconfig.EnvDurationDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		Bootstrap: BootstrapConfig{
			TenantID:      pkgconfig.EnvDefault("BOOTSTRAP_TENANT_ID", "test-tenant-id"),
			TenantName:    pkgconfig.EnvDefault("BOOTSTRAP_TENANT_NAME", "BPR CMS Site"),
			TenantSlug:    pkgconfig.EnvDefault("BOOTSTRAP_TENANT_SLUG", "test-site"),
			Domains:       pkgconfig.CSV(os.Getenv("BOOTSTRAP_DOMAINS")),
			AdminEmail:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
			AdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		},
	}

	pkgconfig.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	pkgconfig.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	pkgconfig.MustNonEmpty(cfg.PasswordSalt, "PASSWORD_SALT")

	return cfg
}
