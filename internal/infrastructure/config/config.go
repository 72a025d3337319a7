package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	ClientURL string `env:"CLIENT_URL, default=http://localhost:5173"`

	Auth   AuthConfig
	Upload UploadConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type AuthConfig struct {
	// JWTSecret has no default: the process refuses to start without it.
	JWTSecret   string        `env:"JWT_SECRET, required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=168h"`
	EmailDomain string        `env:"EMAIL_DOMAIN, default=@student.its.ac.id"`
}

type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR,       default=uploads"`
	MaxBytes int64  `env:"MAX_UPLOAD_BYTES, default=5242880"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bagibarang_its"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether logs should be emitted as plain JSON.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory, if present, fills variables that are
// not already set.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must not be empty")
	}
	return &cfg, nil
}
