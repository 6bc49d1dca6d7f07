package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrSecretRequired is returned when AUTH_SECRET is unset or empty.
// The signing secret is a startup precondition: the service must refuse to
// serve traffic without it rather than fail per request.
var ErrSecretRequired = errors.New("AUTH_SECRET is required")

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Cookies   CookieConfig
	Routes    RouteConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Users     UsersConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AuthConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type CookieConfig struct {
	AccessName  string
	RefreshName string
}

// RouteConfig is the static route classification consumed by the auth gate.
// Protected and AuthOnly are path prefix lists; every other path is public.
type RouteConfig struct {
	Protected   []string
	AuthOnly    []string
	LoginPath   string
	LandingPath string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type UsersConfig struct {
	File string
	Seed string
}

// Production reports whether the service runs with production hardening.
// Controls the Secure attribute on session cookies.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "4000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("AUTH_ACCESS_TTL", 30)
	viper.SetDefault("AUTH_REFRESH_TTL", 10080)
	viper.SetDefault("COOKIE_ACCESS_NAME", "access_token")
	viper.SetDefault("COOKIE_REFRESH_NAME", "refresh_token")
	viper.SetDefault("ROUTES_PROTECTED", "/chat,/dashboard,/settings")
	viper.SetDefault("ROUTES_AUTH_ONLY", "/login,/register")
	viper.SetDefault("ROUTES_LOGIN_PATH", "/login")
	viper.SetDefault("ROUTES_LANDING_PATH", "/chat")
	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			StaticDir:    viper.GetString("STATIC_DIR"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Auth: AuthConfig{
			Secret:          os.Getenv("AUTH_SECRET"),
			AccessTokenTTL:  time.Duration(viper.GetInt("AUTH_ACCESS_TTL")) * time.Minute,
			RefreshTokenTTL: time.Duration(viper.GetInt("AUTH_REFRESH_TTL")) * time.Minute,
		},
		Cookies: CookieConfig{
			AccessName:  viper.GetString("COOKIE_ACCESS_NAME"),
			RefreshName: viper.GetString("COOKIE_REFRESH_NAME"),
		},
		Routes: RouteConfig{
			Protected:   splitList(viper.GetString("ROUTES_PROTECTED")),
			AuthOnly:    splitList(viper.GetString("ROUTES_AUTH_ONLY")),
			LoginPath:   viper.GetString("ROUTES_LOGIN_PATH"),
			LandingPath: viper.GetString("ROUTES_LANDING_PATH"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Users: UsersConfig{
			File: viper.GetString("USERS_FILE"),
			Seed: os.Getenv("USERS_SEED"),
		},
	}

	if cfg.Auth.Secret == "" {
		return nil, ErrSecretRequired
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
