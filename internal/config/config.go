package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the dashboard configuration
type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Redis     RedisConfig
	MongoDB   MongoDBConfig
	Session   SessionConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Captcha   CaptchaConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// UpstreamConfig points at the content API this dashboard is a client of.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type SessionConfig struct {
	// Secret signs CSRF form tokens and the flash cookie.
	Secret     string
	TTL        time.Duration
	CookieName string
	// Secure marks the session cookie as HTTPS-only.
	Secure bool
}

type UploadConfig struct {
	// MaxSizeMB is the per-file limit enforced before any network call.
	MaxSizeMB int
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
	// LoginRPS/LoginBurst apply only to POST /login.
	LoginRPS   float64
	LoginBurst int
}

type CaptchaConfig struct {
	// SiteKey is rendered into the login page; the token the widget produces
	// is forwarded verbatim to the upstream login endpoint, which verifies it.
	SiteKey string
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("UPSTREAM_TIMEOUT", 30)
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("SESSION_COOKIE_NAME", "dashboard_session")
	viper.SetDefault("UPLOAD_MAX_SIZE_MB", 2)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("LOGIN_RATE_LIMIT_RPS", 0.5)
	viper.SetDefault("LOGIN_RATE_LIMIT_BURST", 5)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnvOrPanic("UPSTREAM_API_URL"),
			Timeout: time.Duration(viper.GetInt("UPSTREAM_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Session: SessionConfig{
			Secret:     os.Getenv("SESSION_SECRET"),
			TTL:        time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
			Secure:     viper.GetString("SERVER_ENVIRONMENT") == "production",
		},
		Upload: UploadConfig{
			MaxSizeMB: viper.GetInt("UPLOAD_MAX_SIZE_MB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
			LoginRPS:      viper.GetFloat64("LOGIN_RATE_LIMIT_RPS"),
			LoginBurst:    viper.GetInt("LOGIN_RATE_LIMIT_BURST"),
		},
		Captcha: CaptchaConfig{
			SiteKey: viper.GetString("RECAPTCHA_SITE_KEY"),
		},
	}

	// Basic validation
	if cfg.Session.Secret == "" {
		log.Println("WARNING: SESSION_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}

func getEnvOrPanic(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required", key)
	}
	return v
}
