package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const EnvProduction = "production"

type Config struct {
	Env        string `envconfig:"APP_ENV" default:"development"`
	ServerAddr string `envconfig:"SERVER_ADDR" default:":5000"`
	LogDir     string `envconfig:"LOG_DIR"`

	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/wildtrack"`
	MongoDB  string `envconfig:"MONGO_DB"`

	JWTSecret    string        `envconfig:"JWT_SECRET"`
	JWTExpiresIn time.Duration `envconfig:"JWT_EXPIRES_IN" default:"168h"`
	JWTIssuer    string        `envconfig:"JWT_ISSUER" default:"wildtrack-backend"`

	AdminUsername     string `envconfig:"ADMIN_USERNAME"`
	AdminPassword     string `envconfig:"ADMIN_PASSWORD"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	AdminName         string `envconfig:"ADMIN_NAME" default:"Administrator"`
	AdminEmail        string `envconfig:"ADMIN_EMAIL"`

	// TrustProxy honours X-Forwarded-For / X-Real-IP. Enable only behind a
	// proxy that overwrites them.
	TrustProxy bool `envconfig:"TRUST_PROXY" default:"false"`

	CORSOrigins []string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000,http://localhost:5000,http://127.0.0.1:5500"`

	RedisURL        string `envconfig:"REDIS_URL"`
	RedisAddr       string `envconfig:"REDIS_ADDR"`
	RedisPassword   string `envconfig:"REDIS_PASSWORD"`
	RedisDB         int    `envconfig:"REDIS_DB" default:"0"`
	CacheTTLSeconds int    `envconfig:"CACHE_TTL_SECONDS" default:"60"`

	RateLimitBookings  int `envconfig:"RATE_LIMIT_BOOKINGS" default:"10"`
	RateLimitMessages  int `envconfig:"RATE_LIMIT_MESSAGES" default:"5"`
	RateLimitWindowSec int `envconfig:"RATE_LIMIT_WINDOW_SEC" default:"60"`

	BrevoAPIKey      string `envconfig:"BREVO_API_KEY"`
	BrevoSenderEmail string `envconfig:"BREVO_SENDER_EMAIL"`
	BrevoSenderName  string `envconfig:"BREVO_SENDER_NAME" default:"UmZulu Wildtrack"`
	BrevoSandbox     bool   `envconfig:"BREVO_SANDBOX" default:"false"`
	NotifyEmail      string `envconfig:"NOTIFY_EMAIL"`

	TimezoneName string         `envconfig:"TZ" default:"Africa/Johannesburg"`
	Timezone     *time.Location `ignored:"true"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSec) * time.Second
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "config: process env")
	}

	loc, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, errors.Wrapf(err, "config: load timezone %q", cfg.TimezoneName)
	}
	cfg.Timezone = loc

	if cfg.MongoDB == "" {
		cfg.MongoDB = mongoDBFromURI(cfg.MongoURI)
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "wildtrack"
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	if cfg.JWTExpiresIn <= 0 {
		return nil, errors.New("config: JWT_EXPIRES_IN must be positive")
	}

	origins := make([]string, 0, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSOrigins = origins

	return &cfg, nil
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// mongodb URIs sometimes include extra path segments; we only support the first one as db name.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}
