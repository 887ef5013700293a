package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string `validate:"required"`
	Env     string `validate:"oneof=development staging production"` // development, staging, production
	Port    string `validate:"required,numeric"`
	GinMode string `validate:"oneof=debug release test"`

	// Remote services
	APIBase       string        `validate:"required,url"`
	UserAPI       string        `validate:"required,url"`
	ProductAPI    string        `validate:"required,url"`
	RemoteTimeout time.Duration `validate:"gt=0"`

	// Health polling
	HealthInterval time.Duration `validate:"gt=0"`

	// Page sessions
	SessionIdleTTL time.Duration `validate:"gt=0"`
	SessionMax     int           `validate:"gt=0"`
	CookieDomain   string
	CookieSecure   bool

	// Redis (optional; rate limiting and status snapshot)
	RedisAddr            string
	RedisPassword        string
	RedisDB              int `validate:"gte=0"`
	RateLimitMutations   int `validate:"gte=0"`
	RateLimitNewSessions int `validate:"gte=0"`

	// RabbitMQ (optional; mutation events)
	RabbitMQURL         string
	RabbitMQEventsQueue string `validate:"required_with=RabbitMQURL"`

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

// Endpoints is the explicit endpoint configuration handed to the UI controller.
type Endpoints struct {
	UserAPI    string
	ProductAPI string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	base := strings.TrimRight(getenv("API_BASE", "http://localhost:8080"), "/")
	return &Config{
		AppName: getenv("APP_NAME", "microservices-console"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3000"),
		GinMode: getenv("GIN_MODE", "release"),

		APIBase:       base,
		UserAPI:       strings.TrimRight(getenv("USER_API", base+"/api/users"), "/"),
		ProductAPI:    strings.TrimRight(getenv("PRODUCT_API", base+"/api/products"), "/"),
		RemoteTimeout: getdur("REMOTE_TIMEOUT", 5*time.Second),

		HealthInterval: getdur("HEALTH_INTERVAL", 30*time.Second),

		SessionIdleTTL: getdur("SESSION_IDLE_TTL", 30*time.Minute),
		SessionMax:     getint("SESSION_MAX", 10000),
		CookieDomain:   getenv("COOKIE_DOMAIN", ""),
		CookieSecure:   getbool("COOKIE_SECURE", false),

		RedisAddr:            getenv("REDIS_ADDR", ""),
		RedisPassword:        getenv("REDIS_PASSWORD", ""),
		RedisDB:              getint("REDIS_DB", 0),
		RateLimitMutations:   getint("RATE_LIMIT_MUTATIONS", 60),
		RateLimitNewSessions: getint("RATE_LIMIT_NEW_SESSIONS", 30),

		RabbitMQURL:         getenv("RABBITMQ_URL", ""),
		RabbitMQEventsQueue: getenv("RABBITMQ_EVENTS_QUEUE", "ui-intents"),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),
		HTTPLogEnabled:      getbool("HTTP_LOG_ENABLED", false),
	}
}

// Validate checks the loaded values against the struct tags.
// The returned error is a validator.ValidationErrors when a field is invalid.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Endpoints returns the remote collection endpoints
func (c *Config) Endpoints() Endpoints {
	return Endpoints{UserAPI: c.UserAPI, ProductAPI: c.ProductAPI}
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
