// Package config loads the service configuration from environment
// variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Planner  PlannerConfig
	Auth     AuthConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// CacheConfig holds plan result cache configuration.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// PlannerConfig holds fallback stock parameters used when a calculation
// request omits them and no stock profile is active.
type PlannerConfig struct {
	DefaultStockLength float64
	DefaultLengthUnit  string
	DefaultKerfWidth   float64
	DefaultKerfUnit    string
	DefaultMaxBars     int
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled           bool
	APIKeys           map[string]bool
	AdminUsername     string
	AdminPasswordHash string
	JWTSecretKey      string
	TokenTTL          time.Duration
}

// DatabaseConfig holds MongoDB and circuit breaker configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// Load reads every setting from the environment, falling back to the
// documented default when a variable is unset or unparseable.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           envStr("PORT", "8080"),
			RateLimit:      envInt("RATE_LIMIT", 100),
			RateWindow:     envDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: envDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    corsOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    envStr("SWAGGER_USER", ""),
			SwaggerPass:    envStr("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size: envInt("CACHE_SIZE", 1000),
			TTL:  envDuration("CACHE_TTL", 5*time.Minute),
		},
		Planner: PlannerConfig{
			DefaultStockLength: envFloat("DEFAULT_STOCK_LENGTH", 6000),
			DefaultLengthUnit:  envStr("DEFAULT_LENGTH_UNIT", "mm"),
			DefaultKerfWidth:   envFloat("DEFAULT_KERF_WIDTH", 0),
			DefaultKerfUnit:    envStr("DEFAULT_KERF_UNIT", "mm"),
			DefaultMaxBars:     envInt("DEFAULT_MAX_BARS", 100),
		},
		Auth: AuthConfig{
			Enabled:           envBool("AUTH_ENABLED", false),
			APIKeys:           apiKeySet(os.Getenv("API_KEYS")),
			AdminUsername:     envStr("ADMIN_USERNAME", ""),
			AdminPasswordHash: envStr("ADMIN_PASSWORD_HASH", ""),
			JWTSecretKey:      envStr("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			TokenTTL:          envDuration("JWT_TOKEN_TTL", time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            envStr("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   envStr("MONGODB_DATABASE", "cut_calc"),
			LogsTTL:                        envDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        envBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: envInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: envInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          envDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

func envStr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// apiKeySet splits a comma-separated key list into a lookup set.
func apiKeySet(raw string) map[string]bool {
	var set map[string]bool
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			if set == nil {
				set = make(map[string]bool)
			}
			set[k] = true
		}
	}
	return set
}

// corsOrigins appends configured origins to the local development
// defaults, which are always allowed.
func corsOrigins(raw string) []string {
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	for _, p := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(p); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
