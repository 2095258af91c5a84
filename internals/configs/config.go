package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port          string
	APIPrefix     string
	PublicBaseURL string
	Environment   string

	StoreBackend string
	DBUser       string
	DBPassword   string
	DBHost       string
	DBPort       string
	DBName       string
	DBSSLMode    string

	JWTSecret      string
	JWTWriteRoles  []string
	LogLevel       string
	LogFormat      string
	RateLimitMax   int
	AllowedOrigins []string
	RequestTimeout time.Duration
	SlowQuery      time.Duration
	SeedFile       string
}

// =======================
// ENV LOADER
// =======================

// LoadEnv reads .env (outside Railway) and then the process environment.
func LoadEnv() Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system environment")
		}
	}
	return FromEnv()
}

// FromEnv builds the Config from the current environment only.
func FromEnv() Config {
	cfg := Config{
		Port:          GetEnv("PORT", "3000"),
		APIPrefix:     "/" + strings.Trim(GetEnv("API_PREFIX", "/api"), "/"),
		PublicBaseURL: strings.TrimRight(GetEnv("PUBLIC_BASE_URL"), "/"),
		Environment:   GetEnv("RAILWAY_ENVIRONMENT", "local"),

		StoreBackend: strings.ToLower(GetEnv("REGISTRAR_STORE", StorePostgres)),
		DBUser:       GetEnv("DB_USER"),
		DBPassword:   GetEnv("DB_PASSWORD"),
		DBHost:       GetEnv("DB_HOST", "localhost"),
		DBPort:       GetEnv("DB_PORT", "5432"),
		DBName:       GetEnv("DB_NAME", "registrar"),
		DBSSLMode:    GetEnv("DB_SSLMODE", "require"),

		JWTSecret:      GetEnv("JWT_SECRET"),
		JWTWriteRoles:  splitList(GetEnv("JWT_WRITE_ROLES")),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		LogFormat:      GetEnv("LOG_FORMAT", "json"),
		RateLimitMax:   envInt("RATE_LIMIT_MAX", 100),
		AllowedOrigins: splitList(GetEnv("ALLOWED_ORIGINS")),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 5*time.Second),
		SlowQuery:      envDuration("DB_SLOW_QUERY", 200*time.Millisecond),
		SeedFile:       GetEnv("SEED_FILE"),
	}
	if cfg.StoreBackend != StoreMemory {
		cfg.StoreBackend = StorePostgres
	}
	return cfg
}

// DSN for the postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=registrar",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(GetEnv(key)))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(GetEnv(key)))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
