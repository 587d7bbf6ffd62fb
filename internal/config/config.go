package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	AppEnv   string
	AppPort  string
	AuthPort string

	StorageDriver    string
	StorageDir       string
	StorageNamespace string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthAPIURL string
	JWTSecret  string

	KafkaBrokers []string
	KafkaTopic   string

	PaymentDelay          time.Duration
	FreeShippingThreshold float64
	ShippingFee           float64
	TaxRate               float64

	StrictOrderTransitions bool

	CORSOrigins      []string
	RateLimitEnabled bool
	TokenTTL         time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "8080"),
		AuthPort: getEnv("AUTH_PORT", "5000"),

		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", DriverFile)),
		StorageDir:       getEnv("STORAGE_DIR", "./data"),
		StorageNamespace: getEnv("STORAGE_NAMESPACE", "default"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		AuthAPIURL: getEnv("AUTH_API_URL", "http://localhost:5000/api"),
		JWTSecret:  os.Getenv("JWT_SECRET"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_ORDER_TOPIC", "order-events"),

		PaymentDelay:          getDuration("PAYMENT_DELAY", 2*time.Second),
		FreeShippingThreshold: getFloat("FREE_SHIPPING_THRESHOLD", 500),
		ShippingFee:           getFloat("SHIPPING_FEE", 50),
		TaxRate:               getFloat("TAX_RATE", 0.18),

		StrictOrderTransitions: getBool("STRICT_ORDER_TRANSITIONS", false),

		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		RateLimitEnabled: getBool("RATE_LIMIT_ENABLED", true),
		TokenTTL:         getDuration("TOKEN_TTL", 24*time.Hour),
	}
}

// Validate checks the settings the selected storage driver depends on.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory:
	case DriverFile:
		if c.StorageDir == "" {
			return errors.New("STORAGE_DIR is required for the file driver")
		}
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres driver")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	if c.TaxRate < 0 || c.ShippingFee < 0 || c.FreeShippingThreshold < 0 {
		return errors.New("pricing settings must not be negative")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
