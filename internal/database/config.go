package database

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int

	MigrationsDir string

	HTTPAddr    string
	AppName     string
	CORSOrigins []string

	// EventsBackend is none, redis or kafka.
	EventsBackend string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	KafkaBrokers  []string
	KafkaTopic    string

	PageSizeDefault int
	PageSizeMax     int
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnv("DB_PORT", "5432"),
		User:            getEnv("DB_USER", "coopcycle"),
		Password:        getEnv("DB_PASSWORD", "postgres_password"),
		DBName:          getEnv("DB_NAME", "coopcycle"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "./internal/database/migrations"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		AppName:         getEnv("APP_NAME", "coopcycleApp"),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
		EventsBackend:   getEnv("EVENTS_BACKEND", "none"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		KafkaBrokers:    getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "coopcycle.entities"),
		PageSizeDefault: getEnvAsInt("PAGE_SIZE_DEFAULT", 20),
		PageSizeMax:     getEnvAsInt("PAGE_SIZE_MAX", 100),
	}, nil
}

// DSN is the key/value connection string pgx understands.
func (c *Config) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
