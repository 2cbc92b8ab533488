package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	// DBAutoMigrate creates or updates the tables on start.
	DBAutoMigrate bool

	JWTSecret     string
	PublicBaseURL string

	QrTTLMinutes  int
	QrRetention   time.Duration
	QrPurgeCron   string
	OrderLockWait time.Duration
	UrgentWindow  time.Duration

	// KafkaHost is a comma separated broker list; empty disables Kafka.
	KafkaHost              string
	KafkaOrderChangedTopic string
	LogLevel               string
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	env := envReader{getenv: getenv}
	cfg := Config{
		HTTPPort:               env.string("HTTP_PORT", "8080"),
		DBHost:                 env.string("DB_HOST", "localhost"),
		DBPort:                 env.string("DB_PORT", "5432"),
		DBUser:                 env.string("DB_USER", "postgres"),
		DBPassword:             env.string("DB_PASSWORD", ""),
		DBName:                 env.string("DB_NAME", "fulfillment"),
		DBSslMode:              env.string("DB_SSLMODE", "disable"),
		DBAutoMigrate:          env.bool("DB_AUTO_MIGRATE", true),
		JWTSecret:              env.string("JWT_SECRET", ""),
		PublicBaseURL:          env.string("PUBLIC_BASE_URL", "http://localhost:8080"),
		QrTTLMinutes:           env.int("QR_TTL_MINUTES", 15),
		QrRetention:            env.duration("QR_RETENTION", 24*time.Hour),
		QrPurgeCron:            env.string("QR_PURGE_CRON", "0 0 * * * *"),
		OrderLockWait:          env.duration("ORDER_LOCK_WAIT", 0),
		UrgentWindow:           env.duration("URGENT_WINDOW", 48*time.Hour),
		KafkaHost:              env.string("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: env.string("KAFKA_ORDER_CHANGED_TOPIC", "sales.order.status.changed"),
		LogLevel:               env.string("LOG_LEVEL", "info"),
	}

	problems := env.problems
	if cfg.JWTSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if cfg.QrTTLMinutes <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("QR_TTL_MINUTES", cfg.QrTTLMinutes, 1, "unbounded"))
	}
	if cfg.QrRetention < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("QR_RETENTION"))
	}
	if cfg.OrderLockWait < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("ORDER_LOCK_WAIT"))
	}
	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the libpq style connection string for the GORM postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

type envReader struct {
	getenv   func(string) string
	problems []error
}

func (r *envReader) string(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	raw := r.string(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.problems = append(r.problems, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return v
}

func (r *envReader) bool(key string, def bool) bool {
	raw := r.string(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.problems = append(r.problems, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	raw := r.string(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.problems = append(r.problems, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return v
}
