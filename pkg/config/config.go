package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Mail     MailConfig
	School   SchoolConfig
	CORS     CORSConfig
	Log      LogConfig
	Sentry   SentryConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig toggles caching of the recent enrollments listing.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// MailConfig holds SMTP credentials for guardian confirmations. Username
// and Password left empty disable notifications.
type MailConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	AdminContact string
	Timeout      time.Duration
	ProbeOnStart bool
}

// Configured reports whether the mail credentials were supplied at all.
func (m MailConfig) Configured() bool {
	return m.Username != "" && m.Password != ""
}

// SchoolConfig carries the institutional details printed in confirmations.
type SchoolConfig struct {
	Name     string
	Phone    string
	Timezone string
}

// Location resolves the configured timezone, falling back to UTC.
func (s SchoolConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	password := v.GetString("DB_PASSWORD")
	if password == "" {
		password = v.GetString("DB_PASS")
	}
	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     password,
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), time.Minute),
	}

	cfg.Mail = MailConfig{
		Host:         v.GetString("MAIL_HOST"),
		Port:         v.GetInt("MAIL_PORT"),
		Username:     strings.TrimSpace(v.GetString("MAIL_USER")),
		Password:     strings.TrimSpace(v.GetString("MAIL_PASS")),
		AdminContact: strings.TrimSpace(v.GetString("MAIL_ADMIN")),
		Timeout:      parseDuration(v.GetString("MAIL_TIMEOUT"), 30*time.Second),
		ProbeOnStart: v.GetBool("MAIL_PROBE_ON_START"),
	}

	cfg.School = SchoolConfig{
		Name:     v.GetString("SCHOOL_NAME"),
		Phone:    v.GetString("SCHOOL_PHONE"),
		Timezone: v.GetString("SCHOOL_TIMEZONE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Sentry = SentryConfig{DSN: v.GetString("SENTRY_DSN")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "colegio")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "1m")

	v.SetDefault("MAIL_HOST", "smtp.gmail.com")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USER", "")
	v.SetDefault("MAIL_PASS", "")
	v.SetDefault("MAIL_ADMIN", "")
	v.SetDefault("MAIL_TIMEOUT", "30s")
	v.SetDefault("MAIL_PROBE_ON_START", true)

	v.SetDefault("SCHOOL_NAME", "Colegio XYZ")
	v.SetDefault("SCHOOL_PHONE", "(01) 234-5678")
	v.SetDefault("SCHOOL_TIMEZONE", "America/Lima")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SENTRY_DSN", "")
}

// isMissingFile treats an absent .env as "use environment only".
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
