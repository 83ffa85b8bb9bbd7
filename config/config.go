package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// DefaultAdminPassword is the credential the first-run admin gets when
// ADMIN_PASSWORD is not set. Only acceptable for local development.
const DefaultAdminPassword = "admin123"

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	Admin   AdminConfig
}

type AppConfig struct {
	Name              string
	Port              string
	Env               string
	LogLevel          string
	CORSAllowedOrigin string
}

// IsDevelopment reports whether the app runs in a local development environment.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "local" || c.Env == "development"
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
	Migrate  bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret       string
	Expiry       time.Duration
	CookieName   string
	CookieSecure bool
}

type AdminConfig struct {
	Bootstrap bool
	Username  string
	Password  string
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// .env is optional; the environment alone is enough
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	sessionExpiry, err := time.ParseDuration(v.GetString("SESSION_EXPIRY"))
	if err != nil {
		sessionExpiry = 12 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Name:              v.GetString("APP_NAME"),
			Port:              v.GetString("APP_PORT"),
			Env:               v.GetString("APP_ENV"),
			LogLevel:          v.GetString("LOG_LEVEL"),
			CORSAllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			TimeZone: v.GetString("DB_TIMEZONE"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			Expiry:       sessionExpiry,
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		},
		Admin: AdminConfig{
			Bootstrap: v.GetBool("ADMIN_BOOTSTRAP"),
			Username:  v.GetString("ADMIN_USERNAME"),
			Password:  v.GetString("ADMIN_PASSWORD"),
		},
	}

	if config.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "Hospital Management")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_EXPIRY", "12h")
	v.SetDefault("SESSION_COOKIE_NAME", "hms_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)

	v.SetDefault("ADMIN_BOOTSTRAP", true)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", DefaultAdminPassword)
}
