package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the runtime configuration, read from the environment and an
// optional config file.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	DatabaseDebug  bool
	JWTSecret      string
	AdminUsername  string
	AdminPassword  string
	RabbitMQURL    string
	StorageRoot    string
	StorageURL     string
	CookieSecure   bool
	PageSize       int
	LogMode        string
	LogFile        string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "inventaris.db")
	v.SetDefault("DATABASE_DEBUG", false)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("STORAGE_ROOT", "storage/public")
	v.SetDefault("STORAGE_URL", "/storage")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("PAGE_SIZE", 15)
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("LOG_FILE", "")
}

// Load reads the configuration. When file is non-empty it is merged in before
// environment variables, which always win.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DatabaseDebug:  v.GetBool("DATABASE_DEBUG"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		StorageRoot:    v.GetString("STORAGE_ROOT"),
		StorageURL:     v.GetString("STORAGE_URL"),
		CookieSecure:   v.GetBool("COOKIE_SECURE"),
		PageSize:       v.GetInt("PAGE_SIZE"),
		LogMode:        v.GetString("LOG_MODE"),
		LogFile:        v.GetString("LOG_FILE"),
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	return cfg, nil
}
