package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	Server ServerConfig
	Logger LoggerConfig

	Postgres PostgresConfig

	Mailer MailerConfig
	Alert  AlertConfig

	Internal InternalConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// ServerConfig is the configuration for the HTTP server.
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxIdleConns int
	MaxOpenConns int
}

// MailerConfig is the configuration for the outbound email provider.
type MailerConfig struct {
	APIKey string
	From   string
}

// AlertConfig is the configuration for the alert engine.
type AlertConfig struct {
	DashboardURL string
	SettingsURL  string
	SendTimeout  time.Duration
}

// InternalConfig guards the internal trigger endpoints.
type InternalConfig struct {
	Key string
}

// Load loads configuration using Viper.
func Load() (*Config, error) {
	viper.SetConfigName("visitor-alert-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/visitor-alert/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; env vars alone are enough.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")

	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.Mode = viper.GetString("server.mode")

	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgres.MaxIdleConns = viper.GetInt("postgres.max_idle_conns")
	cfg.Postgres.MaxOpenConns = viper.GetInt("postgres.max_open_conns")

	cfg.Mailer.APIKey = viper.GetString("mailer.api_key")
	cfg.Mailer.From = viper.GetString("mailer.from")

	cfg.Alert.DashboardURL = viper.GetString("alert.dashboard_url")
	cfg.Alert.SettingsURL = viper.GetString("alert.settings_url")
	cfg.Alert.SendTimeout = viper.GetDuration("alert.send_timeout")

	cfg.Internal.Key = viper.GetString("internal.key")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "production")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8082)
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "production")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.color_enabled", false)

	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.dbname", "visitor_alerts")
	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("postgres.max_idle_conns", 25)
	viper.SetDefault("postgres.max_open_conns", 200)

	viper.SetDefault("mailer.from", "alerts@visitor-alerts.local")

	viper.SetDefault("alert.dashboard_url", "https://app.visitor-alerts.local/alerts")
	viper.SetDefault("alert.settings_url", "https://app.visitor-alerts.local/settings/alerts")
	viper.SetDefault("alert.send_timeout", 10*time.Second)
}

func validate(cfg *Config) error {
	if cfg.Postgres.Host == "" {
		return fmt.Errorf("postgres.host is required")
	}
	if cfg.Postgres.DBName == "" {
		return fmt.Errorf("postgres.dbname is required")
	}
	if cfg.Mailer.APIKey == "" {
		return fmt.Errorf("mailer.api_key is required")
	}
	if cfg.Internal.Key == "" {
		return fmt.Errorf("internal.key is required")
	}
	return nil
}
