package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Outbox    OutboxConfig    `mapstructure:"outbox"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	ExpiryHours        int    `mapstructure:"expiry_hours"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	Enabled  bool   `mapstructure:"enabled"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type OutboxConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	BatchSize     int           `mapstructure:"batch_size"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

// CalendarConfig defines the working-day grid the dashboard renders.
type CalendarConfig struct {
	StartHour          int `mapstructure:"start_hour"`
	EndHour            int `mapstructure:"end_hour"`
	GranularityMinutes int `mapstructure:"granularity_minutes"`
}

// envOverrides are applied on top of the config file, keeping secrets
// out of the yaml in deployed environments.
type envOverrides struct {
	DBHost        string `envconfig:"DB_HOST"`
	DBPort        int    `envconfig:"DB_PORT"`
	DBUser        string `envconfig:"DB_USER"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	DBName        string `envconfig:"DB_NAME"`
	JWTSecret     string `envconfig:"JWT_SECRET"`
	RefreshSecret string `envconfig:"JWT_REFRESH_SECRET"`
	RedisURL      string `envconfig:"REDIS_URL"`
	SMTPPassword  string `envconfig:"SMTP_PASSWORD"`
	ServerPort    int    `envconfig:"SERVER_PORT"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to process env overrides: %w", err)
	}
	applyOverrides(&config, env)

	setDefaults(&config)
	return &config, nil
}

func applyOverrides(config *Config, env envOverrides) {
	if env.DBHost != "" {
		config.Database.Host = env.DBHost
	}
	if env.DBPort != 0 {
		config.Database.Port = env.DBPort
	}
	if env.DBUser != "" {
		config.Database.User = env.DBUser
	}
	if env.DBPassword != "" {
		config.Database.Password = env.DBPassword
	}
	if env.DBName != "" {
		config.Database.Name = env.DBName
	}
	if env.JWTSecret != "" {
		config.JWT.Secret = env.JWTSecret
	}
	if env.RefreshSecret != "" {
		config.JWT.RefreshSecret = env.RefreshSecret
	}
	if env.RedisURL != "" {
		config.Redis.URL = env.RedisURL
	}
	if env.SMTPPassword != "" {
		config.SMTP.Password = env.SMTPPassword
	}
	if env.ServerPort != 0 {
		config.Server.Port = env.ServerPort
	}
}

func setDefaults(config *Config) {
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 10 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 10 * time.Second
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = 30 * time.Second
	}
	if config.JWT.ExpiryHours == 0 {
		config.JWT.ExpiryHours = 24
	}
	if config.JWT.RefreshExpiryHours == 0 {
		config.JWT.RefreshExpiryHours = 24 * 7
	}
	if config.Outbox.BatchSize == 0 {
		config.Outbox.BatchSize = 100
	}
	if config.Outbox.PollInterval == 0 {
		config.Outbox.PollInterval = 5 * time.Second
	}
	if config.Outbox.RetryAttempts == 0 {
		config.Outbox.RetryAttempts = 3
	}
	if config.Outbox.RetryDelay == 0 {
		config.Outbox.RetryDelay = time.Second
	}
	if config.Calendar.StartHour == 0 {
		config.Calendar.StartHour = 9
	}
	if config.Calendar.EndHour == 0 {
		config.Calendar.EndHour = 18
	}
	if config.Calendar.GranularityMinutes == 0 {
		config.Calendar.GranularityMinutes = 15
	}
}
