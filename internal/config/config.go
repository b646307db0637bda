package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Поддерживаемые драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	Mode         string `mapstructure:"mode"` // debug, release, test (режим gin)
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

// DatabaseConfig содержит настройки подключения к хранилищу вопросов
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	Path         string `mapstructure:"path"` // файл базы для драйвера sqlite
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// RedisConfig содержит настройки Redis. Redis используется только для rate limiting
// и полностью опционален.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CORSConfig содержит список разрешённых источников
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig задаёт лимит для изменяющих запросов (POST/DELETE)
type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

// LogConfig содержит настройки логгера
type LogConfig struct {
	Level string `mapstructure:"level"`
	Env   string `mapstructure:"env"` // production включает JSON-логи zap
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Validate проверяет обязательные параметры для выбранного драйвера
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverPostgres:
		if d.Host == "" || d.DBName == "" || d.User == "" {
			return errors.New("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case DriverSQLite:
		if d.Path == "" {
			return errors.New("sqlite driver requires database.path (check DATABASE_PATH env var)")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", d.Driver)
	}
	return nil
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.mode", "debug")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)

	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.user", "postgres")
	vip.SetDefault("database.dbname", "trivia")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.path", "trivia.db")
	vip.SetDefault("database.max_open_conns", 25)
	vip.SetDefault("database.max_idle_conns", 10)
	vip.SetDefault("database.auto_migrate", true)

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.addr", "localhost:6379")

	vip.SetDefault("cors.allow_origins", []string{"*"})

	vip.SetDefault("rate_limit.max_requests", 30)
	vip.SetDefault("rate_limit.window", time.Minute)

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.env", "development")
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, без глобального состояния

	setDefaults(vip)

	// Переменные окружения привязываем явно
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.mode", "GIN_MODE")

	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.path", "DATABASE_PATH")
	vip.BindEnv("database.auto_migrate", "DATABASE_AUTO_MIGRATE")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")

	vip.BindEnv("rate_limit.max_requests", "RATE_LIMIT_MAX_REQUESTS")
	vip.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")

	vip.BindEnv("log.level", "LOG_LEVEL")
	vip.BindEnv("log.env", "APP_ENV")

	// Файл конфигурации опционален: без него работают env и значения по умолчанию
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				log.Printf("config file %q not found, using environment and defaults", configPath)
			} else {
				return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	if cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.Window <= 0 {
		return nil, fmt.Errorf("rate_limit.max_requests and rate_limit.window must be positive")
	}

	return &cfg, nil
}
