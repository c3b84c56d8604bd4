package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// App names the binary a Config is loaded for.
type App string

const (
	AppBanks    App = "banks"
	AppAccounts App = "accounts"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var defaultPorts = map[App]int{
	AppBanks:    8090,
	AppAccounts: 9090,
}

// RedisConfig is optional; an empty Addr disables the bank cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config holds all configuration for one service.
type Config struct {
	App                App
	AppEnv             string
	LogLevel           string
	HTTPPort           int
	StorageDriver      string
	DatabaseURL        string
	EncryptionKey      string
	BanksServiceURL    string
	AccountsServiceURL string
	SelfURL            string
	RemoteTimeout      time.Duration
	RequestTimeout     time.Duration
	Redis              RedisConfig
	BankCacheTTL       time.Duration
	CORSAllowedOrigins []string
}

// IsDev reports whether human-readable logging should be used.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

var envKeys = map[string]string{
	"app.env":              "APP_ENV",
	"log.level":            "LOG_LEVEL",
	"http.port":            "HTTP_PORT",
	"storage.driver":       "STORAGE_DRIVER",
	"database.url":         "DATABASE_URL",
	"encryption.key":       "ENCRYPTION_KEY",
	"banks.url":            "BANKS_SERVICE_URL",
	"accounts.url":         "ACCOUNTS_SERVICE_URL",
	"self.url":             "SELF_URL",
	"remote.timeout":       "REMOTE_TIMEOUT",
	"request.timeout":      "REQUEST_TIMEOUT",
	"redis.addr":           "REDIS_ADDR",
	"redis.password":       "REDIS_PASSWORD",
	"redis.db":             "REDIS_DB",
	"cache.bank_ttl":       "BANK_CACHE_TTL",
	"cors.allowed_origins": "CORS_ALLOWED_ORIGINS",
}

// Load loads configuration for app from the environment and an optional .env file.
func Load(app App) (*Config, error) {
	defaultPort, ok := defaultPorts[app]
	if !ok {
		return nil, fmt.Errorf("unknown app %q", app)
	}

	// 1. Load .env file into the process environment, if there is one
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// 2. Explicitly bind viper keys to env var names
	for key, env := range envKeys {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("http.port", defaultPort)
	viper.SetDefault("storage.driver", StoragePostgres)
	viper.SetDefault("banks.url", fmt.Sprintf("http://localhost:%d", defaultPorts[AppBanks]))
	viper.SetDefault("accounts.url", fmt.Sprintf("http://localhost:%d", defaultPorts[AppAccounts]))
	viper.SetDefault("remote.timeout", 5*time.Second)
	viper.SetDefault("request.timeout", 30*time.Second)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("cache.bank_ttl", 5*time.Minute)
	viper.SetDefault("cors.allowed_origins", "*")

	// 4. Get values directly from viper
	cfg := Config{
		App:                app,
		AppEnv:             viper.GetString("app.env"),
		LogLevel:           viper.GetString("log.level"),
		HTTPPort:           viper.GetInt("http.port"),
		StorageDriver:      strings.ToLower(viper.GetString("storage.driver")),
		DatabaseURL:        viper.GetString("database.url"),
		EncryptionKey:      viper.GetString("encryption.key"),
		BanksServiceURL:    viper.GetString("banks.url"),
		AccountsServiceURL: viper.GetString("accounts.url"),
		SelfURL:            viper.GetString("self.url"),
		RemoteTimeout:      viper.GetDuration("remote.timeout"),
		RequestTimeout:     viper.GetDuration("request.timeout"),
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		BankCacheTTL:       viper.GetDuration("cache.bank_ttl"),
		CORSAllowedOrigins: splitList(viper.GetString("cors.allowed_origins")),
	}
	if cfg.SelfURL == "" {
		cfg.SelfURL = fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
	}

	// 5. Validation
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.HTTPPort)
	}
	if c.RemoteTimeout <= 0 {
		return errors.New("REMOTE_TIMEOUT must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}

	// Postgres columns and cached banks are both encrypted with ENCRYPTION_KEY.
	needKey := c.Redis.Addr != ""
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set in environment or .env file")
		}
		needKey = true
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageMemory, c.StorageDriver)
	}
	if !needKey {
		return nil
	}

	if c.EncryptionKey == "" {
		return errors.New("ENCRYPTION_KEY is not set in environment or .env file")
	}
	if len(c.EncryptionKey) != 64 {
		return fmt.Errorf("ENCRYPTION_KEY must be a 64-character hex string (32 bytes), but got %d chars", len(c.EncryptionKey))
	}
	if _, err := hex.DecodeString(c.EncryptionKey); err != nil {
		return fmt.Errorf("ENCRYPTION_KEY must be hex-encoded: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
