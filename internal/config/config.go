// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Before the file is read, any .env / .env.local files in the working
// directory are loaded into the process environment, so values such as
// REDIS_PASSWORD can live outside the YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers understood by storage.Open.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing: better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	Storage         Storage         `yaml:"storage"`
	HTTPServer      HTTPServer      `yaml:"http_server"`
	SubjectsService SubjectsService `yaml:"subjects_service"`
}

// Storage selects and configures the student store backend.
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`

	// Path is the filesystem path to the SQLite .db file.
	Path string `yaml:"path" env:"STORAGE_PATH"`

	Redis Redis `yaml:"redis"`
}

// Redis holds connection settings for the redis driver.
type Redis struct {
	Addr     string `yaml:"address"  env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB" env-default:"0"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr         string        `yaml:"address"       env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"HTTP_SERVER_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"HTTP_SERVER_IDLE_TIMEOUT"  env-default:"60s"`
}

// SubjectsService points at the peer service that lists subjects.
type SubjectsService struct {
	BaseURL string        `yaml:"base_url" env:"SUBJECTS_SERVICE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout"  env:"SUBJECTS_SERVICE_TIMEOUT" env-default:"5s"`
}

// MustLoad resolves the config path, reads and validates the config, and
// exits the process on any failure. If it returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}

// Load reads the YAML file at configPath, applies environment overrides
// and defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	// os.Stat gives a clear message rather than a cryptic
	// "open: no such file" from the YAML reader later.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return &cfg, nil
}

// validate checks cross-field rules cleanenv's tags cannot express.
func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	case DriverRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("storage.redis.address is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.SubjectsService.Timeout <= 0 {
		return errors.New("subjects_service.timeout must be positive")
	}

	return nil
}

// loadEnvFiles loads .env then .env.local. Missing files are fine, and
// variables already set in the environment are never overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
