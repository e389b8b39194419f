package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names recognized by the loader.
const (
	EnvConfigPath   = "CONFIG_PATH"
	EnvDBConnection = "DB_CONNECTION"
	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTExpiry    = "JWT_EXPIRY"
	EnvPort         = "PORT"
)

// defaultJWTExpiry is used when the config omits or invalidates token expiry.
const defaultJWTExpiry = 7 * 24 * time.Hour

// defaultFuelUnitPrice is the per-liter fallback for unpriced fuel types.
const defaultFuelUnitPrice = 55.0

// ErrMissingDatabaseDSN indicates no database DSN is present anywhere.
var ErrMissingDatabaseDSN = errors.New("missing database dsn (set `database.dsn` in config file or DB_CONNECTION)")

// JWTConfig holds token secret and expiry settings.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// FuelConfig holds fuel cost derivation settings.
type FuelConfig struct {
	DefaultUnitPrice float64 `yaml:"default-unit-price"`
}

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	DatabaseDSN string     `yaml:"-"`
	Port        int        `yaml:"port"`
	JWT         JWTConfig  `yaml:"jwt"`
	Fuel        FuelConfig `yaml:"fuel"`
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// Load reads the YAML config file and applies environment overrides.
// A missing file is not an error as long as the environment provides a DSN.
func Load(configPath string) (AppConfig, error) {
	// fileConfig maps the YAML fields read from disk.
	type fileConfig struct {
		DatabaseDSN string `yaml:"database-dsn"`
		Database    struct {
			DSN string `yaml:"dsn"`
		} `yaml:"database"`
		Port int        `yaml:"port"`
		JWT  JWTConfig  `yaml:"jwt"`
		Fuel FuelConfig `yaml:"fuel"`
	}

	var cfg fileConfig
	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return AppConfig{}, fmt.Errorf("parse config file: %w", errUnmarshal)
		}
	}

	result := AppConfig{
		Port: cfg.Port,
		JWT:  cfg.JWT,
		Fuel: cfg.Fuel,
	}

	result.DatabaseDSN = strings.TrimSpace(cfg.Database.DSN)
	if result.DatabaseDSN == "" {
		result.DatabaseDSN = strings.TrimSpace(cfg.DatabaseDSN)
	}
	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		result.DatabaseDSN = dsn
	}
	if result.DatabaseDSN == "" {
		return AppConfig{}, ErrMissingDatabaseDSN
	}

	if secret := strings.TrimSpace(os.Getenv(EnvJWTSecret)); secret != "" {
		result.JWT.Secret = secret
	}
	if expiryRaw := strings.TrimSpace(os.Getenv(EnvJWTExpiry)); expiryRaw != "" {
		if expiry, errParse := time.ParseDuration(expiryRaw); errParse == nil && expiry > 0 {
			result.JWT.Expiry = expiry
		}
	}
	if result.JWT.Expiry <= 0 {
		result.JWT.Expiry = defaultJWTExpiry
	}
	if strings.TrimSpace(result.JWT.Secret) == "" {
		return AppConfig{}, errors.New("missing jwt secret (set `jwt.secret` in config file or JWT_SECRET)")
	}

	if portRaw := strings.TrimSpace(os.Getenv(EnvPort)); portRaw != "" {
		if port, errParse := strconv.Atoi(portRaw); errParse == nil {
			result.Port = port
		}
	}
	if result.Port <= 0 || result.Port > 65535 {
		result.Port = 8080
	}

	if result.Fuel.DefaultUnitPrice <= 0 {
		result.Fuel.DefaultUnitPrice = defaultFuelUnitPrice
	}

	return result, nil
}
