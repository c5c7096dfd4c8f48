package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// minSecretLen is the minimum accepted length for the access-token
// signing secret.
const minSecretLen = 10

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Cookie    CookieConfig    `yaml:"cookie"`
	Log       LogConfig       `yaml:"log"`
	Retention RetentionConfig `yaml:"retention"`
}

type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	Mode         string `yaml:"mode"` // debug, release, test
	ClientOrigin string `yaml:"client_origin"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret           string `yaml:"secret"`
	AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
	RefreshTTLDays   int    `yaml:"refresh_ttl_days"`
}

type CookieConfig struct {
	Secure bool `yaml:"secure"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// RetentionConfig controls the optional sweeper that hard-deletes
// refresh-token rows long past their expiry. Days <= 0 disables it.
type RetentionConfig struct {
	Days int    `yaml:"days"`
	Cron string `yaml:"cron"`
}

// Load reads the YAML config at configPath (falling back to defaults when
// the file is absent) and applies environment overrides on top.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         "3000",
			Mode:         "debug",
			ClientOrigin: "http://localhost:5173",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "authgate.db",
		},
		JWT: JWTConfig{
			AccessTTLMinutes: 15,
			RefreshTTLDays:   14,
		},
		Cookie: CookieConfig{
			Secure: false,
		},
		Log: LogConfig{
			Level: "info",
		},
		Retention: RetentionConfig{
			Days: 0,
			Cron: "30 3 * * *",
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if origin := os.Getenv("CLIENT_ORIGIN"); origin != "" {
		c.Server.ClientOrigin = origin
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if v := os.Getenv("ACCESS_TOKEN_TTL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.JWT.AccessTTLMinutes = n
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_TTL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.JWT.RefreshTTLDays = n
		}
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		c.Cookie.Secure = v == "true"
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if v := os.Getenv("TOKEN_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retention.Days = n
		}
	}
}

// Validate checks the fields the server cannot run without. The caller is
// expected to treat any error as fatal.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (set JWT_SECRET)")
	}
	if len(c.JWT.Secret) < minSecretLen {
		return fmt.Errorf("jwt secret must be at least %d characters", minSecretLen)
	}
	if c.JWT.AccessTTLMinutes <= 0 {
		return errors.New("access token ttl must be positive")
	}
	if c.JWT.RefreshTTLDays <= 0 {
		return errors.New("refresh token ttl must be positive")
	}
	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	return nil
}
