package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the application
type Config struct {
	API           APIConfig           `yaml:"api"`
	Storage       StorageConfig       `yaml:"storage"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Bridge        BridgeConfig        `yaml:"bridge"`
	Demo          DemoConfig          `yaml:"demo"`
	Log           LogConfig           `yaml:"log"`
}

// APIConfig holds the remote API configuration
type APIConfig struct {
	BaseURL           string `yaml:"base_url"            env:"API_BASE_URL"     env-default:"http://localhost:8081"`
	AdminSecret       string `yaml:"admin_secret"        env:"API_ADMIN_SECRET"`
	AdminMobileNumber string `yaml:"admin_mobile_number" env:"API_ADMIN_MOBILE"`
	AdminEmailAddress string `yaml:"admin_email_address" env:"API_ADMIN_EMAIL"`
}

// StorageConfig selects and configures the persistent key-value backend
type StorageConfig struct {
	Driver        string `yaml:"driver"         env:"STORAGE_DRIVER"         env-default:"badger"` // badger, memory or redis
	Path          string `yaml:"path"           env:"STORAGE_PATH"           env-default:"./.poolctl"`
	RedisAddr     string `yaml:"redis_addr"     env:"STORAGE_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"STORAGE_REDIS_PASSWORD"`
	RedisPrefix   string `yaml:"redis_prefix"   env:"STORAGE_REDIS_PREFIX"   env-default:"poolctl:"`
}

// NotificationsConfig holds notification queue settings
type NotificationsConfig struct {
	Duration time.Duration `yaml:"duration" env:"NOTIFICATIONS_DURATION" env-default:"4s"`
}

// BridgeConfig holds the local bridge server configuration
type BridgeConfig struct {
	Host           string   `yaml:"host"            env:"BRIDGE_HOST"            env-default:"127.0.0.1"`
	Port           int      `yaml:"port"            env:"BRIDGE_PORT"            env-default:"8090"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"BRIDGE_ALLOWED_ORIGINS" env-default:"*"`
}

// DemoConfig holds the demo API server configuration
type DemoConfig struct {
	Host        string        `yaml:"host"         env:"DEMO_HOST"         env-default:"127.0.0.1"`
	Port        int           `yaml:"port"         env:"DEMO_PORT"         env-default:"8081"`
	JWTSecret   string        `yaml:"jwt_secret"   env:"DEMO_JWT_SECRET"   env-default:"demo-secret-change-me"`
	AdminSecret string        `yaml:"admin_secret" env:"DEMO_ADMIN_SECRET" env-default:"demo-admin-secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"    env:"DEMO_TOKEN_TTL"    env-default:"24h"`
	DatabaseDSN string        `yaml:"database_dsn" env:"DEMO_DATABASE_DSN"`
	Images      ImageConfig   `yaml:"images"`
}

// ImageConfig selects where the demo API stores uploaded images
type ImageConfig struct {
	Driver    string `yaml:"driver"     env:"IMAGES_DRIVER"     env-default:"memory"` // memory, s3 or minio
	Bucket    string `yaml:"bucket"     env:"IMAGES_BUCKET"     env-default:"pool-images"`
	Region    string `yaml:"region"     env:"IMAGES_REGION"     env-default:"us-east-1"`
	Endpoint  string `yaml:"endpoint"   env:"IMAGES_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"IMAGES_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"IMAGES_SECRET_KEY"`
	UseSSL    bool   `yaml:"use_ssl"    env:"IMAGES_USE_SSL"    env-default:"true"`
	PublicURL string `yaml:"public_url" env:"IMAGES_PUBLIC_URL"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from a YAML file and environment variables.
// An empty path falls back to CONFIG_PATH, then ./config.yaml. A missing
// default file is not an error: ENV and defaults are used instead.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if explicit {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "badger", "memory", "redis":
	default:
		return fmt.Errorf("invalid storage driver %q", c.Storage.Driver)
	}

	switch c.Demo.Images.Driver {
	case "memory", "s3", "minio":
	default:
		return fmt.Errorf("invalid image driver %q", c.Demo.Images.Driver)
	}

	if c.Notifications.Duration <= 0 {
		return fmt.Errorf("notification duration must be positive")
	}

	return nil
}

// Addr returns the bridge listen address
func (c *BridgeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr returns the demo API listen address
func (c *DemoConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
