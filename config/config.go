package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Auth     AuthConfig     `yaml:"auth"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

type DatabaseConfig struct {
	Driver           string `yaml:"driver"`
	ConnectionString string `yaml:"connection_string"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`

	// RefreshRecordTTL bounds the stored refresh credential independently of
	// the expiry embedded in the token itself; the shorter of the two governs.
	RefreshRecordTTL string `yaml:"refresh_record_ttl"`
}

func (c JWTConfig) ParseAccessTokenTTL() (time.Duration, error) {
	return parseTTL("access_token_ttl", c.AccessTokenTTL)
}

func (c JWTConfig) ParseRefreshTokenTTL() (time.Duration, error) {
	return parseTTL("refresh_token_ttl", c.RefreshTokenTTL)
}

func (c JWTConfig) ParseRefreshRecordTTL() (time.Duration, error) {
	if c.RefreshRecordTTL == "" {
		return 7 * 24 * time.Hour, nil
	}
	return parseTTL("refresh_record_ttl", c.RefreshRecordTTL)
}

func parseTTL(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", name, value)
	}
	return d, nil
}

// AuthConfig carries the allow-list of path prefixes that bypass the
// authentication gate.
type AuthConfig struct {
	PublicPathPrefixes []string `yaml:"public_path_prefixes"`
}

type WebhookConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

func (c WebhookConfig) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

type LoggingConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}
