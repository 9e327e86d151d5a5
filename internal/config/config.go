// Package config defines the siteapi configuration file format and its
// defaults. Values are read through viper, so every key can also be set
// via SITEAPI_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level siteapi configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	SMTP     SMTPConfig     `yaml:"smtp" mapstructure:"smtp"`
}

// ServerConfig controls the HTTP server behavior.
type ServerConfig struct {
	Host        string   `yaml:"host" mapstructure:"host"`
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// DatabaseConfig selects the backing database. Driver is "sqlite" or
// "postgres"; for sqlite the DSN is a file path (empty means in-memory).
type DatabaseConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// AuthConfig controls token issuance. Rotating the secret invalidates every
// outstanding token immediately.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// SMTPConfig controls outbound lead notifications. Leaving host or
// credentials empty disables notifications.
type SMTPConfig struct {
	Host      string `yaml:"host" mapstructure:"host"`
	Port      int    `yaml:"port" mapstructure:"port"`
	Username  string `yaml:"username" mapstructure:"username"`
	Password  string `yaml:"password" mapstructure:"password"`
	From      string `yaml:"from" mapstructure:"from"`
	Recipient string `yaml:"recipient" mapstructure:"recipient"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    defaultDataPath(),
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
	}
}

// WriteTemplate writes a commented YAML config template to path. Refuses to
// overwrite an existing file unless force is set.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o644)
}

// Render serializes cfg as YAML.
func Render(cfg Config) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(out), nil
}

func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "siteapi.db"
	}
	return home + "/.siteapi/siteapi.db"
}

const template = `# siteapi configuration
# Every key can also be set via environment variables with the SITEAPI_
# prefix, e.g. SITEAPI_AUTH_JWT_SECRET.

server:
  host: 0.0.0.0
  port: 8080
  cors_origins:
    - "*"

database:
  # sqlite (file path DSN) or postgres (connection URL DSN)
  driver: sqlite
  # dsn defaults to ~/.siteapi/siteapi.db. An empty DSN would select an
  # in-memory database, so only set this to a real location.
  # dsn: /var/lib/siteapi/siteapi.db

auth:
  # REQUIRED in production. Rotating it logs every admin out at once.
  jwt_secret: ""
  token_ttl: 24h

# Leave host/username/password empty to disable lead notifications.
smtp:
  host: ""
  port: 587
  username: ""
  password: ""
  from: ""
  recipient: ""
`
