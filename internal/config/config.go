package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Config is the top-level configuration structure.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Storage StorageConfig `json:"storage"`
	Graph   GraphConfig   `json:"graph"`
	Mail    MailConfig    `json:"mail"`
	Digest  DigestConfig  `json:"digest"`
	Notify  NotifyConfig  `json:"notify"`
}

type ServerConfig struct {
	Port     int    `json:"port"`
	LogLevel string `json:"log_level"`
}

// StorageConfig selects the context-store backend: "postgres", "redis" or
// "memory".
type StorageConfig struct {
	Backend  string         `json:"backend"`
	Postgres PostgresConfig `json:"postgres"`
	Redis    RedisConfig    `json:"redis"`
}

type PostgresConfig struct {
	DSN string `json:"dsn"`
}

type RedisConfig struct {
	URL string `json:"url"`
}

// GraphConfig points at the mail/calendar provider.
type GraphConfig struct {
	Endpoint string `json:"endpoint"`
}

// MailConfig configures the outbound email service.
type MailConfig struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
}

// DigestConfig drives the daily digest scheduler.
type DigestConfig struct {
	Hour          int                  `json:"hour"`
	Subscriptions []SubscriptionConfig `json:"subscriptions"`
}

type SubscriptionConfig struct {
	UserID string `json:"user_id"`
	To     string `json:"to"`
	From   string `json:"from"`
	Token  string `json:"token"`
}

type NotifyConfig struct {
	Slack SlackNotifyConfig `json:"slack"`
}

type SlackNotifyConfig struct {
	Enabled    bool   `json:"enabled"`
	WebhookURL string `json:"webhook_url"`
}

// envVarRe matches ${VAR} and ${VAR:default} patterns.
var envVarRe = regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

// Load reads a JSON config file and substitutes environment variable references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// Substitute ${VAR} and ${VAR:default} with environment values.
	resolved := envVarRe.ReplaceAllStringFunc(string(data), func(match string) string {
		parts := envVarRe.FindStringSubmatch(match)
		name := parts[1]
		defaultVal := parts[2]
		if v := os.Getenv(name); v != "" {
			return v
		}
		return defaultVal
	})

	var cfg Config
	if err := json.Unmarshal([]byte(resolved), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
