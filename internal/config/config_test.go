package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daybrief.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadSubstitutesEnv(t *testing.T) {
	t.Setenv("DB_TEST_DSN", "postgres://real/dsn")

	path := writeConfig(t, `{
		"server": {"port": ${DB_TEST_PORT:8080}, "log_level": "debug"},
		"storage": {"backend": "postgres", "postgres": {"dsn": "${DB_TEST_DSN}"}},
		"digest": {"hour": 7}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default substitution: got port %d", cfg.Server.Port)
	}
	if cfg.Storage.Postgres.DSN != "postgres://real/dsn" {
		t.Errorf("env substitution: got dsn %q", cfg.Storage.Postgres.DSN)
	}
	if cfg.Digest.Hour != 7 {
		t.Errorf("got digest hour %d", cfg.Digest.Hour)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/daybrief.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSubscriptions(t *testing.T) {
	path := writeConfig(t, `{
		"digest": {
			"hour": 6,
			"subscriptions": [
				{"user_id": "u1", "to": "u1@example.com", "from": "agent@example.com", "token": "t"}
			]
		},
		"notify": {"slack": {"enabled": true, "webhook_url": "https://hooks.slack.com/x"}}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Digest.Subscriptions) != 1 || cfg.Digest.Subscriptions[0].UserID != "u1" {
		t.Errorf("unexpected subscriptions: %+v", cfg.Digest.Subscriptions)
	}
	if !cfg.Notify.Slack.Enabled {
		t.Error("expected slack enabled")
	}
}
