package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writePasswordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db_password")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write password file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASS_PATH", writePasswordFile(t, "s3cret\n"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPass != "s3cret" {
		t.Errorf("expected password s3cret, got %q", cfg.DBPass)
	}
	if cfg.HTTPPort != "8080" || cfg.DBName != "postgres" || cfg.DBHost != "db" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ThanksAmount != 1 {
		t.Errorf("expected default amount 1, got %d", cfg.ThanksAmount)
	}
	if cfg.DBMaxConns != 10 || cfg.DBAcquireTimeout != 5*time.Second {
		t.Errorf("unexpected pool defaults: %+v", cfg)
	}
}

func TestLoad_PasswordFileWithoutNewline(t *testing.T) {
	t.Setenv("DB_PASS_PATH", writePasswordFile(t, "hunter2"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPass != "hunter2" {
		t.Errorf("expected password hunter2, got %q", cfg.DBPass)
	}
}

func TestLoad_EmptyPasswordFile(t *testing.T) {
	t.Setenv("DB_PASS_PATH", writePasswordFile(t, "\n"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for empty password file")
	}
}

func TestLoad_MissingPasswordFile(t *testing.T) {
	t.Setenv("DB_PASS_PATH", filepath.Join(t.TempDir(), "nope"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing password file")
	}
}

func TestLoad_InvalidAmount(t *testing.T) {
	t.Setenv("DB_PASS_PATH", writePasswordFile(t, "s3cret\n"))

	t.Setenv("THANKS_AMOUNT", "abc")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}

	t.Setenv("THANKS_AMOUNT", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestLoad_MaxConnsOutOfRange(t *testing.T) {
	t.Setenv("DB_PASS_PATH", writePasswordFile(t, "s3cret\n"))

	t.Setenv("DB_MAX_CONNS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero max conns")
	}

	t.Setenv("DB_MAX_CONNS", "3000000000")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for max conns beyond int32")
	}
}

func TestDatabaseURL_EscapesCredentials(t *testing.T) {
	cfg := Config{DBUser: "app", DBPass: "p@ss/word", DBHost: "db", DBName: "ledger"}

	url := cfg.DatabaseURL()
	if strings.Contains(url, "p@ss/word") {
		t.Errorf("password not escaped in %q", url)
	}
	if !strings.HasPrefix(url, "postgres://app:") || !strings.Contains(url, "@db:5432/ledger") {
		t.Errorf("unexpected url %q", url)
	}
}
