package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STAGE", "dev")
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 7171 {
		t.Fatalf("expected port: 7171\t got: %d", cfg.Port)
	}
	if cfg.ReconnectGracePeriod != time.Minute*2 {
		t.Fatalf("expected grace period: 2m\t got: %s", cfg.ReconnectGracePeriod)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("STAGE", "dev")
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9191\nDATABASE_URL=postgres://localhost:5432/battleship?sslmode=disable\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that already exist
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DATABASE_URL")
	})

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9191 {
		t.Fatalf("expected port: 9191\t got: %d", cfg.Port)
	}
	if !cfg.AnalyticsEnabled() {
		t.Fatalf("expected analytics enabled with DATABASE_URL set")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown stage", key: "STAGE", val: "staging"},
		{name: "port not a number", key: "PORT", val: "abc"},
		{name: "port out of range", key: "PORT", val: "70000"},
		{name: "zero grace period", key: "RECONNECT_GRACE_PERIOD", val: "0s"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("STAGE", "dev")
			t.Setenv(test.key, test.val)

			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatalf("expected error for %s=%s", test.key, test.val)
			}
		})
	}
}
