package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManagerLoadDefaultsWhenFileMissing(t *testing.T) {
	unsetEnv(t, "TMDB_API_KEY")
	mgr := NewManager(filepath.Join(t.TempDir(), "settings.yaml"))

	got, err := mgr.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := DefaultSettings()
	if got.Server.Port != want.Server.Port || got.Provider.BaseURL != want.Provider.BaseURL {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if got.Provider.Attempts != 1 {
		t.Fatalf("expected single attempt by default, got %d", got.Provider.Attempts)
	}
	if got.Storage.Backend != StorageBackendFile {
		t.Fatalf("expected file backend, got %q", got.Storage.Backend)
	}
}

func TestManagerSaveAndReload(t *testing.T) {
	unsetEnv(t, "TMDB_API_KEY")
	mgr := NewManager(filepath.Join(t.TempDir(), "nested", "settings.yaml"))

	cfg := DefaultSettings()
	cfg.Server.Port = 9999
	cfg.Provider.APIKey = "secret"
	cfg.Provider.Timeout = 5 * time.Second
	cfg.Storage.Backend = StorageBackendSQLite

	if err := mgr.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := mgr.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Server.Port != 9999 {
		t.Fatalf("expected port 9999, got %d", got.Server.Port)
	}
	if got.Provider.APIKey != "secret" {
		t.Fatalf("expected api key to survive reload, got %q", got.Provider.APIKey)
	}
	if got.Provider.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", got.Provider.Timeout)
	}
	if got.Storage.Backend != StorageBackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", got.Storage.Backend)
	}
}

func TestManagerEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\nprovider:\n  api_key: from-file\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Setenv("TMDB_API_KEY", "from-env")
	t.Setenv("CINECONTEXT_SERVER_CORS_ORIGINS", "http://a.test, http://b.test")

	got, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Server.Port != 8080 {
		t.Fatalf("expected file port 8080, got %d", got.Server.Port)
	}
	if got.Provider.APIKey != "from-env" {
		t.Fatalf("expected env api key, got %q", got.Provider.APIKey)
	}
	if len(got.Server.CORSOrigins) != 2 || got.Server.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins: %v", got.Server.CORSOrigins)
	}
}

func TestManagerReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("CINECONTEXT_UI_LOCALE=en-GB\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	unsetEnv(t, "TMDB_API_KEY")
	unsetEnv(t, "CINECONTEXT_UI_LOCALE")

	got, err := NewManager(filepath.Join(dir, "settings.yaml")).WithEnvFile(envPath).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UI.Locale != "en-GB" {
		t.Fatalf("expected locale from env file, got %q", got.UI.Locale)
	}
}

func TestManagerRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: floppy\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	unsetEnv(t, "TMDB_API_KEY")

	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected validation error for unknown storage backend")
	}
}

// unsetEnv removes key for the duration of the test and restores it after.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
