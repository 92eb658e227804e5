package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the settings file location.
const PathEnvVar = "CINECONTEXT_CONFIG"

// Manager loads and saves Settings. Values are layered as
// defaults < settings file < environment.
type Manager struct {
	path    string
	envFile string
	mu      sync.Mutex
}

func NewManager(path string) *Manager {
	if override := strings.TrimSpace(os.Getenv(PathEnvVar)); override != "" {
		path = override
	}
	return &Manager{path: path}
}

// WithEnvFile makes Load read KEY=VALUE pairs from a dotenv file before the
// environment layer. Variables already set in the process win.
func (m *Manager) WithEnvFile(path string) *Manager {
	m.envFile = path
	return m
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.envFile != "" {
		if err := godotenv.Load(m.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("load env file %s: %w", m.envFile, err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultSettings(), "koanf"), nil); err != nil {
		return Settings{}, fmt.Errorf("load defaults: %w", err)
	}

	if m.path != "" {
		if _, err := os.Stat(m.path); err == nil {
			if err := k.Load(file.Provider(m.path), yaml.Parser()); err != nil {
				return Settings{}, fmt.Errorf("load settings file %s: %w", m.path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("stat settings file %s: %w", m.path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Settings{}, fmt.Errorf("load environment: %w", err)
	}
	if err := splitCommaList(k, "server.cors_origins"); err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes s to the settings file as YAML.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("settings path not configured")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(s, "koanf"), nil); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// envKeys maps environment variables to settings paths. TMDB_API_KEY is
// accepted for compatibility with the usual TMDB tooling.
var envKeys = map[string]string{
	"tmdb_api_key":                    "provider.api_key",
	"cinecontext_provider_api_key":    "provider.api_key",
	"cinecontext_provider_base_url":   "provider.base_url",
	"cinecontext_provider_image_url":  "provider.image_base_url",
	"cinecontext_provider_language":   "provider.language",
	"cinecontext_provider_timeout":    "provider.timeout",
	"cinecontext_provider_attempts":   "provider.attempts",
	"cinecontext_server_host":         "server.host",
	"cinecontext_server_port":         "server.port",
	"cinecontext_server_rate_limit":   "server.rate_limit",
	"cinecontext_server_rate_burst":   "server.rate_limit_burst",
	"cinecontext_server_cors_origins": "server.cors_origins",
	"cinecontext_storage_backend":     "storage.backend",
	"cinecontext_storage_dir":         "storage.dir",
	"cinecontext_log_level":           "logging.level",
	"cinecontext_log_format":          "logging.format",
	"cinecontext_log_file":            "logging.file",
	"cinecontext_ui_locale":           "ui.locale",
}

// envKey returns the settings path for an environment variable, or "" to
// skip variables the application does not read.
func envKey(name string) string {
	return envKeys[strings.ToLower(name)]
}

func splitCommaList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if err := k.Set(path, values); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}
