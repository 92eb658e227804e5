package config

import (
	"fmt"
	"time"

	"cinecontext/internal/validation"
)

// StorageBackend selects where the watchlist set is persisted.
type StorageBackend string

const (
	StorageBackendFile   StorageBackend = "file"
	StorageBackendSQLite StorageBackend = "sqlite"
)

// Settings is the full application configuration.
type Settings struct {
	Server   ServerSettings   `koanf:"server" json:"server"`
	Provider ProviderSettings `koanf:"provider" json:"provider"`
	Storage  StorageSettings  `koanf:"storage" json:"storage"`
	Logging  LoggingSettings  `koanf:"logging" json:"logging"`
	UI       UISettings       `koanf:"ui" json:"ui"`
}

type ServerSettings struct {
	Host string `koanf:"host" json:"host"`
	Port int    `koanf:"port" json:"port" validate:"gte=1,lte=65535"`
	// Requests per second allowed per client IP; 0 disables limiting.
	RateLimit      float64  `koanf:"rate_limit" json:"rateLimit" validate:"gte=0"`
	RateLimitBurst int      `koanf:"rate_limit_burst" json:"rateLimitBurst" validate:"gte=0"`
	CORSOrigins    []string `koanf:"cors_origins" json:"corsOrigins"`
}

// ProviderSettings configures the TMDB metadata client.
type ProviderSettings struct {
	APIKey       string `koanf:"api_key" json:"apiKey"`
	BaseURL      string `koanf:"base_url" json:"baseUrl" validate:"required,url"`
	ImageBaseURL string `koanf:"image_base_url" json:"imageBaseUrl" validate:"required,url"`
	Language     string `koanf:"language" json:"language"`
	// Zero means no client timeout; a hung call holds its view until the
	// request is cancelled.
	Timeout  time.Duration `koanf:"timeout" json:"timeout" validate:"gte=0"`
	Attempts int           `koanf:"attempts" json:"attempts" validate:"gte=1,lte=5"`
}

type StorageSettings struct {
	Backend StorageBackend `koanf:"backend" json:"backend" validate:"oneof=file sqlite"`
	Dir     string         `koanf:"dir" json:"dir" validate:"required"`
}

type LoggingSettings struct {
	Level      string `koanf:"level" json:"level" validate:"oneof=debug info warn error"`
	Format     string `koanf:"format" json:"format" validate:"oneof=text json"`
	File       string `koanf:"file" json:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb" json:"maxSizeMb" validate:"gte=0"`
	MaxBackups int    `koanf:"max_backups" json:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `koanf:"max_age_days" json:"maxAgeDays" validate:"gte=0"`
}

type UISettings struct {
	Locale string `koanf:"locale" json:"locale"`
	// Card overviews are truncated to this many runes.
	OverviewLength int `koanf:"overview_length" json:"overviewLength" validate:"gte=20"`
	CastLimit      int `koanf:"cast_limit" json:"castLimit" validate:"gte=1"`
}

// DefaultSettings returns the configuration used when nothing overrides it.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host:           "0.0.0.0",
			Port:           7878,
			RateLimit:      10,
			RateLimitBurst: 20,
		},
		Provider: ProviderSettings{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "en-US",
			Attempts:     1,
		},
		Storage: StorageSettings{
			Backend: StorageBackendFile,
			Dir:     "./data",
		},
		Logging: LoggingSettings{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UISettings{
			Locale:         "en-US",
			OverviewLength: 160,
			CastLimit:      12,
		},
	}
}

// Validate checks the settings for values the application cannot run with.
func (s Settings) Validate() error {
	if err := validation.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
