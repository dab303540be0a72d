package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	API        APIConfig        `yaml:"api"`
	Search     SearchConfig     `yaml:"search"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	I18n       I18nConfig       `yaml:"i18n"`
}

// WorkerPoolConfig holds the configuration for the error notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// APIConfig describes the upstream lawyer search service.
type APIConfig struct {
	BaseURL        string            `yaml:"base_url"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"`
	HTTPProxy      string            `yaml:"http_proxy"`
	Headers        map[string]string `yaml:"headers"`
}

// SearchConfig holds the search store settings. ResultsPerPage is filled from
// the JSON resource at APIConfigPath when present.
type SearchConfig struct {
	APIConfigPath  string `yaml:"api_config_path"`
	ResultsPerPage int    `yaml:"results_per_page"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// I18nConfig selects the fallback locale for message tables. It is also the
// locale picked when Accept-Language matches nothing.
type I18nConfig struct {
	FallbackLocale string `yaml:"fallback_locale"`
}

// APIResource mirrors the api-config.json resource shipped with the front end.
type APIResource struct {
	NumberOfResultsPerPage int    `json:"NUMBER_OF_RESULTS_PER_PAGE"`
	APIBaseURL             string `json:"API_BASE_URL,omitempty"`
}

const defaultResultsPerPage = 10

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Search.APIConfigPath != "" {
		resourcePath := cfg.Search.APIConfigPath
		if !filepath.IsAbs(resourcePath) {
			resourcePath = filepath.Join(filepath.Dir(path), resourcePath)
		}
		res, err := LoadAPIResource(resourcePath)
		if err != nil {
			return nil, err
		}
		if res.NumberOfResultsPerPage > 0 {
			cfg.Search.ResultsPerPage = res.NumberOfResultsPerPage
		}
		if cfg.API.BaseURL == "" {
			cfg.API.BaseURL = res.APIBaseURL
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadAPIResource reads the JSON api-config resource.
func LoadAPIResource(path string) (*APIResource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read api config %s: %w", path, err)
	}
	var res APIResource
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse api config %s: %w", path, err)
	}
	return &res, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 30
	}
	cfg.API.Timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second

	if cfg.Search.ResultsPerPage <= 0 {
		cfg.Search.ResultsPerPage = defaultResultsPerPage
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.I18n.FallbackLocale == "" {
		cfg.I18n.FallbackLocale = "en"
	}
}
