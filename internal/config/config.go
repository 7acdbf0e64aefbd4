package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/waste-wise/internal/common"
	"github.com/Veraticus/waste-wise/internal/history"
	"github.com/Veraticus/waste-wise/internal/llm"
	"github.com/Veraticus/waste-wise/internal/storage"
)

// DefaultDatabasePath is where the SQLite database lives unless configured.
const DefaultDatabasePath = "$HOME/.local/share/wise/wise.db"

// Config is the typed view of the application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	History  HistoryConfig  `mapstructure:"history"`
	Stats    StatsConfig    `mapstructure:"stats"`
}

// LoggingConfig controls the default slog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig selects the storage backend.
type DatabaseConfig struct {
	Backend string      `mapstructure:"backend"`
	Path    string      `mapstructure:"path"`
	DSN     string      `mapstructure:"dsn"`
	Minio   MinioConfig `mapstructure:"minio"`
}

// MinioConfig configures the object storage backend.
type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// LLMConfig configures the model provider.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"`
	Model           string        `mapstructure:"model"`
	APIKey          string        `mapstructure:"api_key"`
	GeminiAPIKey    string        `mapstructure:"gemini_api_key"`
	OpenAIAPIKey    string        `mapstructure:"openai_api_key"`
	AnthropicAPIKey string        `mapstructure:"anthropic_api_key"`
	AccessToken     string        `mapstructure:"access_token"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	RateLimit       int           `mapstructure:"rate_limit"`
}

// HistoryConfig controls history retention.
type HistoryConfig struct {
	Limit int `mapstructure:"limit"`
}

// StatsConfig controls streak computation.
type StatsConfig struct {
	// Timezone is an IANA zone name; empty means the local zone.
	Timezone string `mapstructure:"timezone"`
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Load.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.backend", storage.BackendSQLite)
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.minio.endpoint", "")
	v.SetDefault("database.minio.region", "")
	v.SetDefault("database.minio.bucket", "waste-wise")
	v.SetDefault("database.minio.access_key", "")
	v.SetDefault("database.minio.secret_key", "")
	v.SetDefault("database.minio.prefix", "")
	v.SetDefault("database.minio.use_ssl", true)

	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.access_token", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.cache_ttl", 24*time.Hour)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.max_tokens", 256)
	v.SetDefault("llm.rate_limit", 15)

	v.SetDefault("history.limit", history.DefaultLimit)
	v.SetDefault("stats.timezone", "")
}

// Load decodes v into a Config and validates it. A nil v uses the global
// viper instance.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Database.Backend = strings.ToLower(strings.TrimSpace(cfg.Database.Backend))
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", common.ErrInvalidConfig, c.Logging.Format)
	}

	switch c.Database.Backend {
	case storage.BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", common.ErrMissingConfig)
		}
	case storage.BackendPostgres, storage.BackendMySQL:
		if c.Database.DSN == "" {
			return fmt.Errorf("%w: database.dsn is required for %s", common.ErrMissingConfig, c.Database.Backend)
		}
	case storage.BackendMinio:
		if c.Database.Minio.Endpoint == "" || c.Database.Minio.Bucket == "" {
			return fmt.Errorf("%w: database.minio.endpoint and bucket are required", common.ErrMissingConfig)
		}
	case storage.BackendMemory:
	default:
		return fmt.Errorf("%w: unknown database.backend %q", common.ErrInvalidConfig, c.Database.Backend)
	}

	switch c.LLM.Provider {
	case llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("%w: unsupported llm.provider %q (use %s)",
			common.ErrInvalidConfig, c.LLM.Provider, strings.Join(llm.Providers(), ", "))
	}

	if c.History.Limit <= 0 {
		return fmt.Errorf("%w: history.limit must be positive, got %d", common.ErrInvalidConfig, c.History.Limit)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the zone used for streak days.
func (c *Config) Location() (*time.Location, error) {
	if c.Stats.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Stats.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: stats.timezone: %w", common.ErrInvalidConfig, err)
	}
	return loc, nil
}

// StorageOptions converts the database section for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	m := c.Database.Minio
	return storage.Options{
		Backend: c.Database.Backend,
		Path:    c.Database.Path,
		DSN:     c.Database.DSN,
		Minio: storage.MinioOptions{
			Endpoint:  m.Endpoint,
			Region:    m.Region,
			Bucket:    m.Bucket,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			Prefix:    m.Prefix,
			UseSSL:    m.UseSSL,
		},
	}
}

// providerKeyEnv maps providers to the conventional API key variable.
var providerKeyEnv = map[string]string{
	llm.ProviderGemini:    "GEMINI_API_KEY",
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// LLMClientConfig resolves credentials and returns the provider config.
// The API key comes from llm.api_key, then the provider-specific key, then
// the provider's conventional environment variable.
func (c *Config) LLMClientConfig() (llm.Config, error) {
	cfg := llm.Config{
		Provider:    c.LLM.Provider,
		Model:       c.LLM.Model,
		AccessToken: c.LLM.AccessToken,
		BaseURL:     c.LLM.BaseURL,
		Timeout:     c.LLM.Timeout,
		CacheTTL:    c.LLM.CacheTTL,
		Temperature: c.LLM.Temperature,
		MaxTokens:   c.LLM.MaxTokens,
		RateLimit:   c.LLM.RateLimit,
	}

	cfg.APIKey = c.LLM.APIKey
	if cfg.APIKey == "" {
		switch c.LLM.Provider {
		case llm.ProviderGemini:
			cfg.APIKey = c.LLM.GeminiAPIKey
		case llm.ProviderOpenAI:
			cfg.APIKey = c.LLM.OpenAIAPIKey
		case llm.ProviderAnthropic:
			cfg.APIKey = c.LLM.AnthropicAPIKey
		}
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(providerKeyEnv[c.LLM.Provider])
	}

	if cfg.APIKey == "" && (c.LLM.Provider != llm.ProviderGemini || cfg.AccessToken == "") {
		return llm.Config{}, fmt.Errorf("%w: %s API key not found in config or %s environment variable",
			common.ErrMissingConfig, c.LLM.Provider, providerKeyEnv[c.LLM.Provider])
	}
	return cfg, nil
}
