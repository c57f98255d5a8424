package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/foxside/taggenie/internal/adapters/bbolt"
	"github.com/foxside/taggenie/internal/adapters/suggest"
	"github.com/foxside/taggenie/internal/adapters/youtube"
	"github.com/foxside/taggenie/internal/domain/scoring"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvAPIKey = "YT_API_KEY"
	EnvListen = "TAGGENIE_LISTEN"
)

// Config holds initialization parameters for the App. The yaml-tagged fields
// come from config.yaml; the rest are set by the caller at runtime.
type Config struct {
	Listen        string        `yaml:"listen"`
	Count         int           `yaml:"count"`    // default tag count
	Language      string        `yaml:"language"` // default hl
	Region        string        `yaml:"region"`   // default gl
	YouTubeAPIKey string        `yaml:"youtube_api_key"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	MinedLimit    int           `yaml:"mined_limit"` // negative = no cap
	StopWordsFile string        `yaml:"stopwords_file"`
	LogLevel      string        `yaml:"log_level"`
	SuggestURL    string        `yaml:"suggest_url"`
	YouTubeURL    string        `yaml:"youtube_url"`
	NoCache       bool          `yaml:"no_cache"`

	Home    string       `yaml:"-"` // state directory (default: DefaultHome())
	Offline bool         `yaml:"-"` // skip every network lookup
	Logger  *slog.Logger `yaml:"-"` // nil = text handler on stderr at LogLevel
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Listen:      "127.0.0.1:8080",
		Count:       scoring.DefaultLimit,
		Language:    "en",
		Region:      "US",
		CacheTTL:    bbolt.DefaultTTL,
		HTTPTimeout: 8 * time.Second,
		MinedLimit:  scoring.DefaultMinedLimit,
		LogLevel:    "info",
		SuggestURL:  suggest.DefaultBaseURL,
		YouTubeURL:  youtube.DefaultBaseURL,
	}
}

// LoadConfig reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	return loadConfig(path, os.LookupEnv)
}

func loadConfig(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := decodeConfig(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		cfg.YouTubeAPIKey = v
	}
	if v, ok := lookup(EnvListen); ok && v != "" {
		cfg.Listen = v
	}
	return cfg, cfg.Validate()
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate checks value ranges. Count is not rejected, only clamped later.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative (got %s)", c.CacheTTL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive (got %s)", c.HTTPTimeout)
	}
	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("listen address is empty")
	}
	return nil
}

// Redacted returns a copy safe to print: the API key is masked.
func (c Config) Redacted() Config {
	if c.YouTubeAPIKey != "" {
		c.YouTubeAPIKey = "****"
	}
	return c
}

// YAML renders the file-backed fields.
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
