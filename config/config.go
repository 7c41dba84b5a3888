// Package config defines the batch configuration and how it is loaded.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/spacesedan/aspectflow/internal/sentiment"
)

const (
	EnvPrefix     = "ASPECTFLOW_"
	ConfigFileEnv = "ASPECTFLOW_CONFIG"
)

const (
	ScorerHugot  = "hugot"
	ScorerVader  = "vader"
	ScorerRemote = "remote"
)

type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	InputFile string `koanf:"input_file"`
	OutputDir string `koanf:"output_dir"`

	// Threshold is the average below which an aspect gets a suggestion.
	Threshold          float64 `koanf:"threshold"`
	TopKeywords        int     `koanf:"top_keywords"`
	SuggestionKeywords int     `koanf:"suggestion_keywords"`

	// MaxTokens caps the text handed to the sentiment model.
	MaxTokens int `koanf:"max_tokens"`

	// Scorer selects the sentiment backend: hugot, vader or remote.
	Scorer               string `koanf:"scorer"`
	ModelName            string `koanf:"model_name"`
	ModelDir             string `koanf:"model_dir"`
	RemoteEndpoint       string `koanf:"remote_endpoint"`
	RemoteHealthEndpoint string `koanf:"remote_health_endpoint"`
	RemoteTimeoutSeconds int    `koanf:"remote_timeout_seconds"`

	// ScoreFailure is abort or neutral.
	ScoreFailure string `koanf:"score_failure"`

	WordCloud      bool `koanf:"word_cloud"`
	WordCloudWords int  `koanf:"word_cloud_words"`

	MetricsTextfile string `koanf:"metrics_textfile"`

	ValkeyAddress   string `koanf:"valkey_address"`
	ValkeyPassword  string `koanf:"valkey_password"`
	ValkeyTLS       bool   `koanf:"valkey_tls"`
	CacheTTLSeconds int    `koanf:"cache_ttl_seconds"`

	// Aspects replaces trigger lists per aspect. YAML only.
	Aspects map[string][]string `koanf:"aspects"`
}

func New() *Config {
	return &Config{
		LogLevel:             "info",
		InputFile:            "googreview-aladdin-bakery-st-laurent.json",
		OutputDir:            ".",
		Threshold:            3.5,
		TopKeywords:          10,
		SuggestionKeywords:   5,
		MaxTokens:            512,
		Scorer:               ScorerHugot,
		ModelName:            sentiment.DefaultModelName,
		ModelDir:             "./models",
		RemoteTimeoutSeconds: 60,
		ScoreFailure:         "abort",
		WordCloud:            true,
		WordCloudWords:       40,
		CacheTTLSeconds:      86400,
	}
}

// Load layers defaults, the optional YAML file named by ASPECTFLOW_CONFIG and
// ASPECTFLOW_* environment variables, in increasing precedence.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// ASPECTFLOW_OUTPUT_DIR -> output_dir
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ToLower(s)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	// the file path itself is not a setting
	k.Delete("config")

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("%w: input_file must not be empty", ErrInvalidConfig)
	}
	switch c.Scorer {
	case ScorerHugot, ScorerVader:
	case ScorerRemote:
		if c.RemoteEndpoint == "" {
			return fmt.Errorf("%w: remote_endpoint is required for the remote scorer", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown scorer %q", ErrInvalidConfig, c.Scorer)
	}
	if c.ScoreFailure != "abort" && c.ScoreFailure != "neutral" {
		return fmt.Errorf("%w: score_failure must be abort or neutral, got %q", ErrInvalidConfig, c.ScoreFailure)
	}
	if c.SuggestionKeywords < 0 || c.TopKeywords < 0 || c.MaxTokens < 0 {
		return fmt.Errorf("%w: keyword and token limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.RemoteTimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
