// Package config provides application configuration with multi-source
// priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.polyglot/config.yaml)
//  3. Default values
//
// Error handling uses sentinel errors for errors.Is() checks, wrapped with
// context via fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/polyglot-labs/polyglot/internal/catalog"
)

var (
	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidLanguage indicates the default language is not supported.
	ErrInvalidLanguage = errors.New("invalid language")

	// ErrInvalidLevel indicates the default level is not a CEFR code.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrInvalidThreshold indicates the detection threshold is out of range.
	ErrInvalidThreshold = errors.New("invalid detection threshold")

	// ErrInvalidTimeout indicates the request timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidRateLimit indicates the per-minute request cap is invalid.
	ErrInvalidRateLimit = errors.New("invalid rate limit")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGemini   = "gemini"
	ProviderGoogleAI = "googleai"
)

// Config stores application configuration.
// SECURITY: the API key is masked in MarshalJSON; update it when adding
// sensitive fields.
type Config struct {
	// AI provider and model configuration
	Provider    string  `mapstructure:"provider" json:"provider"`
	ModelName   string  `mapstructure:"model_name" json:"model_name"`
	Temperature float64 `mapstructure:"temperature" json:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" json:"max_tokens"`

	// Tutoring defaults applied to new sessions
	DefaultLanguage string `mapstructure:"default_language" json:"default_language"`
	DefaultLevel    string `mapstructure:"default_level" json:"default_level"`

	// DetectionThreshold is the heuristic confidence above which language
	// detection skips the model, in [0, 1].
	DetectionThreshold float64 `mapstructure:"detection_threshold" json:"detection_threshold"`

	// TimeoutSeconds bounds one model call. Zero disables the deadline.
	TimeoutSeconds int `mapstructure:"timeout_seconds" json:"timeout_seconds"`

	// RequestsPerMinute throttles model calls. Zero disables throttling.
	RequestsPerMinute int `mapstructure:"requests_per_minute" json:"requests_per_minute"`

	// APIKey is read from GEMINI_API_KEY. SENSITIVE: masked in MarshalJSON.
	// An empty key is reported per-turn rather than failing startup.
	APIKey string `mapstructure:"-" json:"api_key"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".polyglot")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply.
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	cfg.APIKey = os.Getenv("GEMINI_API_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("provider", ProviderGemini)
	viper.SetDefault("model_name", "gemini-2.5-flash")
	viper.SetDefault("temperature", 0.7)
	viper.SetDefault("max_tokens", 2048)
	viper.SetDefault("default_language", catalog.DefaultLanguageCode)
	viper.SetDefault("default_level", catalog.DefaultLevel.Code())
	viper.SetDefault("detection_threshold", 0.8)
	viper.SetDefault("timeout_seconds", 60)
	viper.SetDefault("requests_per_minute", 30)
}

// bindEnvVariables binds environment overrides explicitly.
// GEMINI_API_KEY is read directly in Load, not via Viper.
func bindEnvVariables() {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "POLYGLOT_PROVIDER")
	mustBind("model_name", "POLYGLOT_MODEL_NAME")
	mustBind("default_language", "POLYGLOT_LANGUAGE")
	mustBind("default_level", "POLYGLOT_LEVEL")
	mustBind("timeout_seconds", "POLYGLOT_TIMEOUT_SECONDS")
	mustBind("requests_per_minute", "POLYGLOT_REQUESTS_PER_MINUTE")
}

// Validate checks all values and fails fast on the first problem.
func (c *Config) Validate() error {
	if c.Provider != ProviderGemini && c.Provider != ProviderGoogleAI {
		return fmt.Errorf("%w: %q", ErrInvalidProvider, c.Provider)
	}
	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidModelName)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %.2f not in [0, 2]", ErrInvalidTemperature, c.Temperature)
	}
	if c.MaxTokens < 0 || c.MaxTokens > 65536 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxTokens, c.MaxTokens)
	}
	if _, ok := catalog.Lookup(c.DefaultLanguage); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, c.DefaultLanguage)
	}
	if _, err := catalog.ParseLevel(c.DefaultLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.DefaultLevel)
	}
	if c.DetectionThreshold < 0 || c.DetectionThreshold > 1 {
		return fmt.Errorf("%w: %.2f not in [0, 1]", ErrInvalidThreshold, c.DetectionThreshold)
	}
	if c.TimeoutSeconds < 0 || c.TimeoutSeconds > 600 {
		return fmt.Errorf("%w: %d seconds", ErrInvalidTimeout, c.TimeoutSeconds)
	}
	if c.RequestsPerMinute < 0 || c.RequestsPerMinute > 6000 {
		return fmt.Errorf("%w: %d", ErrInvalidRateLimit, c.RequestsPerMinute)
	}
	return nil
}

// Language returns the default language from the catalog.
func (c *Config) Language() catalog.Language {
	lang, ok := catalog.Lookup(c.DefaultLanguage)
	if !ok {
		return catalog.MustLookup(catalog.DefaultLanguageCode)
	}
	return lang
}

// Level returns the default proficiency level.
func (c *Config) Level() catalog.Level {
	level, err := catalog.ParseLevel(c.DefaultLevel)
	if err != nil {
		return catalog.DefaultLevel
	}
	return level
}

// Timeout returns the per-call deadline as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FullModelName returns the provider-qualified model name for Genkit,
// e.g. "googleai/gemini-2.5-flash". A name already containing "/" is
// returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	return ProviderGoogleAI + "/" + c.ModelName
}

// maskedValue is the placeholder for masked sensitive data. Full-width
// blocks avoid accidental substring matches against the real secret.
const maskedValue = "████████"

// maskSecret masks a secret for safe logging. Short secrets are fully
// masked; longer ones keep the first and last two characters for debugging.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit API key masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.APIKey = maskSecret(a.APIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
