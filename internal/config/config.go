package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	AI      AIConfig      `mapstructure:"ai"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type AIConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	Model             string  `mapstructure:"model"`
	Temperature       float64 `mapstructure:"temperature"`
	TopP              float64 `mapstructure:"top_p"`
	TopK              int     `mapstructure:"top_k"`
	MaxOutputTokens   int     `mapstructure:"max_output_tokens"`
	RequestsPerMinute int     `mapstructure:"requests_per_minute"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
}

type SessionConfig struct {
	File string `mapstructure:"file"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Secrets are env-only values that never belong in a config file.
type Secrets struct {
	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY"`
	SessionKey   string `envconfig:"VETCLI_SESSION_KEY"`
}

// Load reads config.yaml from the working directory or ~/.vetcli,
// falling back to defaults when no file exists.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".vetcli"))
	}

	viper.SetEnvPrefix("VETCLI")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Session.File == "" {
		config.Session.File = defaultSessionFile()
	}

	return &config, nil
}

// LoadSecrets pulls secret values from the environment.
func LoadSecrets() (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &s, nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:8000")
	viper.SetDefault("api.timeout_seconds", 15)
	viper.SetDefault("ai.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("ai.model", "gemini-2.0-flash")
	viper.SetDefault("ai.temperature", 0.1)
	viper.SetDefault("ai.top_p", 0.95)
	viper.SetDefault("ai.top_k", 40)
	viper.SetDefault("ai.max_output_tokens", 2048)
	viper.SetDefault("ai.requests_per_minute", 10)
	viper.SetDefault("ai.timeout_seconds", 30)
	viper.SetDefault("log.level", "info")
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vetcli-session"
	}
	return filepath.Join(home, ".vetcli", "session")
}
