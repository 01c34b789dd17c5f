package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/content-tagger-go/internal/constants"
	"github.com/kapu/content-tagger-go/internal/util"
	"github.com/kapu/content-tagger-go/pkg/errors"
)

var (
	ginModes   = []string{"debug", "release", "test"}
	logFormats = []string{"console", "json"}
)

type Config struct {
	Server  ServerConfig
	Mezink  MezinkConfig
	Gemini  GeminiConfig
	OpenAI  OpenAIConfig
	Tagging TaggingConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
	Mode string
}

type MezinkConfig struct {
	Email          string
	Password       string
	LoginURL       string
	AnalyticsURL   string
	LoginTimeout   time.Duration
	ProfileTimeout time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type TaggingConfig struct {
	RowInterval      time.Duration
	MaxTextLength    int
	MaxPromptLength  int
	StrictCategories bool
}

type LoggingConfig struct {
	Level  string
	File   string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 3000),
			Mode: getEnv("GIN_MODE", "release"),
		},
		Mezink: MezinkConfig{
			Email:          getEnv("MEZINK_EMAIL", ""),
			Password:       getEnv("MEZINK_PASSWORD", ""),
			LoginURL:       getEnv("MEZINK_LOGIN_URL", constants.MezinkAPI.LoginURL),
			AnalyticsURL:   getEnv("MEZINK_ANALYTICS_URL", constants.MezinkAPI.AnalyticsURL),
			LoginTimeout:   getEnvSeconds("MEZINK_LOGIN_TIMEOUT_SECONDS", constants.MezinkAPI.LoginTimeout),
			ProfileTimeout: getEnvSeconds("MEZINK_PROFILE_TIMEOUT_SECONDS", constants.MezinkAPI.ProfileTimeout),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", getEnv("NEW_API_KEY", "")),
			Model:   getEnv("GEMINI_MODEL", constants.ModelDefaults.GeminiModel),
			Timeout: getEnvSeconds("GEMINI_TIMEOUT_SECONDS", constants.ModelDefaults.Timeout),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", constants.ModelDefaults.OpenAIModel),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Tagging: TaggingConfig{
			RowInterval:      time.Duration(getEnvInt("ROW_INTERVAL_MS", int(constants.Throttle.RowInterval/time.Millisecond))) * time.Millisecond,
			MaxTextLength:    getEnvInt("MAX_TEXT_LENGTH", constants.TextLimits.MaxFieldLength),
			MaxPromptLength:  getEnvInt("MAX_PROMPT_LENGTH", constants.TextLimits.MaxPromptLength),
			StrictCategories: getEnvBool("STRICT_CATEGORIES", false),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			File:   getEnv("LOG_FILE", ""),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Mezink.Email == "" {
		return errors.NewValidationError("MEZINK_EMAIL is required", "MEZINK_EMAIL", "")
	}
	if c.Mezink.Password == "" {
		return errors.NewValidationError("MEZINK_PASSWORD is required", "MEZINK_PASSWORD", "")
	}
	if c.Gemini.APIKey == "" {
		return errors.NewValidationError("GEMINI_API_KEY (or NEW_API_KEY) is required", "GEMINI_API_KEY", "")
	}
	if c.Mezink.LoginURL == "" || c.Mezink.AnalyticsURL == "" {
		return errors.NewValidationError("MEZINK_LOGIN_URL and MEZINK_ANALYTICS_URL must not be empty", "MEZINK_LOGIN_URL", c.Mezink.LoginURL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.NewValidationError(fmt.Sprintf("SERVER_PORT out of range: %d", c.Server.Port), "SERVER_PORT", c.Server.Port)
	}
	if c.Server.Mode != "" && !util.Contains(ginModes, c.Server.Mode) {
		return errors.NewValidationError(fmt.Sprintf("GIN_MODE must be one of %v", ginModes), "GIN_MODE", c.Server.Mode)
	}
	if c.Logging.Format != "" && !util.Contains(logFormats, c.Logging.Format) {
		return errors.NewValidationError(fmt.Sprintf("LOG_FORMAT must be one of %v", logFormats), "LOG_FORMAT", c.Logging.Format)
	}
	if c.Tagging.RowInterval < 0 {
		return errors.NewValidationError("ROW_INTERVAL_MS must not be negative", "ROW_INTERVAL_MS", c.Tagging.RowInterval)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	return time.Duration(getEnvInt(key, int(defaultValue/time.Second))) * time.Second
}
