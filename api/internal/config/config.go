package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is fatal at startup: no binary serves requests without it.
var ErrMissingAPIKey = errors.New("missing required env GOOGLE_API_KEY (or GEMINI_API_KEY)")

type Config struct {
	Port string `yaml:"port"`

	GeminiAPIKey string `yaml:"-"`
	GeminiModel  string `yaml:"gemini_model"`

	// InstructionFile overrides the built-in instruction prompt.
	InstructionFile string `yaml:"instruction_file"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`

	TelegramBotToken string `yaml:"telegram_bot_token"`
	WebhookURL       string `yaml:"webhook_url"`
}

func defaults() *Config {
	return &Config{
		Port:           "8000",
		GeminiModel:    "gemini-2.5-flash",
		RequestTimeout: 180 * time.Second,
		MaxUploadBytes: 10 << 20,
	}
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Load reads the optional YAML file named by BRAINY_CONFIG (default
// brainy.yaml), then applies environment overrides. The API key comes from
// the environment only.
func Load() (*Config, error) {
	cfg := defaults()

	path := getEnv("BRAINY_CONFIG", "brainy.yaml")
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.InstructionFile = getEnv("INSTRUCTION_FILE", cfg.InstructionFile)
	cfg.TelegramBotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	cfg.WebhookURL = getEnv("WEBHOOK_URL", cfg.WebhookURL)
	if v := getEnv("REQUEST_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := getEnv("MAX_UPLOAD_BYTES", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	cfg.GeminiAPIKey = getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", ""))
	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return cfg, nil
}

// loadFile is a no-op when the file does not exist.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}
