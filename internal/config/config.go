// Package config loads runtime settings from defaults, a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"faal-poster/internal/domain"
	"faal-poster/pkg/log"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH and --config are both empty.
const DefaultPath = "config/poster.yaml"

// Config holds every runtime setting.
type Config struct {
	Credentials Credentials    `yaml:"-"`
	Assets      AssetsConfig   `yaml:"assets"`
	Oracle      OracleConfig   `yaml:"oracle"`
	Calendar    CalendarConfig `yaml:"calendar"`
	Render      RenderConfig   `yaml:"render"`
	Telegram    TelegramConfig `yaml:"telegram"`
	HTTP        HTTPConfig     `yaml:"http"`
	Log         LogConfig      `yaml:"log"`
	Server      ServerConfig   `yaml:"server"`
	Journal     JournalConfig  `yaml:"journal"`
}

// Credentials authenticate the publisher. They only come from the environment.
type Credentials struct {
	BotToken string
	ChatID   string
}

// Validate returns ErrMissingCredentials when either value is empty.
func (c Credentials) Validate() error {
	switch {
	case c.BotToken == "":
		return fmt.Errorf("%w: bot_token is empty", domain.ErrMissingCredentials)
	case c.ChatID == "":
		return fmt.Errorf("%w: chat_id is empty", domain.ErrMissingCredentials)
	}
	return nil
}

type AssetsConfig struct {
	FontURL     string `yaml:"font_url"`
	FontPath    string `yaml:"font_path"`
	RefreshFont bool   `yaml:"refresh_font"`
	ImageURL    string `yaml:"image_url"`
}

type OracleConfig struct {
	URL string `yaml:"url"`
}

type CalendarConfig struct {
	Timezone string `yaml:"timezone"`
}

type RenderConfig struct {
	FontSize   float64 `yaml:"font_size"`
	OutputPath string  `yaml:"output_path"`
}

type TelegramConfig struct {
	// APIEndpoint is a format string with two %s verbs: token, then method.
	APIEndpoint string `yaml:"api_endpoint"`
}

type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  log.Level `yaml:"level"`
	Format string    `yaml:"format"`
}

type ServerConfig struct {
	Port       string        `yaml:"port"`
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
	PreviewTTL time.Duration `yaml:"preview_ttl"`
}

type JournalConfig struct {
	Path        string `yaml:"path"`
	DatabaseURL string `yaml:"-"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Assets: AssetsConfig{
			FontURL:  "https://github.com/rastikerdar/vazirmatn/blob/master/fonts/ttf/Vazirmatn-Regular.ttf?raw=true",
			FontPath: "Vazirmatn-Regular.ttf",
			ImageURL: "https://picsum.photos/1200",
		},
		Oracle:   OracleConfig{URL: "https://api.ganjoor.net/api/ganjoor/hafez/faal"},
		Calendar: CalendarConfig{Timezone: "Asia/Tehran"},
		Render: RenderConfig{
			FontSize:   60,
			OutputPath: "image_with_text_and_frame.png",
		},
		Telegram: TelegramConfig{APIEndpoint: "https://api.telegram.org/bot%s/%s"},
		HTTP:     HTTPConfig{Timeout: 60 * time.Second},
		Log:      LogConfig{Level: log.Info, Format: "json"},
		Server: ServerConfig{
			Port:       "3000",
			RateLimit:  5,
			RateWindow: time.Minute,
			PreviewTTL: 30 * time.Minute,
		},
	}
}

// Load reads .env (if present), then the YAML file at path (if present), then
// environment overrides. An empty path falls back to CONFIG_PATH, then DefaultPath.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file onto cfg. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	c.Credentials.BotToken = getenv("bot_token")
	c.Credentials.ChatID = getenv("chat_id")

	if v := getenv("LOG_LEVEL"); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("LOG_LEVEL %q: %w", v, err)
		}
		c.Log.Level = level
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.Journal.DatabaseURL = v
	}
	if v := getenv("JOURNAL_PATH"); v != "" {
		c.Journal.Path = v
	}
	if v := getenv("TELEGRAM_API_ENDPOINT"); v != "" {
		c.Telegram.APIEndpoint = v
	}
	if v := getenv("PREVIEW_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes < 0 {
			return fmt.Errorf("PREVIEW_TTL_MINUTES %q: not a non-negative integer", v)
		}
		c.Server.PreviewTTL = time.Duration(minutes) * time.Minute
	}
	return nil
}
