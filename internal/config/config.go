package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config is the on-disk TOML configuration.
type Config struct {
	Logging       LoggingConfig      `toml:"logging"`
	Display       DisplayConfig      `toml:"display"`
	Notifications NotificationConfig `toml:"notifications"`
	Confirm       ConfirmConfig      `toml:"confirm"`
}

// LoggingConfig configures runtime log sinks.
type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

// DevFileConfig configures the dev-mode logfmt file sink.
type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// DisplayConfig holds formatting settings for the board and task details.
type DisplayConfig struct {
	Language         string `toml:"language"`
	DateLayout       string `toml:"date_layout"`
	DetailDateLayout string `toml:"detail_date_layout"`
	DetailTimeLayout string `toml:"detail_time_layout"`
}

// NotificationConfig controls how long toasts stay visible.
type NotificationConfig struct {
	Duration string `toml:"duration"`
}

// ConfirmConfig lists destructive actions that need a second keypress.
type ConfirmConfig struct {
	DeleteAll  bool `toml:"delete_all"`
	DeleteList bool `toml:"delete_list"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".cards/log",
			},
		},
		Display: DisplayConfig{
			Language:         "en",
			DateLayout:       "Jan 2, 2006",
			DetailDateLayout: "Monday, January 2, 2006",
			DetailTimeLayout: "03:04 PM",
		},
		Notifications: NotificationConfig{
			Duration: "3s",
		},
		Confirm: ConfirmConfig{
			DeleteAll:  true,
			DeleteList: false,
		},
	}
}

// Load reads path over defaults. A missing or empty file yields defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := charmLog.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if lang := strings.TrimSpace(c.Display.Language); lang != "" {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("invalid display.language: %q", c.Display.Language)
		}
	}
	for name, layout := range map[string]string{
		"display.date_layout":        c.Display.DateLayout,
		"display.detail_date_layout": c.Display.DetailDateLayout,
		"display.detail_time_layout": c.Display.DetailTimeLayout,
	} {
		if strings.TrimSpace(layout) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if _, err := c.NotificationDuration(); err != nil {
		return err
	}
	return nil
}

// NotificationDuration parses notifications.duration. Zero disables auto-dismiss.
func (c Config) NotificationDuration() (time.Duration, error) {
	raw := strings.TrimSpace(c.Notifications.Duration)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid notifications.duration: %q", c.Notifications.Duration)
	}
	if d < 0 {
		return 0, fmt.Errorf("notifications.duration must be >= 0, got %q", c.Notifications.Duration)
	}
	return d, nil
}

// EnsureConfigDir creates the parent directory of path.
func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteDefault writes the default configuration to path unless a file already exists.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	content, err := toml.Marshal(Default())
	if err != nil {
		return false, fmt.Errorf("encode toml: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
