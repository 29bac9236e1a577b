package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "FOCUSBOARD"

type FocusConfig struct {
	WorkMinutes  int `mapstructure:"work_minutes"`
	BreakMinutes int `mapstructure:"break_minutes"`
}

type NotificationsConfig struct {
	Desktop bool `mapstructure:"desktop"`
}

// DragConfig is measured in terminal cells.
type DragConfig struct {
	Threshold int `mapstructure:"threshold"`
	OffsetX   int `mapstructure:"offset_x"`
	OffsetY   int `mapstructure:"offset_y"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

type SchedulerConfig struct {
	Buffer int `mapstructure:"buffer"`
}

type Config struct {
	Focus         FocusConfig         `mapstructure:"focus"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Drag          DragConfig          `mapstructure:"drag"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Log           LogConfig           `mapstructure:"log"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
}

func Default() Config {
	return Config{
		Focus:         FocusConfig{WorkMinutes: 25, BreakMinutes: 5},
		Notifications: NotificationsConfig{Desktop: false},
		Drag:          DragConfig{Threshold: 4, OffsetX: 1, OffsetY: 1},
		Storage:       StorageConfig{Path: defaultDataPath("focusboard.db")},
		Log:           LogConfig{Path: "", Level: "info"},
		Scheduler:     SchedulerConfig{Buffer: 64},
	}
}

// DefaultPath is ~/.config/focusboard/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "focusboard", "config.yaml")
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "focusboard", name)
}

// Load reads the YAML file at path on top of the defaults, then applies
// FOCUSBOARD_* environment overrides. An empty path means DefaultPath, which
// may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("focus.work_minutes", cfg.Focus.WorkMinutes)
	v.SetDefault("focus.break_minutes", cfg.Focus.BreakMinutes)
	v.SetDefault("notifications.desktop", cfg.Notifications.Desktop)
	v.SetDefault("drag.threshold", cfg.Drag.Threshold)
	v.SetDefault("drag.offset_x", cfg.Drag.OffsetX)
	v.SetDefault("drag.offset_y", cfg.Drag.OffsetY)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("log.path", cfg.Log.Path)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("scheduler.buffer", cfg.Scheduler.Buffer)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config read %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Focus.WorkMinutes <= 0 || c.Focus.BreakMinutes <= 0 {
		return fmt.Errorf("config: focus minutes must be positive, got work=%d break=%d", c.Focus.WorkMinutes, c.Focus.BreakMinutes)
	}
	if c.Drag.Threshold <= 0 {
		return fmt.Errorf("config: drag threshold must be positive, got %d", c.Drag.Threshold)
	}
	if c.Scheduler.Buffer <= 0 {
		return fmt.Errorf("config: scheduler buffer must be positive, got %d", c.Scheduler.Buffer)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("config: storage path is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

func (c Config) WorkDuration() time.Duration {
	return time.Duration(c.Focus.WorkMinutes) * time.Minute
}

func (c Config) BreakDuration() time.Duration {
	return time.Duration(c.Focus.BreakMinutes) * time.Minute
}
