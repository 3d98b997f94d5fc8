// Package config resolves the application settings from the
// environment, an optional .env file and an optional YAML file.
//
// A value set in the process environment wins over the .env file,
// which wins over config.yaml, which wins over the defaults. Command
// line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/example/studynotes/internal/scheduler"
	"github.com/example/studynotes/internal/storage"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppDirName is the directory holding the data and config files.
const AppDirName = "StudyNotes"

// Environment keys
const (
	EnvDataDir           = "STUDYNOTES_DATA_DIR"
	EnvStorage           = "STUDYNOTES_STORAGE"
	EnvExportDir         = "STUDYNOTES_EXPORT_DIR"
	EnvNotifications     = "STUDYNOTES_NOTIFICATIONS"
	EnvPollInterval      = "STUDYNOTES_POLL_INTERVAL"
	EnvInitialDelay      = "STUDYNOTES_INITIAL_DELAY"
	EnvNotificationStart = "NOTIFICATION_START_HOUR"
	EnvNotificationEnd   = "NOTIFICATION_END_HOUR"
	EnvTelegramToken     = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID    = "TELEGRAM_CHAT_ID"
	EnvLogLevel          = "STUDYNOTES_LOG_LEVEL"
)

// Config represents the resolved settings.
type Config struct {
	DataDir   string
	Storage   string
	ExportDir string // empty means the desktop

	Notifications         bool
	PollInterval          time.Duration
	InitialDelay          time.Duration
	NotificationStartHour int
	NotificationEndHour   int

	TelegramToken  string
	TelegramChatID int64

	LogLevel string // empty means the command's default
}

// AppDir returns %APPDATA%\StudyNotes on Windows and ~/StudyNotes
// elsewhere.
func AppDir() (string, error) {
	base := ""
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		base = home
	}
	return filepath.Join(base, AppDirName), nil
}

// Default returns the built-in settings.
func Default() *Config {
	dir, err := AppDir()
	if err != nil {
		dir = AppDirName
	}
	return &Config{
		DataDir:               dir,
		Storage:               storage.KindJSON,
		Notifications:         true,
		PollInterval:          scheduler.DefaultInterval,
		InitialDelay:          scheduler.DefaultInitialDelay,
		NotificationStartHour: scheduler.DefaultNotificationStartHour,
		NotificationEndHour:   scheduler.DefaultNotificationEndHour,
	}
}

// Load reads ".env" from the working directory and config.yaml from
// the data directory.
func Load() (*Config, error) {
	return LoadFrom(".env", "")
}

// LoadFrom is Load with explicit file locations. An empty yamlFile
// means config.yaml inside the resolved data directory. Missing files
// are skipped.
func LoadFrom(envFile, yamlFile string) (*Config, error) {
	dotenv, err := readDotenv(envFile)
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if v := os.Getenv(key); v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	cfg := Default()
	if v, ok := lookup(EnvDataDir); ok && strings.TrimSpace(v) != "" {
		cfg.DataDir = strings.TrimSpace(v)
	}

	if yamlFile == "" {
		yamlFile = filepath.Join(cfg.DataDir, "config.yaml")
	}
	file, err := readYAML(yamlFile)
	if err != nil {
		return nil, err
	}

	cfg.apply(func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := file[yamlKey(key)]
		return v, ok
	})
	return cfg, nil
}

// apply overrides every setting found by get. Values that do not parse
// leave the current setting in place.
func (c *Config) apply(get func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := get(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(EnvExportDir, &c.ExportDir)
	str(EnvTelegramToken, &c.TelegramToken)
	str(EnvLogLevel, &c.LogLevel)

	if v, ok := get(EnvStorage); ok {
		switch kind := strings.ToLower(strings.TrimSpace(v)); kind {
		case storage.KindJSON, storage.KindSQLite:
			c.Storage = kind
		}
	}

	if v, ok := get(EnvNotifications); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Notifications = b
		}
	}

	duration := func(key string, dst *time.Duration, allowZero bool) {
		v, ok := get(key)
		if !ok {
			return
		}
		d, err := parseDuration(v)
		if err != nil || d < 0 || (d == 0 && !allowZero) {
			return
		}
		*dst = d
	}
	duration(EnvPollInterval, &c.PollInterval, false)
	duration(EnvInitialDelay, &c.InitialDelay, true)

	hour := func(key string, dst *int) {
		if v, ok := get(key); ok {
			if h, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && h >= 0 && h <= 23 {
				*dst = h
			}
		}
	}
	hour(EnvNotificationStart, &c.NotificationStartHour)
	hour(EnvNotificationEnd, &c.NotificationEndHour)

	if v, ok := get(EnvTelegramChatID); ok {
		if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			c.TelegramChatID = id
		}
	}
}

// Poller returns the scheduler settings.
func (c *Config) Poller() scheduler.Config {
	return scheduler.Config{
		Enabled:      c.Notifications,
		Interval:     c.PollInterval,
		InitialDelay: c.InitialDelay,
		StartHour:    c.NotificationStartHour,
		EndHour:      c.NotificationEndHour,
	}
}

// TelegramEnabled reports whether both the bot token and chat are set.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// parseDuration accepts Go durations ("90s") and bare seconds ("90").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// yamlKey maps an environment key to its config.yaml key, e.g.
// STUDYNOTES_POLL_INTERVAL to poll_interval.
func yamlKey(envKey string) string {
	return strings.ToLower(strings.TrimPrefix(envKey, "STUDYNOTES_"))
}

func readDotenv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}

func readYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v != nil {
			values[strings.ToLower(k)] = fmt.Sprint(v)
		}
	}
	return values, nil
}
