// Package config resolves runtime configuration. Sources are layered, each
// overriding the previous: built-in defaults, config.toml in the config
// directory, a .env file next to it, then the process environment. Command
// line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/soberly/internal/constants"
)

// Config holds settings that are about the installation rather than the
// user's tracked data. User preferences live in storage.
type Config struct {
	// DB is a SQLite path, a .json path or a PostgreSQL URL.
	DB string `toml:"db"`
	// DBConnection is a password-bearing PostgreSQL connection string taken
	// only from the environment, never from config.toml.
	DBConnection string `toml:"-"`
	Debug        bool   `toml:"debug"`
	LogLevel     string `toml:"log_level"`

	Reminder Reminder `toml:"reminder"`
}

// Reminder configures recurring reminder delivery.
type Reminder struct {
	Hour   int    `toml:"hour"`
	Minute int    `toml:"minute"`
	Icon   string `toml:"icon"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DB: constants.DefaultConfigPath,
		Reminder: Reminder{
			Hour: constants.DefaultReminderHour,
			Icon: constants.DefaultNotificationIcon,
		},
	}
}

// Source describes where configuration was read from, for `soberly doctor`.
type Source struct {
	ConfigFile string
	EnvFile    string
	// Unknown lists config.toml keys that were not recognized.
	Unknown []string
}

// Load resolves configuration from dir. getenv is usually os.Getenv.
// Missing files are not an error.
func Load(dir string, getenv func(string) string) (Config, Source, error) {
	cfg := Default()
	src := Source{}

	cfgPath := filepath.Join(dir, constants.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		md, err := toml.DecodeFile(cfgPath, &cfg)
		if err != nil {
			return Config{}, src, fmt.Errorf("failed to parse %s: %w", cfgPath, err)
		}
		src.ConfigFile = cfgPath
		for _, key := range md.Undecoded() {
			src.Unknown = append(src.Unknown, key.String())
		}
	}

	env := map[string]string{}
	envPath := filepath.Join(dir, constants.EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		dotenv, err := godotenv.Read(envPath)
		if err != nil {
			return Config{}, src, fmt.Errorf("failed to parse %s: %w", envPath, err)
		}
		src.EnvFile = envPath
		env = dotenv
	}

	// Process environment wins over .env.
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return env[key]
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, src, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, src, err
	}
	return cfg, src, nil
}

func (c *Config) applyEnv(lookup func(string) string) error {
	if v := lookup(constants.EnvDBPath); v != "" {
		c.DB = v
	}
	if v := lookup(constants.EnvDBConnection); v != "" {
		c.DBConnection = v
	}
	if v := lookup(constants.EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.EnvDebug, err)
		}
		c.Debug = debug
	}
	if v := lookup(constants.EnvReminderHour); v != "" {
		hour, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.EnvReminderHour, err)
		}
		c.Reminder.Hour = hour
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Reminder.Hour < 0 || c.Reminder.Hour > 23 {
		errs = append(errs, fmt.Errorf("reminder.hour must be between 0 and 23, got %d", c.Reminder.Hour))
	}
	if c.Reminder.Minute < 0 || c.Reminder.Minute > 59 {
		errs = append(errs, fmt.Errorf("reminder.minute must be between 0 and 59, got %d", c.Reminder.Minute))
	}
	if strings.TrimSpace(c.DB) == "" {
		errs = append(errs, errors.New("db must not be empty"))
	}
	return errors.Join(errs...)
}

// Dir returns the configuration directory with ~ expanded.
func Dir() (string, error) {
	return ExpandHome(constants.DefaultConfigDir)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

var openConfigFile = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
}

// Write saves cfg as config.toml in dir, creating the directory if needed.
func Write(dir string, cfg Config) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	path := filepath.Join(dir, constants.ConfigFileName)
	f, err := openConfigFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
