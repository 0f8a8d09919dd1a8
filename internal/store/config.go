package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds user defaults for new fields. Zero values mean "use the
// built-in default".
type Config struct {
	// Format is the field format, e.g. "MM/DD/YYYY hh:mm a" or "L LT".
	Format string `json:"format,omitempty"`
	// Locale is a BCP-47 tag; unknown tags fall back to the nearest
	// supported locale.
	Locale    string `json:"locale,omitempty"`
	Direction string `json:"direction,omitempty"`
	// Kind is "date", "time" or "datetime".
	Kind           string `json:"kind,omitempty"`
	MinutesStep    int    `json:"minutesStep,omitempty"`
	QueryTimeoutMs int    `json:"queryTimeoutMs,omitempty"`
	// DB is the value store path; "~" is expanded.
	DB string `json:"db,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the color profile id ("default", "mono", "neon").
	Profile string `json:"profile,omitempty"`
}

// ConfigKeys lists the keys `config set` accepts.
var ConfigKeys = []string{"db", "direction", "format", "kind", "locale", "minutesStep", "queryTimeoutMs", "tui.profile"}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.tempo).
	if v := strings.TrimSpace(os.Getenv("TEMPO_CONFIG_DIR")); v != "" {
		return homedir.Expand(v)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tempo"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func newViper(path string, env bool) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if !env {
		return v
	}
	v.SetEnvPrefix("TEMPO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range ConfigKeys {
		// AutomaticEnv only answers keys viper already knows about.
		_ = v.BindEnv(k)
	}
	return v
}

// LoadConfig reads config.json, then lets TEMPO_* environment variables
// override individual keys (TEMPO_FORMAT, TEMPO_TUI_PROFILE, ...). A missing
// file is an empty config.
func LoadConfig() (*Config, error) { return loadConfig(true) }

// LoadConfigFile reads config.json alone, for callers that write it back.
func LoadConfigFile() (*Config, error) { return loadConfig(false) }

func loadConfig(env bool) (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	v := newViper(path, env)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Format:         v.GetString("format"),
		Locale:         v.GetString("locale"),
		Direction:      v.GetString("direction"),
		Kind:           v.GetString("kind"),
		MinutesStep:    v.GetInt("minutesStep"),
		QueryTimeoutMs: v.GetInt("queryTimeoutMs"),
		DB:             v.GetString("db"),
	}
	if p := v.GetString("tui.profile"); p != "" {
		cfg.TUI = &TUIConfig{Profile: p}
	}
	return cfg, nil
}

// DBPath resolves the value store path: the configured path with "~"
// expanded, else values.sqlite in the config dir.
func (c *Config) DBPath() (string, error) {
	if c != nil && strings.TrimSpace(c.DB) != "" {
		return homedir.Expand(strings.TrimSpace(c.DB))
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "values.sqlite"), nil
}

// Set assigns one key by name. Numeric keys must parse as positive
// integers.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	positive := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		return n, nil
	}
	switch key {
	case "format":
		c.Format = value
	case "locale":
		c.Locale = value
	case "direction":
		if value != "" && value != "ltr" && value != "rtl" {
			return fmt.Errorf("direction must be ltr or rtl, got %q", value)
		}
		c.Direction = value
	case "kind":
		switch value {
		case "", "date", "time", "datetime":
		default:
			return fmt.Errorf("kind must be date, time or datetime, got %q", value)
		}
		c.Kind = value
	case "minutesStep":
		n, err := positive()
		if err != nil {
			return err
		}
		c.MinutesStep = n
	case "queryTimeoutMs":
		n, err := positive()
		if err != nil {
			return err
		}
		c.QueryTimeoutMs = n
	case "db":
		c.DB = value
	case "tui.profile":
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.Profile = value
	default:
		known := append([]string(nil), ConfigKeys...)
		sort.Strings(known)
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(known, ", "))
	}
	return nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// SaveConfig writes config.json atomically and keeps the previous file as
// config.json.bak.
func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
