// Package config loads termstack settings from YAML files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odvcencio/termstack/pkg/errors"
	"github.com/odvcencio/termstack/pkg/logging"
	"github.com/odvcencio/termstack/pkg/ui/layout"
	"github.com/odvcencio/termstack/pkg/ui/terminal"
)

// Config holds all settings.
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// UIConfig configures key handling and layout.
type UIConfig struct {
	// FocusKey advances focus; it is shared by the display and its layouts.
	FocusKey string `yaml:"focus_key"`
	// ConfirmKey ends input loops.
	ConfirmKey string `yaml:"confirm_key"`
	// FocusPolicy is "step" or "scan".
	FocusPolicy string `yaml:"focus_policy"`
	// Layout is the root orientation: "vertical" or "horizontal".
	Layout string `yaml:"layout"`
}

// LoggingConfig configures the diagnostic log.
type LoggingConfig struct {
	Level int    `yaml:"level"`
	Path  string `yaml:"path"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			FocusKey:    "Tab",
			ConfirmKey:  "Enter",
			FocusPolicy: "step",
			Layout:      "vertical",
		},
		Logging: LoggingConfig{
			Level: logging.LevelOff,
			Path:  logging.DefaultPath,
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, ~/.termstack/config.yaml, ./.termstack/config.yaml, environment.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".termstack", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, wrapLoad(err, "loading user config")
		}
	}

	projectConfigPath := filepath.Join(".", ".termstack", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, wrapLoad(err, "loading project config")
	}

	applyEnvOverrides(cfg, configEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	configEnv := loadConfigEnvVars()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, wrapLoad(err, "loading config").WithContext("path", path)
	}

	applyEnvOverrides(cfg, configEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// wrapLoad keeps the code of a structured error and tags anything else as a
// load failure.
func wrapLoad(err error, msg string) *errors.Error {
	code := errors.GetCode(err)
	if code == errors.ErrCodeInternal {
		code = errors.ErrCodeConfigLoad
	}
	return errors.Wrap(err, code, msg)
}

// applyEnvOverrides applies TERMSTACK_* variables. Values from the process
// environment win over those from ~/.termstack/config.env.
func applyEnvOverrides(cfg *Config, configEnv map[string]string) {
	if v := getenv("TERMSTACK_FOCUS_KEY", configEnv); v != "" {
		cfg.UI.FocusKey = v
	}
	if v := getenv("TERMSTACK_CONFIRM_KEY", configEnv); v != "" {
		cfg.UI.ConfirmKey = v
	}
	if v := getenv("TERMSTACK_FOCUS_POLICY", configEnv); v != "" {
		cfg.UI.FocusPolicy = v
	}
	if v := getenv("TERMSTACK_LAYOUT", configEnv); v != "" {
		cfg.UI.Layout = v
	}
	if v, ok := envInt("TERMSTACK_LOG_LEVEL", configEnv); ok {
		cfg.Logging.Level = v
	}
	if v := getenv("TERMSTACK_LOG_PATH", configEnv); v != "" {
		cfg.Logging.Path = v
	}
}

func getenv(key string, configEnv map[string]string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(configEnv[key])
}

func envInt(key string, configEnv map[string]string) (int, bool) {
	val := getenv(key, configEnv)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks that every setting resolves.
func (c *Config) Validate() error {
	invalid := func(field, msg string, value any) error {
		return errors.New(errors.ErrCodeConfigInvalid, msg).
			WithContext("field", field).WithContext("value", value)
	}

	focus, err := terminal.ParseKey(c.UI.FocusKey)
	if err != nil {
		return invalid("ui.focus_key", err.Error(), c.UI.FocusKey)
	}
	confirm, err := terminal.ParseKey(c.UI.ConfirmKey)
	if err != nil {
		return invalid("ui.confirm_key", err.Error(), c.UI.ConfirmKey)
	}
	if focus == terminal.KeyRune || confirm == terminal.KeyRune {
		return invalid("ui", "focus and confirm keys must be special keys", c.UI.FocusKey+"/"+c.UI.ConfirmKey)
	}
	if focus == confirm {
		return invalid("ui.confirm_key", "confirm key must differ from focus key", c.UI.ConfirmKey)
	}
	if _, err := layout.ParseFocusPolicy(c.UI.FocusPolicy); err != nil {
		return invalid("ui.focus_policy", "focus policy must be step or scan", c.UI.FocusPolicy)
	}
	if _, err := parseOrientation(c.UI.Layout); err != nil {
		return invalid("ui.layout", "layout must be vertical or horizontal", c.UI.Layout)
	}
	if c.Logging.Level < logging.LevelOff {
		return invalid("logging.level", "log level must not be negative", c.Logging.Level)
	}
	if c.Logging.Level > logging.LevelOff && strings.TrimSpace(c.Logging.Path) == "" {
		return invalid("logging.path", "log path required when logging is enabled", c.Logging.Path)
	}
	return nil
}

// FocusKey returns the resolved focus key, or Tab when it does not resolve.
func (c *Config) FocusKey() terminal.Key {
	if k, err := terminal.ParseKey(c.UI.FocusKey); err == nil {
		return k
	}
	return layout.DefaultFocusKey
}

// ConfirmKey returns the resolved confirm key, or Enter when it does not resolve.
func (c *Config) ConfirmKey() terminal.Key {
	if k, err := terminal.ParseKey(c.UI.ConfirmKey); err == nil {
		return k
	}
	return terminal.KeyEnter
}

// FocusPolicy returns the resolved focus policy.
func (c *Config) FocusPolicy() layout.FocusPolicy {
	p, _ := layout.ParseFocusPolicy(c.UI.FocusPolicy)
	return p
}

// Orientation returns the resolved root layout orientation.
func (c *Config) Orientation() layout.Orientation {
	o, _ := parseOrientation(c.UI.Layout)
	return o
}

// LogPath returns the log path with a leading ~ expanded.
func (c *Config) LogPath() string {
	return expandHomeDir(c.Logging.Path)
}

func parseOrientation(s string) (layout.Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "":
		return layout.Vertical, nil
	case "horizontal":
		return layout.Horizontal, nil
	default:
		return layout.Vertical, errors.Newf(errors.ErrCodeConfigInvalid, "unknown layout %q", s)
	}
}

func loadConfigEnvVars() map[string]string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(home, ".termstack", "config.env"))
	if err != nil {
		return nil
	}
	return parseEnvFile(string(data))
}

func parseEnvFile(data string) map[string]string {
	vars := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	return vars
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
