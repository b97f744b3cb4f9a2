package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/termstack/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
// A missing file is returned unwrapped so callers can test os.IsNotExist.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "reading config file").
			WithContext("path", path)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").
			WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").
			WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Strings override when non-empty;
// numbers override only when present in the file.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.UI.FocusKey != "" {
		base.UI.FocusKey = override.UI.FocusKey
	}
	if override.UI.ConfirmKey != "" {
		base.UI.ConfirmKey = override.UI.ConfirmKey
	}
	if override.UI.FocusPolicy != "" {
		base.UI.FocusPolicy = override.UI.FocusPolicy
	}
	if override.UI.Layout != "" {
		base.UI.Layout = override.UI.Layout
	}

	if fieldSet(raw, "logging", "level") {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Path != "" {
		base.Logging.Path = override.Logging.Path
	}
}

func fieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}
