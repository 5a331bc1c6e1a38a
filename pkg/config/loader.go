package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/navshell/pkg/model"
)

// EnvPrefix prefixes environment overrides: NAVSHELL_PRESET -> preset.
const EnvPrefix = "NAVSHELL_"

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"state": "state_path",
}

// skipFlags are flags that are not config keys.
var skipFlags = map[string]bool{
	"config": true,
	"help":   true,
}

// FindFile returns the config file to use: explicit if set, otherwise
// navshell.yaml or navshell.yml in dir. It returns "" when none exists.
func FindFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{DefaultFile, "navshell.yml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load reads configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags that were explicitly set take part.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"preset":      DefaultPreset,
		"title":       DefaultTitle,
		"cell_pixels": model.DefaultCellPixels,
		"row_pixels":  model.DefaultRowPixels,
		"state_path":  DefaultStatePath(),
		"verbose":     false,
		"watch":       false,
		"theme":       DefaultTheme,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	cwd, _ := os.Getwd()
	used := FindFile(cfgFile, cwd)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: NAVSHELL_CELL_PIXELS -> cell_pixels
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || skipFlags[f.Name] {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if used != "" {
		cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, filepath.Dir(used))
		cfg.LogFile = resolvePathRelativeTo(cfg.LogFile, filepath.Dir(used))
	}
	return &cfg, nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Write saves c as YAML at path, creating parent directories.
func Write(path string, c *Config) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
