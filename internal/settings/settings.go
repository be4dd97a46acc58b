package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dpui/internal/logging"
)

// EnvPrefix is prepended to every environment override (DPUI_TOOL, ...).
const EnvPrefix = "DPUI"

// Settings are the runtime knobs shared by the CLI and the HTTP server.
type Settings struct {
	Tool     string        `mapstructure:"tool"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Presets  string        `mapstructure:"presets"`
	Addr     string        `mapstructure:"addr"`
	LogLevel string        `mapstructure:"log_level"`
}

// flag names that differ from their settings key
var flagKeys = map[string]string{
	"tool":      "tool",
	"timeout":   "timeout",
	"presets":   "presets",
	"addr":      "addr",
	"log-level": "log_level",
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Tool:     "displayplacer",
		Timeout:  10 * time.Second,
		Presets:  DefaultPresetsPath(),
		Addr:     "127.0.0.1:7071",
		LogLevel: "warn",
	}
}

// Load layers defaults, the settings file, DPUI_* environment variables and
// any flags the user actually set, in that order. A missing settings file is
// not an error unless cfgFile names it explicitly.
func Load(cfgFile string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("tool", def.Tool)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("presets", def.Presets)
	v.SetDefault("addr", def.Addr)
	v.SetDefault("log_level", def.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("settings")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(cfgFile == "" && errors.Is(err, os.ErrNotExist)) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	} else {
		logging.Debugf("settings loaded from %s", v.ConfigFileUsed())
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return Normalize(s)
}

// Normalize rejects unusable values and expands a leading ~ in paths.
func Normalize(s Settings) (Settings, error) {
	if strings.TrimSpace(s.Tool) == "" {
		return s, fmt.Errorf("tool must not be empty")
	}
	if s.Timeout < 0 {
		return s, fmt.Errorf("timeout must be >= 0")
	}
	if s.Addr == "" {
		return s, fmt.Errorf("addr must not be empty")
	}
	if _, _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return s, err
	}
	if s.Presets == "" {
		s.Presets = DefaultPresetsPath()
	}
	s.Presets = expandHome(s.Presets)
	return s, nil
}

// SaveTo writes s as YAML to path (DefaultFile when empty) and returns the
// path written.
func SaveTo(s Settings, path string) (string, error) {
	if path == "" {
		path = DefaultFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	v := viper.New()
	v.Set("tool", s.Tool)
	v.Set("timeout", s.Timeout.String())
	v.Set("presets", s.Presets)
	v.Set("addr", s.Addr)
	v.Set("log_level", s.LogLevel)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
