// Package config loads propmerge defaults.
//
// Settings are resolved with viper in this order: command-line flags,
// PROPMERGE_* environment variables, the config file, then built-in defaults.
// The config file is optional. When no explicit file is given, propmerge.yaml
// (or any extension viper understands) is looked up in the working directory
// and then in the user config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyAtomic     = "atomic"
	KeyCreateDirs = "create_dirs"
	KeyFileMode   = "file_mode"
	KeyLogLevel   = "log_level"
)

// EnvPrefix is the prefix for environment overrides, e.g. PROPMERGE_ATOMIC.
const EnvPrefix = "PROPMERGE"

// flagNames maps config keys to the CLI flags that may override them.
var flagNames = map[string]string{
	KeyAtomic:     "atomic",
	KeyCreateDirs: "create-dirs",
	KeyFileMode:   "mode",
	KeyLogLevel:   "log-level",
}

// Config holds resolved settings for a propmerge invocation.
type Config struct {
	// Atomic writes the destination through a temp file + rename.
	Atomic bool `json:"atomic"`

	// CreateDirs creates missing parent directories of the destination.
	CreateDirs bool `json:"createDirs"`

	// FileMode is the permission used when creating the destination.
	FileMode os.FileMode `json:"fileMode"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Atomic:     false,
		CreateDirs: false,
		FileMode:   0644,
		LogLevel:   "warn",
	}
}

// Dir returns the user config directory for propmerge.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "propmerge"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "propmerge"), nil
}

// BindFlags binds the flags present in flags to their config keys.
// Flags the command does not define are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagNames {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load resolves a Config from v. file, when set, must exist.
func Load(v *viper.Viper, file string) (Config, error) {
	def := Default()
	v.SetDefault(KeyAtomic, def.Atomic)
	v.SetDefault(KeyCreateDirs, def.CreateDirs)
	v.SetDefault(KeyFileMode, FormatFileMode(def.FileMode))
	v.SetDefault(KeyLogLevel, def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("propmerge")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	mode, err := ParseFileMode(v.GetString(KeyFileMode))
	if err != nil {
		return Config{}, err
	}

	level := strings.ToLower(v.GetString(KeyLogLevel))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", level)
	}

	return Config{
		Atomic:     v.GetBool(KeyAtomic),
		CreateDirs: v.GetBool(KeyCreateDirs),
		FileMode:   mode,
		LogLevel:   level,
	}, nil
}

// ParseFileMode parses an octal permission string such as "0644" or "600".
func ParseFileMode(s string) (os.FileMode, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	if n > 0777 {
		return 0, fmt.Errorf("invalid file mode %q: only permission bits are allowed", s)
	}
	return os.FileMode(n), nil
}

// FormatFileMode renders mode as a four digit octal string.
func FormatFileMode(mode os.FileMode) string {
	return fmt.Sprintf("%04o", uint32(mode.Perm()))
}
