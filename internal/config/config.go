// Package config loads cardstore settings from a YAML file, the environment
// and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. CARDSTORE_DB_PATH.
const EnvPrefix = "CARDSTORE_"

// Config holds everything the command layer needs. DBPath replaces the
// per-installation storage location with an explicit value.
type Config struct {
	DBPath         string `koanf:"db_path" validate:"required"`
	LogLevel       string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string `koanf:"log_format" validate:"oneof=text json"`
	GitAuthorName  string `koanf:"git_author_name" validate:"required"`
	GitAuthorEmail string `koanf:"git_author_email" validate:"required,email"`
}

var validate = validator.New()

// DefaultDBPath returns the database location used when none is configured.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "cardstore", "cards.db")
}

// RegisterFlags adds the flags understood by Load to fs. Their defaults are
// the configuration defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML configuration file")
	fs.String("db_path", DefaultDBPath(), "Path to the SQLite database file")
	fs.String("log_level", "warn", "Log level: debug, info, warn or error")
	fs.String("log_format", "text", "Log format: text or json")
	fs.String("git_author_name", "cardstore", "Author name for committed exports")
	fs.String("git_author_email", "cardstore@localhost.localdomain", "Author email for committed exports")
}

// Load builds the configuration. Later sources override earlier ones: the
// YAML file named by --config, CARDSTORE_* variables (a .env file in the
// working directory fills in unset ones), then explicitly set flags. Flags
// left at their defaults only fill keys no other source set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := flags.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to read flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// EnsureDBDir creates the directory holding the database file.
func (c *Config) EnsureDBDir() error {
	if c.DBPath == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.DBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}
