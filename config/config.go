// Package config loads statboard settings from a dotenv file and the
// environment. Environment variables override the file; defaults fill
// whatever neither sets.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultEnvFile is read when no explicit file is given.
const DefaultEnvFile = ".env"

// Config holds all configuration of the application, read from a dotenv
// file or environment variables.
type Config struct {
	//Viper uses the mapstructure package under the hood for unmarshaling values.
	TableOptions string        `mapstructure:"TABLE_OPTIONS"`
	MainTable    string        `mapstructure:"MAIN_TABLE"`
	Driver       string        `mapstructure:"DB_DRIVER"`
	DSN          string        `mapstructure:"DB_DSN"`
	CacheTTL     time.Duration `mapstructure:"QUERY_CACHE_TTL"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`

	// Source is the dotenv file that was read, empty if none was found.
	Source string `mapstructure:"-"`
}

// Load reads path (DefaultEnvFile when empty), then the environment.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultEnvFile
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// AutomaticEnv() overrides values read from the file with the
	// corresponding environment variables if they exist.
	v.AutomaticEnv()

	source := path
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		source = ""
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Source = source
	return cfg, nil
}

// Tables returns the table allow-list: TABLE_OPTIONS split on commas,
// entries trimmed and empty entries dropped.
func (c *Config) Tables() []string {
	var out []string
	for _, t := range strings.Split(c.TableOptions, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// setDefaults registers every key so AutomaticEnv values reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("TABLE_OPTIONS", "")
	v.SetDefault("MAIN_TABLE", "")
	v.SetDefault("DB_DRIVER", "sqlserver")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("QUERY_CACHE_TTL", "0s")
	v.SetDefault("LOG_LEVEL", "info")
}
