package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ITAX_LOGGING_LEVEL
const EnvPrefix = "ITAX"

// Settings are the application settings (not taxpayer data)
type Settings struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`             // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`           // json, console
	OutputFile string `mapstructure:"output_file" yaml:"output_file,omitempty"` // optional file output
}

// OutputConfig holds report rendering options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // any formatter name or alias
	Locale string `mapstructure:"locale" yaml:"locale,omitempty"` // BCP 47, e.g. en-IN
}

// ServerConfig holds HTTP API options
type ServerConfig struct {
	Address string `mapstructure:"address" yaml:"address,omitempty"`
}

// SetDefaults registers the default for every setting
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")
	v.SetDefault("output.format", "console")
	v.SetDefault("output.locale", "en-IN")
	v.SetDefault("server.address", ":8080")
}

// LoadSettings reads cfgFile, or config.yaml from $HOME/.config/itax and the working
// directory when cfgFile is empty. A missing default file is not an error.
func LoadSettings(v *viper.Viper, cfgFile string) (*Settings, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "itax"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate rejects unknown log levels and formats
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch strings.ToLower(s.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	return nil
}
