package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`
	IntervalWidth int    `mapstructure:"interval_width" yaml:"interval_width"`
	Workers       int    `mapstructure:"workers" yaml:"workers"`
	// Delimiter overrides the CSV delimiter for every input table; empty picks by extension.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Default locations used when the matching flag is not given.
	SQLitePath  string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MethodsPath string `mapstructure:"methods_path" yaml:"methods_path"`
	SpatialPath string `mapstructure:"spatial_path" yaml:"spatial_path"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"output_dir", "interval_width", "workers", "delimiter",
	"sqlite_path", "methods_path", "spatial_path", "log_level", "log_format",
}

const dirName = ".drillchem"

// DefaultPath returns ~/.drillchem/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.drillchem/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DRILLCHEM")
	v.AutomaticEnv()

	v.SetDefault("output_dir", ".")
	v.SetDefault("interval_width", 10)
	v.SetDefault("workers", 4)
	v.SetDefault("delimiter", "")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("methods_path", "")
	v.SetDefault("spatial_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
