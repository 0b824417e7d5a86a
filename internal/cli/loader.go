package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// FileConfig is the optional yaml config file. Flags always win over it.
type FileConfig struct {
	Database   string `yaml:"db"`
	DateFormat string `yaml:"date_format"`
	Seconds    bool   `yaml:"seconds"`
}

// defaultConfigPath returns <user config dir>/uptally/config.yaml, or ""
// when the config dir cannot be resolved.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "uptally", "config.yaml")
}

// loadConfigFile parses the yaml config at path. A missing file is an
// error only when the path was requested explicitly.
func loadConfigFile(path string, explicit bool) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig folds the config file into options for every flag the user
// did not set on the command line.
func applyConfig(cmd *cobra.Command, opts *RootOptions) error {
	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return nil
		}
	}

	cfg, err := loadConfigFile(path, explicit)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}

	flags := cmd.Flags()
	if cfg.Database != "" && !flags.Changed("db") {
		opts.Database = cfg.Database
	}
	if cfg.DateFormat != "" && !flags.Changed("date-format") {
		opts.DateFormat = cfg.DateFormat
	}
	if cfg.Seconds && !flags.Changed("seconds") {
		opts.Seconds = true
	}
	return nil
}
