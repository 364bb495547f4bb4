// Package config - credvault application configuration
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm/logger"
)

// Config credvault application configuration, loaded from ~/.credvault/config.yaml
type Config struct {
	// DBFile SQLite file holding the credentials
	DBFile string `yaml:"db_file" validate:"required"`
	// KVFile YAML file holding the PIN settings
	KVFile string `yaml:"kv_file" validate:"required"`
	// LogLevel application log level
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error fatal"`
	// SQLLogLevel GORM SQL log level
	SQLLogLevel string `yaml:"sql_log_level" validate:"oneof=silent error warn info"`
	// OperationTimeout limit on each storage operation. Zero disables it.
	OperationTimeout time.Duration `yaml:"operation_timeout" validate:"gte=0"`
}

// DefaultDir the default config directory: ~/.credvault
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".credvault"
	}
	return filepath.Join(home, ".credvault")
}

// DefaultPath the default config file path: ~/.credvault/config.yaml
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Default the configuration used when no config file exists
func Default() Config {
	dir := DefaultDir()
	return Config{
		DBFile:           filepath.Join(dir, "credentials.db"),
		KVFile:           filepath.Join(dir, "settings.yaml"),
		LogLevel:         "warn",
		SQLLogLevel:      "error",
		OperationTimeout: time.Second * 10,
	}
}

/*
Load read a YAML config file. Fields absent from the file keep their default. A missing
file yields the default config.

	@param path string - config file path
	@returns the validated config
*/
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read config %s [%w]", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s is not valid YAML [%w]", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s [%w]", path, err)
	}
	return cfg, nil
}

// Validate check the config field values
func (c Config) Validate() error {
	return validator.New().Struct(&c)
}

// GORMLogLevel the GORM log level matching SQLLogLevel
func (c Config) GORMLogLevel() logger.LogLevel {
	switch c.SQLLogLevel {
	case "silent":
		return logger.Silent
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Error
	}
}

// ApplyLogLevel set the application log level
func (c Config) ApplyLogLevel() {
	log.SetLevel(log.MustParseLevel(c.LogLevel))
}
