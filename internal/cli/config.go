package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/curation/internal/logging"
	"github.com/mesh-intelligence/curation/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend          = "backend"
	cfgKeyDataDir          = "data_dir"
	cfgKeyLogLevel         = "log_level"
	cfgKeyStrictReferences = "strict_references"
	cfgKeyFocusRules       = "focus_rules"
)

// settings is the content of config.yaml.
type settings struct {
	Backend          string `yaml:"backend"`
	DataDir          string `yaml:"data_dir,omitempty"`
	LogLevel         string `yaml:"log_level"`
	StrictReferences bool   `yaml:"strict_references"`
	FocusRules       bool   `yaml:"focus_rules"`
}

// defaultSettings returns the values written to a new config.yaml.
func defaultSettings() settings {
	return settings{
		Backend:  types.BackendSQLite,
		LogLevel: logging.DefaultLevel,
	}
}

// loadSettings reads config.yaml from configDir using Viper. A missing
// directory or file yields the defaults.
func loadSettings(configDir string) (settings, error) {
	def := defaultSettings()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyStrictReferences, def.StrictReferences)
	v.SetDefault(cfgKeyFocusRules, def.FocusRules)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	return settings{
		Backend:          v.GetString(cfgKeyBackend),
		DataDir:          v.GetString(cfgKeyDataDir),
		LogLevel:         v.GetString(cfgKeyLogLevel),
		StrictReferences: v.GetBool(cfgKeyStrictReferences),
		FocusRules:       v.GetBool(cfgKeyFocusRules),
	}, nil
}

// writeConfigIfMissing creates configDir and a config.yaml holding st if the
// file does not exist. It reports whether a file was written.
func writeConfigIfMissing(configDir string, st settings) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&st)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# curate configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	log, err := logging.New(level, w)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgKeyLogLevel, err)
	}
	return log, nil
}
