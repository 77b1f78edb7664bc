package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for environment overrides, e.g. TOCSPLIT_LOG_LEVEL.
const EnvPrefix = "TOCSPLIT"

// Manager loads configuration from defaults, a config file, the
// environment, and command-line flags (in increasing precedence).
type Manager struct {
	v *viper.Viper
}

// NewManager creates a config manager. cfgFile may be empty, in which
// case config.yaml is looked up in the working directory and homeDir.
func NewManager(cfgFile, homeDir string) (*Manager, error) {
	cm := &Manager{v: viper.New()}
	if err := cm.initViper(cfgFile, homeDir); err != nil {
		return nil, err
	}
	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile, homeDir string) error {
	for _, entry := range DefaultEntries() {
		cm.v.SetDefault(entry.Key, entry.Value)
	}

	// Environment variables with TOCSPLIT_ prefix
	cm.v.SetEnvPrefix(EnvPrefix)
	cm.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cm.v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		cm.v.SetConfigFile(cfgFile)
	} else {
		cm.v.SetConfigName("config")
		cm.v.SetConfigType("yaml")
		cm.v.AddConfigPath(".")
		if homeDir != "" {
			cm.v.AddConfigPath(homeDir)
		}
	}

	// Try to read config file (not required unless given explicitly)
	if err := cm.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// BindFlags binds every flag named in DefaultEntries that exists in flags.
// A flag only overrides the file and environment when it was set.
func (cm *Manager) BindFlags(flags *pflag.FlagSet) error {
	for _, entry := range DefaultEntries() {
		if entry.Flag == "" {
			continue
		}
		f := flags.Lookup(entry.Flag)
		if f == nil {
			continue
		}
		if err := cm.v.BindPFlag(entry.Key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", entry.Flag, err)
		}
	}
	return nil
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func (cm *Manager) ConfigFileUsed() string {
	return cm.v.ConfigFileUsed()
}

// Setting is the effective value of one configuration key.
type Setting struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Default     any    `json:"default" yaml:"default"`
	Description string `json:"description" yaml:"description"`
}

// Settings reports the effective value of the given keys, or of every
// known key when none are given. Unknown keys are an error.
func (cm *Manager) Settings(keys ...string) ([]Setting, error) {
	entries := DefaultEntries()
	if len(keys) > 0 {
		entries = make([]Entry, 0, len(keys))
		for _, key := range keys {
			entry := GetDefault(key)
			if entry == nil {
				return nil, fmt.Errorf("unknown config key %q", key)
			}
			entries = append(entries, *entry)
		}
	}

	settings := make([]Setting, 0, len(entries))
	for _, e := range entries {
		settings = append(settings, Setting{
			Key:         e.Key,
			Value:       cm.v.Get(e.Key),
			Default:     e.Value,
			Description: e.Description,
		})
	}
	return settings, nil
}

// Load parses the current viper state into a validated Config.
func (cm *Manager) Load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# tocsplit configuration
# Every key can be overridden with a TOCSPLIT_ environment variable
# (e.g. TOCSPLIT_LOG_LEVEL=debug) or the matching command-line flag.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
