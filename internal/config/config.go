package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes environment overrides, e.g. PROMPTGEN_STORE_PATH.
const EnvPrefix = "PROMPTGEN"

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v         *viper.Viper
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
// An empty cfgFile searches ./config.yaml, then homeDir/config.yaml.
func NewManager(cfgFile, homeDir string) (*Manager, error) {
	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile, homeDir); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile, homeDir string) error {
	for _, entry := range DefaultEntries() {
		cm.v.SetDefault(entry.Key, entry.Value)
	}

	// Environment variables with PROMPTGEN_ prefix, dots become underscores
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

	// Try to read config file (not required)
	if err := cm.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// File returns the config file in use, or "" when running on defaults.
func (cm *Manager) File() string {
	return cm.v.ConfigFileUsed()
}

// Lookup returns the effective value of a single key. Keys without a
// default are rejected with ErrInvalidKey or ErrNoDefault.
func (cm *Manager) Lookup(key string) (Setting, error) {
	def, err := GetDefault(key)
	if err != nil {
		return Setting{}, err
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return Setting{
		Key:         key,
		Value:       cm.v.Get(key),
		Default:     def.Value,
		Description: def.Description,
	}, nil
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
// An edit that fails to parse or validate keeps the previous config.
func (cm *Manager) WatchConfig() {
	if cm.File() == "" {
		return
	}
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Promptgen configuration
# Every key can be overridden from the environment, e.g. PROMPTGEN_STORE_PATH.
# store.path supports ${ENV_VAR} syntax; leave it empty to keep prompts in this directory.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
