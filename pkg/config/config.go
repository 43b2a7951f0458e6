/*
Package config manages TOML config for vanityserve.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/vanityserve/internal/utils"
	"github.com/charmbracelet/log"
)

// MaxResultsCeiling caps any requested result count.
const MaxResultsCeiling = 64

// Config holds the entire config structure
type Config struct {
	Vanity  VanityConfig  `toml:"vanity"`
	Dict    DictConfig    `toml:"dict"`
	Store   StoreConfig   `toml:"store"`
	Kafka   KafkaConfig   `toml:"kafka"`
	Metrics MetricsConfig `toml:"metrics"`
	CLI     CliConfig     `toml:"cli"`
	Log     LogConfig     `toml:"log"`
}

// VanityConfig has search related options.
type VanityConfig struct {
	MaxResults   int `toml:"max_results"`
	MaxNumberLen int `toml:"max_number_len"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// StoreConfig selects and tunes the contacts store.
type StoreConfig struct {
	Backend       string   `toml:"backend"`
	MemorySize    int      `toml:"memory_size"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
	KeyPrefix     string   `toml:"key_prefix"`
}

// KafkaConfig holds the event worker options.
type KafkaConfig struct {
	Brokers      []string `toml:"brokers"`
	Group        string   `toml:"group"`
	EventsTopic  string   `toml:"events_topic"`
	ResultsTopic string   `toml:"results_topic"`
}

// MetricsConfig controls the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultRegion string `toml:"default_region"`
}

// LogConfig overrides the flag driven log level when Level is set.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string like "90s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText renders the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "vanityserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "vanityserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/vanityserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Vanity: VanityConfig{
			MaxResults:   5,
			MaxNumberLen: 15,
		},
		Dict: DictConfig{
			Path:   "",
			Format: "auto",
		},
		Store: StoreConfig{
			Backend:    "memory",
			MemorySize: 10000,
			RedisAddr:  "localhost:6379",
			RedisDB:    0,
			KeyPrefix:  "contacts:",
		},
		Kafka: KafkaConfig{
			Brokers:      []string{"localhost:9092"},
			Group:        "vanityserve",
			EventsTopic:  "contact-events",
			ResultsTopic: "vanity-results",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		CLI: CliConfig{
			DefaultRegion: "US",
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Normalize()
	return config, nil
}

// Normalize clamps values that would make the service misbehave back into range.
func (c *Config) Normalize() {
	defaults := DefaultConfig()
	if c.Vanity.MaxResults <= 0 {
		c.Vanity.MaxResults = defaults.Vanity.MaxResults
	}
	if c.Vanity.MaxResults > MaxResultsCeiling {
		log.Warnf("max_results %d is above the ceiling, using %d", c.Vanity.MaxResults, MaxResultsCeiling)
		c.Vanity.MaxResults = MaxResultsCeiling
	}
	if c.Vanity.MaxNumberLen <= 0 {
		c.Vanity.MaxNumberLen = defaults.Vanity.MaxNumberLen
	}
	if c.Store.MemorySize <= 0 {
		c.Store.MemorySize = defaults.Store.MemorySize
	}
	if c.CLI.DefaultRegion == "" {
		c.CLI.DefaultRegion = defaults.CLI.DefaultRegion
	}
}

// tryPartialParse recovers what it can from a TOML file that does not
// decode into Config, section by section.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "vanity"); ok {
		extractVanityConfig(section, &config.Vanity)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "store"); ok {
		extractStoreConfig(section, &config.Store)
	}
	if section, ok := utils.ExtractSection(tempConfig, "kafka"); ok {
		extractKafkaConfig(section, &config.Kafka)
	}
	if section, ok := utils.ExtractSection(tempConfig, "metrics"); ok {
		extractMetricsConfig(section, &config.Metrics)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractString(section, "default_region"); ok {
			config.CLI.DefaultRegion = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "log"); ok {
		if val, ok := utils.ExtractString(section, "level"); ok {
			config.Log.Level = val
		}
	}
	config.Normalize()
	return config, nil
}

func extractVanityConfig(data map[string]any, vanity *VanityConfig) {
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		vanity.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "max_number_len"); ok {
		vanity.MaxNumberLen = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		dict.Format = val
	}
}

func extractStoreConfig(data map[string]any, store *StoreConfig) {
	if val, ok := utils.ExtractString(data, "backend"); ok {
		store.Backend = val
	}
	if val, ok := utils.ExtractInt64(data, "memory_size"); ok {
		store.MemorySize = val
	}
	if val, ok := utils.ExtractString(data, "redis_addr"); ok {
		store.RedisAddr = val
	}
	if val, ok := utils.ExtractString(data, "redis_password"); ok {
		store.RedisPassword = val
	}
	if val, ok := utils.ExtractInt64(data, "redis_db"); ok {
		store.RedisDB = val
	}
	if val, ok := utils.ExtractDuration(data, "ttl"); ok {
		store.TTL = Duration{val}
	}
	if val, ok := utils.ExtractString(data, "key_prefix"); ok {
		store.KeyPrefix = val
	}
}

func extractKafkaConfig(data map[string]any, kafka *KafkaConfig) {
	if val, ok := utils.ExtractStrings(data, "brokers"); ok {
		kafka.Brokers = val
	}
	if val, ok := utils.ExtractString(data, "group"); ok {
		kafka.Group = val
	}
	if val, ok := utils.ExtractString(data, "events_topic"); ok {
		kafka.EventsTopic = val
	}
	if val, ok := utils.ExtractString(data, "results_topic"); ok {
		kafka.ResultsTopic = val
	}
}

func extractMetricsConfig(data map[string]any, metrics *MetricsConfig) {
	if val, ok := utils.ExtractBool(data, "enabled"); ok {
		metrics.Enabled = val
	}
	if val, ok := utils.ExtractInt64(data, "port"); ok {
		metrics.Port = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// ClampLimit resolves a requested result count: zero or less means the
// configured default, anything above MaxResultsCeiling is capped.
func (c *Config) ClampLimit(requested int) int {
	if requested <= 0 {
		return c.Vanity.MaxResults
	}
	return min(requested, MaxResultsCeiling)
}
