// Package config manages TOML configuration for the compiler and query
// binaries.
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/dvaumoron/vaguesearch/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Compile CompileConfig `toml:"compile"`
}

// SearchConfig holds query-side options.
type SearchConfig struct {
	MaxDistance     int  `toml:"max_distance"`
	DefaultDistance int  `toml:"default_distance"`
	UseMmap         bool `toml:"use_mmap"`
}

// CompileConfig holds compiler-side options, including the range-node
// consolidation heuristic's thresholds.
type CompileConfig struct {
	MinRangeRun     int     `toml:"min_range_run"`
	MinRangeDensity float64 `toml:"min_range_density"`
	SkipMalformed   bool    `toml:"skip_malformed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxDistance:     3,
			DefaultDistance: 1,
			UseMmap:         true,
		},
		Compile: CompileConfig{
			MinRangeRun:     3,
			MinRangeDensity: 0.5,
			SkipMalformed:   true,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/vaguesearch
// 2. ~/Library/Application Support/vaguesearch (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "vaguesearch")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "vaguesearch")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadWithPriority loads config with priority:
// 1. Custom path from a --config flag
// 2. Default path: [UserConfigDir]/vaguesearch/config.toml
// 3. Builtin defaults
func LoadWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := Load(customConfigPath)
			if err == nil {
				log.Debugf("loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
			log.Warnf("failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := Init(defaultPath)
	if err != nil {
		log.Warnf("failed to load/create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// Init loads config from file or creates a default one if missing.
func Init(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := Save(cfg, configPath); err != nil {
			log.Warnf("failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("created default config file at: %s", configPath)
		return cfg, nil
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Warnf("failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// Load loads a Config from a TOML file, falling back to a partial recovery
// (section by section) if the file cannot be decoded wholesale.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	return cfg, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(data, "search"); ok {
		extractSearchConfig(section, &cfg.Search)
	}
	if section, ok := utils.ExtractSection(data, "compile"); ok {
		extractCompileConfig(section, &cfg.Compile)
	}
	return cfg, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "max_distance"); ok {
		search.MaxDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "default_distance"); ok {
		search.DefaultDistance = val
	}
	if val, ok := utils.ExtractBool(data, "use_mmap"); ok {
		search.UseMmap = val
	}
}

func extractCompileConfig(data map[string]any, compile *CompileConfig) {
	if val, ok := utils.ExtractInt64(data, "min_range_run"); ok {
		compile.MinRangeRun = val
	}
	if val, ok := utils.ExtractFloat64(data, "min_range_density"); ok {
		compile.MinRangeDensity = val
	}
	if val, ok := utils.ExtractBool(data, "skip_malformed"); ok {
		compile.SkipMalformed = val
	}
}

// Save saves cfg to a TOML file.
func Save(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// GetActiveConfigPath returns the absolute path of a loaded config file,
// falling back to the default path when configPath is empty.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
