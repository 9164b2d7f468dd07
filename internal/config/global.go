package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/topiclens/config.yml.
type GlobalConfig struct {
	CorpusPath        string   `yaml:"corpus_path,omitempty"`        // Default repository when not inside one
	EmergingThreshold float64  `yaml:"emerging_threshold,omitempty"` // Default growth cutoff for emerging topics
	MinCooccurrence   int      `yaml:"min_cooccurrence,omitempty"`   // Default co-occurrence cutoff
	ExtraStopWords    []string `yaml:"extra_stop_words,omitempty"`   // Corpus-specific stop words for topic extraction
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "topiclens"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/topiclens/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.CorpusPath != "" {
		cfg.CorpusPath = ExpandPath(cfg.CorpusPath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetCorpusPath returns the configured default corpus path from global config.
func GetCorpusPath() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.CorpusPath
}

// GetExtraStopWords returns corpus-specific stop words from global config.
func GetExtraStopWords() []string {
	cfg, _ := LoadGlobalConfig()
	return cfg.ExtraStopWords
}

// ErrCorpusPathNotConfigured is returned when corpus_path is not set in config.
var ErrCorpusPathNotConfigured = errors.New("corpus_path not configured")

// ErrCorpusPathNotExist is returned when the configured corpus_path doesn't exist.
var ErrCorpusPathNotExist = errors.New("corpus_path does not exist")

// ValidateCorpusPath returns the corpus path from global config after validation.
// Returns error if not configured or if the path doesn't exist.
func ValidateCorpusPath() (string, error) {
	path := GetCorpusPath()
	if path == "" {
		return "", ErrCorpusPathNotConfigured
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrCorpusPathNotExist, path)
	}
	return path, nil
}

// HelpfulConfigMessage returns a helpful message when no repository is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No topiclens repository found.

Tip: run 'tl init' inside your data directory, or create %s to set a default corpus:
  mkdir -p %s
  echo 'corpus_path: /path/to/your/corpus' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
