// ABOUTME: Configuration management for newskitten with YAML config loading.
// ABOUTME: Handles embedding backend settings, storage defaults, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in defaults, overridable by config file and flags.
const (
	DefaultCollection          = "news_articles"
	DefaultPersistDir          = "./vector_db"
	DefaultOutputFile          = "categories.json"
	DefaultMinClusterSize      = 2
	DefaultSimilarityThreshold = 0.75
)

// Config stores newskitten configuration loaded from
// ~/.config/newskitten/config.yaml.
type Config struct {
	Collection string           `yaml:"collection"`
	Storage    StorageConfig    `yaml:"storage"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// StorageConfig holds the default vector store location.
type StorageConfig struct {
	PersistDir string `yaml:"persist_dir"`
}

// ClusteringConfig holds default clustering parameters.
type ClusteringConfig struct {
	MinClusterSize      int     `yaml:"min_cluster_size"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// EmbeddingConfig selects the embedding backend. Backend is "local" or
// "http"; URL and Model only apply to the http backend.
type EmbeddingConfig struct {
	Backend    string `yaml:"backend"`
	URL        string `yaml:"url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HasHTTPBackend returns true when a remote embedding service is configured.
func (c *Config) HasHTTPBackend() bool {
	return c.Embedding.Backend == "http" && c.Embedding.URL != ""
}

// GetCollection returns the configured collection name or the default.
func (c *Config) GetCollection() string {
	if c.Collection != "" {
		return c.Collection
	}
	return DefaultCollection
}

// GetPersistDir returns the configured persist directory or the default,
// with a leading ~ expanded.
func (c *Config) GetPersistDir() (string, error) {
	if c.Storage.PersistDir != "" {
		return ExpandPath(c.Storage.PersistDir)
	}
	return DefaultPersistDir, nil
}

// GetMinClusterSize returns the configured minimum cluster size or the default.
func (c *Config) GetMinClusterSize() int {
	if c.Clustering.MinClusterSize > 0 {
		return c.Clustering.MinClusterSize
	}
	return DefaultMinClusterSize
}

// GetSimilarityThreshold returns the configured similarity threshold or the default.
func (c *Config) GetSimilarityThreshold() float64 {
	if c.Clustering.SimilarityThreshold > 0 {
		return c.Clustering.SimilarityThreshold
	}
	return DefaultSimilarityThreshold
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "newskitten", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
