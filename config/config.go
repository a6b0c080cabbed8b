package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the FAQ tool.
type Config struct {
	KnowledgeBase KnowledgeBaseConfig `yaml:"knowledge_base"`
	Index         IndexConfig         `yaml:"index"`
	Retrieve      RetrieveConfig      `yaml:"retrieve"`
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// KnowledgeBaseConfig holds knowledge base source configuration.
type KnowledgeBaseConfig struct {
	Sources   []string `yaml:"sources"`   // Files or directories; empty = built-in seed rows
	Includes  []string `yaml:"includes"`  // Patterns matched inside source directories
	Excludes  []string `yaml:"excludes"`
	Delimiter string   `yaml:"delimiter"` // Single character; .tsv files always use tab
}

// IndexConfig holds tokenization and indexing configuration.
type IndexConfig struct {
	Tokenizer  string `yaml:"tokenizer"`  // "gse" or "bigram"
	Dictionary string `yaml:"dictionary"` // Embedded gse dictionary, e.g. "zh_t"
	UserDict   string `yaml:"user_dict"`
	Separator  string `yaml:"separator"`  // Joins question and answer into one document
	AutoIndex  bool   `yaml:"auto_index"` // Build the index at query time when stale
}

// RetrieveConfig holds query configuration.
type RetrieveConfig struct {
	TopK      int           `yaml:"top_k"`
	Threshold float64       `yaml:"threshold"`
	CacheSize int           `yaml:"cache_size"` // 0 disables the query cache
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// ServerConfig holds HTTP adapter configuration.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		KnowledgeBase: KnowledgeBaseConfig{
			Includes:  []string{"**/*.csv", "**/*.tsv", "**/*.yaml", "**/*.yml"},
			Excludes:  []string{"**/.git/**", "**/.faq/**"},
			Delimiter: ",",
		},
		Index: IndexConfig{
			Tokenizer: "gse",
			Separator: " ",
			AutoIndex: true,
		},
		Retrieve: RetrieveConfig{
			TopK:      2,
			Threshold: 0.3,
			CacheSize: 128,
			CacheTTL:  10 * time.Minute,
		},
		Server: ServerConfig{
			Addr:           ":8501",
			AllowedOrigins: []string{"*"},
			MaxUploadBytes: 10 << 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for faq.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "faq.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".faq", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from FAQ_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv("FAQ_TOP_K")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FAQ_TOP_K: %w", err)
		}
		c.Retrieve.TopK = n
	}
	if v := strings.TrimSpace(os.Getenv("FAQ_THRESHOLD")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FAQ_THRESHOLD: %w", err)
		}
		c.Retrieve.Threshold = f
	}
	if v := strings.TrimSpace(os.Getenv("FAQ_TOKENIZER")); v != "" {
		c.Index.Tokenizer = v
	}
	if v := strings.TrimSpace(os.Getenv("FAQ_KB")); v != "" {
		c.KnowledgeBase.Sources = strings.Split(v, string(os.PathListSeparator))
	}
	if v := strings.TrimSpace(os.Getenv("FAQ_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("FAQ_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// DelimiterRune returns the configured delimiter, ',' when unset.
func (c *Config) DelimiterRune() rune {
	d := []rune(c.KnowledgeBase.Delimiter)
	if len(d) == 0 {
		return ','
	}
	if c.KnowledgeBase.Delimiter == `\t` {
		return '\t'
	}
	return d[0]
}

// ConfigDir returns the path to the per-directory config folder.
func ConfigDir(dir string) string {
	return filepath.Join(dir, ".faq")
}

// EnsureConfigDir ensures the .faq directory exists.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(ConfigDir(dir), 0755)
}
