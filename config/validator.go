package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	if err := c.validateIndex(); err != nil {
		return fmt.Errorf("index config error: %w", err)
	}
	if err := c.validateRetrieve(); err != nil {
		return fmt.Errorf("retrieve config error: %w", err)
	}
	if err := c.validateKnowledgeBase(); err != nil {
		return fmt.Errorf("knowledge_base config error: %w", err)
	}
	return nil
}

func (c *Config) validateIndex() error {
	switch strings.ToLower(c.Index.Tokenizer) {
	case "", "gse", "bigram":
	default:
		return fmt.Errorf("unsupported tokenizer: %s", c.Index.Tokenizer)
	}
	return nil
}

func (c *Config) validateRetrieve() error {
	if c.Retrieve.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.Retrieve.TopK)
	}
	if c.Retrieve.Threshold < 0 || c.Retrieve.Threshold > 1 {
		return fmt.Errorf("threshold must be within [0,1], got %g", c.Retrieve.Threshold)
	}
	if c.Retrieve.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.Retrieve.CacheSize)
	}
	return nil
}

func (c *Config) validateKnowledgeBase() error {
	d := c.KnowledgeBase.Delimiter
	if d != "" && d != `\t` && len([]rune(d)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", d)
	}
	return nil
}
