package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives batch processing and summarization defaults.
type Config struct {
	Channels       []string        `yaml:"channels"`
	MaxVideos      int             `yaml:"max_videos"`
	Concurrency    int             `yaml:"concurrency"`
	Language       string          `yaml:"language"`
	TranscriptsDir string          `yaml:"transcripts_dir"`
	SummariesDir   string          `yaml:"summaries_dir"`
	Summarize      SummarizeConfig `yaml:"summarize"`
}

type SummarizeConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Prompt      string  `yaml:"prompt"`
}

// Load reads a YAML config file. A missing file yields defaults so the
// CLI runs without any config at all.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects invalid values and fills defaults.
func (c *Config) Validate() error {
	if c.MaxVideos < 0 {
		return fmt.Errorf("max_videos must not be negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative")
	}
	switch c.Summarize.Provider {
	case "", "openai", "gemini", "anthropic":
	default:
		return fmt.Errorf("summarize.provider must be one of openai, gemini, anthropic")
	}

	if c.MaxVideos == 0 {
		c.MaxVideos = 20
	}
	if c.Concurrency == 0 {
		c.Concurrency = 3
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.TranscriptsDir == "" {
		c.TranscriptsDir = "transcripts"
	}
	if c.SummariesDir == "" {
		c.SummariesDir = "summaries"
	}
	if c.Summarize.Provider == "" {
		c.Summarize.Provider = "openai"
	}

	return nil
}
