// Package config resolves agent settings from an optional YAML file, the
// environment, and flags (applied by the CLI in that order).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMinCommentLength = 80
	DefaultMaxReplies       = 3
)

type Config struct {
	Name             string   `yaml:"name"`
	Submolt          string   `yaml:"submolt"`
	Rotation         []string `yaml:"rotation"`
	ScanSubmolts     []string `yaml:"scan_submolts"`
	QuestionsPath    string   `yaml:"questions"`
	StatePath        string   `yaml:"state"`
	StartDate        string   `yaml:"start_date"` // YYYY-MM-DD
	MinCommentLength int      `yaml:"min_comment_length"`
	MaxReplies       int      `yaml:"max_replies"`
	BaseURL          string   `yaml:"base_url"`
}

func Default() Config {
	return Config{
		Name:             "xrp589",
		Rotation:         []string{"general"},
		QuestionsPath:    "questions.txt",
		StatePath:        ".state/agent_state.json",
		MinCommentLength: DefaultMinCommentLength,
		MaxReplies:       DefaultMaxReplies,
	}
}

// Load reads the YAML file over the defaults. An empty path or a missing
// file yields the defaults; a file that exists but will not parse is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		cfg.applyEnv()
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MOLTBOOK_AGENT_NAME"); v != "" {
		c.Name = v
	}
	if v := os.Getenv("MOLTBOOK_START_DATE"); v != "" {
		c.StartDate = v
	}
	if v := os.Getenv("MOLTBOOK_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}
