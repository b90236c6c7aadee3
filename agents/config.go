package agents

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configDirName = ".finsight"

// Config matches ~/.finsight/config.yaml.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Agent   AgentConfig   `yaml:"agent"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig selects and tunes the model backend.
type ModelConfig struct {
	Name     string `yaml:"name"`
	Provider string `yaml:"provider"`
	// Endpoint overrides the provider's default backend URL. Empty means
	// local Ollama, or the hosted API for the openai provider.
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	// Temperature 0 keeps answers deterministic, which matters when the
	// model is expected to repeat exact dollar figures.
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// AgentConfig tunes the loop.
type AgentConfig struct {
	MaxIterations int    `yaml:"max_iterations"`
	Verbose       bool   `yaml:"verbose"`
	Persona       string `yaml:"persona"`
	// ConcurrentTools runs the invocations of one turn in parallel.
	// Safe for the read-only query tools; off by default.
	ConcurrentTools bool `yaml:"concurrent_tools"`
}

// DataConfig locates the transaction dataset. When SQLite is set it wins
// over the CSV path.
type DataConfig struct {
	CSV    string `yaml:"csv"`
	SQLite string `yaml:"sqlite"`
}

// LoggingConfig toggles debug output.
type LoggingConfig struct {
	LLM   bool `yaml:"llm_debug"`
	Agent bool `yaml:"agent_debug"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Name:        "llama3.2",
			Provider:    "ollama",
			Temperature: 0,
		},
		Agent: AgentConfig{
			MaxIterations: DefaultMaxIterations,
			Verbose:       true,
			Persona:       "analyst",
		},
		Data: DataConfig{
			CSV: "data/sample_transactions.csv",
		},
	}
}

// DefaultConfigPath returns ~/.finsight/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(configDirName, "config.yaml")
	}
	return filepath.Join(home, configDirName, "config.yaml")
}

// LoadConfig loads the config at path, or the defaults when the file does
// not exist. Keys absent from the file keep their default values, and
// FINSIGHT_* environment variables overlay whatever the file provided.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays the FINSIGHT_* environment variables. Only the string
// keys have variables; numeric tuning stays in the file or on flags.
func (c *Config) applyEnv() {
	overlay(&c.Model.Name, "FINSIGHT_MODEL")
	overlay(&c.Model.Provider, "FINSIGHT_PROVIDER")
	overlay(&c.Model.Endpoint, "FINSIGHT_ENDPOINT")
	overlay(&c.Model.APIKey, "FINSIGHT_API_KEY")
	overlay(&c.Agent.Persona, "FINSIGHT_PERSONA")
	overlay(&c.Data.CSV, "FINSIGHT_CSV")
	overlay(&c.Data.SQLite, "FINSIGHT_SQLITE")
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// SaveConfig writes the config to disk, creating the directory if needed.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config missing")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
