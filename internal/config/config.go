// Package config loads ASTRA's configuration from ~/.astra/config.yaml,
// merged with ASTRA_-prefixed environment variables. A default config file
// is written on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration for the ASTRA assistant.
type Config struct {
	Owner   OwnerConfig   `mapstructure:"owner" yaml:"owner"`
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Memory  MemoryConfig  `mapstructure:"memory" yaml:"memory"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Tools   ToolsConfig   `mapstructure:"tools" yaml:"tools"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OwnerConfig identifies the person the assistant belongs to. The name
// feeds creator replies, fact recall, and the system prompt.
type OwnerConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

// LLMConfig configures the Ollama connection and generation defaults.
type LLMConfig struct {
	// Endpoint is the Ollama HTTP API base URL.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	// DefaultModel is used when the model router has nothing better.
	DefaultModel string `mapstructure:"default_model" yaml:"default_model"`
	// EmbeddingModel generates vectors for the semantic index.
	EmbeddingModel string `mapstructure:"embedding_model" yaml:"embedding_model"`
	// MaxTokens caps generation length per request.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
	// Temperature is the default sampling temperature.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
	// Timeouts control the streaming phases.
	Timeouts TimeoutConfig `mapstructure:"timeouts" yaml:"timeouts"`
}

// TimeoutConfig contains timeout settings for the Ollama provider. First
// token can take minutes when a model cold starts, so it gets its own knob.
type TimeoutConfig struct {
	// ConnectionTimeoutSec is the time to establish the HTTP connection.
	ConnectionTimeoutSec int `mapstructure:"connection_timeout_sec" yaml:"connection_timeout_sec,omitempty"`
	// FirstTokenTimeoutSec is the time to receive the first token.
	FirstTokenTimeoutSec int `mapstructure:"first_token_timeout_sec" yaml:"first_token_timeout_sec,omitempty"`
	// StreamIdleTimeoutSec is the max gap between tokens mid-stream.
	StreamIdleTimeoutSec int `mapstructure:"stream_idle_timeout_sec" yaml:"stream_idle_timeout_sec,omitempty"`
}

// MemoryConfig locates the persistent memory file and the vector index.
type MemoryConfig struct {
	// Path is the JSON memory document.
	Path string `mapstructure:"path" yaml:"path"`
	// VectorPath is the sqlite-backed semantic index.
	VectorPath string `mapstructure:"vector_path" yaml:"vector_path"`
}

// SearchConfig configures the Serper web search integration. The API key
// usually comes from the SERPER_API_KEY environment variable rather than
// the config file.
type SearchConfig struct {
	SerperAPIKey string `mapstructure:"serper_api_key" yaml:"serper_api_key,omitempty"`
}

// ToolsConfig configures the local tool layer.
type ToolsConfig struct {
	// Workspace is the base directory for file reads and git operations.
	Workspace string `mapstructure:"workspace" yaml:"workspace"`
	// Capabilities is the initial on/off state per capability flag.
	Capabilities map[string]bool `mapstructure:"capabilities" yaml:"capabilities"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	// Level is the log level ("debug", "info", "warn", "error").
	Level string `mapstructure:"level" yaml:"level"`
	// Pretty enables human-readable console output instead of JSON.
	Pretty bool `mapstructure:"pretty" yaml:"pretty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Owner: OwnerConfig{Name: "Arnav"},
		LLM: LLMConfig{
			Endpoint:       "http://127.0.0.1:11434",
			DefaultModel:   "phi3:mini",
			EmbeddingModel: "nomic-embed-text",
			MaxTokens:      400,
			Temperature:    0.7,
			Timeouts: TimeoutConfig{
				ConnectionTimeoutSec: 30,
				FirstTokenTimeoutSec: 120,
				StreamIdleTimeoutSec: 30,
			},
		},
		Memory: MemoryConfig{
			Path:       "~/.astra/memory.json",
			VectorPath: "~/.astra/vectors.db",
		},
		Tools: ToolsConfig{
			Workspace: "~",
			Capabilities: map[string]bool{
				"web_search":     false,
				"file_read":      true,
				"file_write":     false,
				"python_exec":    true,
				"memory_read":    true,
				"memory_write":   true,
				"file_reader":    true,
				"system_monitor": true,
				"task_manager":   true,
				"git":            true,
				"python_sandbox": true,
			},
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 5000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads configuration from ~/.astra/config.yaml, creating it with
// defaults when missing.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return LoadFromPath(filepath.Join(homeDir, ".astra", "config.yaml"))
}

// LoadFromPath reads configuration from a specific file, merged with
// environment variables. A missing file is created with defaults.
func LoadFromPath(path string) (*Config, error) {
	path = expandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeConfigFile(path, Default()); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Example: ASTRA_LLM_DEFAULT_MODEL=mistral:latest
	v.SetEnvPrefix("ASTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Memory.Path = expandPath(cfg.Memory.Path)
	cfg.Memory.VectorPath = expandPath(cfg.Memory.VectorPath)
	cfg.Tools.Workspace = expandPath(cfg.Tools.Workspace)

	// The Serper key lives in the environment in most setups.
	if cfg.Search.SerperAPIKey == "" {
		cfg.Search.SerperAPIKey = os.Getenv("SERPER_API_KEY")
	}

	return &cfg, nil
}

// EnsureDirectories creates the directories the assistant writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Memory.Path),
		filepath.Dir(c.Memory.VectorPath),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks the configuration for common errors.
func (c *Config) Validate() error {
	if c.Owner.Name == "" {
		return fmt.Errorf("owner.name cannot be empty")
	}

	if c.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint cannot be empty")
	}
	if c.LLM.DefaultModel == "" {
		return fmt.Errorf("llm.default_model cannot be empty")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if c.Memory.Path == "" {
		return fmt.Errorf("memory.path cannot be empty")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level '%s', must be one of: debug, info, warn, error", c.Logging.Level)
	}

	return nil
}

// writeConfigFile writes a Config to a YAML file. Uses gopkg.in/yaml.v3
// directly to get tag-based serialization.
func writeConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
