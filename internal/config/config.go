package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"document-chat/internal/chunker"
)

// LLMConfig points at one model endpoint (embedding or chat).
type LLMConfig struct {
	Provider string `yaml:"provider"` // "ollama" or "openai"
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

// RAGConfig tunes the retrieval pipeline.
type RAGConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	TopK      int `yaml:"top_k"`
}

type Config struct {
	EmbedLLM LLMConfig `yaml:"embed_llm"`
	ChatLLM  LLMConfig `yaml:"chat_llm"`
	RAG      RAGConfig `yaml:"rag"`
}

const (
	defaultTopK     = 3
	defaultProvider = "ollama"
	defaultBaseURL  = "http://localhost:11434"
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config usable without a config file; model endpoints
// fall back to a local Ollama instance.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = chunker.DefaultSize
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = defaultTopK
	}
	if cfg.EmbedLLM.Provider == "" {
		cfg.EmbedLLM.Provider = defaultProvider
	}
	if cfg.EmbedLLM.BaseURL == "" {
		cfg.EmbedLLM.BaseURL = defaultBaseURL
	}
	if cfg.EmbedLLM.Model == "" {
		cfg.EmbedLLM.Model = "nomic-embed-text"
	}
	if cfg.ChatLLM.Provider == "" {
		cfg.ChatLLM.Provider = defaultProvider
	}
	if cfg.ChatLLM.BaseURL == "" {
		cfg.ChatLLM.BaseURL = defaultBaseURL
	}
	if cfg.ChatLLM.Model == "" {
		cfg.ChatLLM.Model = "deepseek-r1:1.5b"
	}
}
