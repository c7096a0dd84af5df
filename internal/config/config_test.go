package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should load values from a YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := []byte(`embed_llm:
  provider: openai
  base_url: https://openrouter.ai/api
  key: Bearer sk-test
  model: text-embedding-3-small
chat_llm:
  provider: ollama
  base_url: http://localhost:11434
  model: deepseek-r1:1.5b
rag:
  chunk_size: 500
  top_k: 5
`)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "openai", cfg.EmbedLLM.Provider)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbedLLM.Model)
		assert.Equal(t, "deepseek-r1:1.5b", cfg.ChatLLM.Model)
		assert.Equal(t, 500, cfg.RAG.ChunkSize)
		assert.Equal(t, 5, cfg.RAG.TopK)
	})

	t.Run("Should fill in defaults for missing fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rag:\n  top_k: 2\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 1000, cfg.RAG.ChunkSize)
		assert.Equal(t, 2, cfg.RAG.TopK)
		assert.Equal(t, "ollama", cfg.EmbedLLM.Provider)
		assert.NotEmpty(t, cfg.EmbedLLM.Model)
	})

	t.Run("Should fail for a missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	t.Run("Should return a fully populated config", func(t *testing.T) {
		cfg := Default()
		assert.Equal(t, 1000, cfg.RAG.ChunkSize)
		assert.Equal(t, 3, cfg.RAG.TopK)
		assert.NotEmpty(t, cfg.EmbedLLM.BaseURL)
		assert.NotEmpty(t, cfg.ChatLLM.BaseURL)
	})
}
