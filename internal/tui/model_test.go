package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-chat/internal/models"
	"document-chat/internal/rag"
)

func TestParseAddCommand(t *testing.T) {
	t.Run("Should parse an add command with paths", func(t *testing.T) {
		paths, ok := parseAddCommand(":add a.pdf b.txt")
		assert.True(t, ok)
		assert.Equal(t, []string{"a.pdf", "b.txt"}, paths)
	})

	t.Run("Should reject an add command without paths", func(t *testing.T) {
		_, ok := parseAddCommand(":add ")
		assert.False(t, ok)
	})

	t.Run("Should treat anything else as a question", func(t *testing.T) {
		_, ok := parseAddCommand("what is an add command?")
		assert.False(t, ok)
	})
}

func TestLoadDocuments(t *testing.T) {
	t.Run("Should read files and tag their formats", func(t *testing.T) {
		dir := t.TempDir()
		txtPath := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(txtPath, []byte("some notes"), 0o644))
		otherPath := filepath.Join(dir, "slides.pptx")
		require.NoError(t, os.WriteFile(otherPath, []byte("x"), 0o644))

		docs, err := LoadDocuments([]string{txtPath, otherPath})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, models.FormatTXT, docs[0].Format)
		assert.Equal(t, []byte("some notes"), docs[0].Data)
		assert.Equal(t, models.Format(""), docs[1].Format)
	})

	t.Run("Should fail when a file cannot be read", func(t *testing.T) {
		_, err := LoadDocuments([]string{"/does/not/exist.txt"})
		assert.Error(t, err)
	})
}

func TestSummarizeIngest(t *testing.T) {
	t.Run("Should count successes and failures", func(t *testing.T) {
		s := summarizeIngest(&rag.IngestResult{
			Documents: []rag.DocumentStatus{
				{Filename: "a.txt"},
				{Filename: "b.pdf", Err: os.ErrInvalid},
			},
			ChunkCount: 4,
			IndexBuilt: true,
		})
		assert.Contains(t, s, "1 document(s)")
		assert.Contains(t, s, "4 chunk(s)")
		assert.Contains(t, s, "1 failed")
		assert.Contains(t, s, "Index created")
	})
}
