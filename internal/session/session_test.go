package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-chat/internal/index"
	"document-chat/internal/models"
)

func TestTextCache(t *testing.T) {
	t.Run("Should report absent text for an unseen filename", func(t *testing.T) {
		s := New()
		_, ok := s.CachedText("missing.txt")
		assert.False(t, ok)
	})

	t.Run("Should return cached text after a put", func(t *testing.T) {
		s := New()
		s.PutCachedText("a.txt", "hello")
		text, ok := s.CachedText("a.txt")
		assert.True(t, ok)
		assert.Equal(t, "hello", text)
	})

	t.Run("Should overwrite a prior entry for the same filename", func(t *testing.T) {
		s := New()
		s.PutCachedText("a.txt", "first")
		s.PutCachedText("a.txt", "second")
		text, _ := s.CachedText("a.txt")
		assert.Equal(t, "second", text)
	})
}

func TestIndexAccess(t *testing.T) {
	t.Run("Should fail before an index is installed", func(t *testing.T) {
		s := New()
		assert.False(t, s.HasIndex())
		_, err := s.Index()
		assert.ErrorIs(t, err, ErrNoIndex)
		_, err = s.Chunks()
		assert.ErrorIs(t, err, ErrNoIndex)
	})

	t.Run("Should return the installed index with its aligned chunks", func(t *testing.T) {
		s := New()
		idx, err := index.Build([][]float32{{1, 0}, {0, 1}})
		require.NoError(t, err)
		s.SetIndex(idx, []string{"chunk a", "chunk b"})

		assert.True(t, s.HasIndex())
		got, err := s.Index()
		require.NoError(t, err)
		assert.Equal(t, 2, got.Len())
		chunks, err := s.Chunks()
		require.NoError(t, err)
		assert.Equal(t, []string{"chunk a", "chunk b"}, chunks)
	})
}

func TestTranscript(t *testing.T) {
	t.Run("Should preserve append order", func(t *testing.T) {
		s := New()
		s.AppendMessage(models.RoleUser, "q1")
		s.AppendMessage(models.RoleAssistant, "a1")
		s.AppendMessage(models.RoleUser, "q2")

		msgs := s.Messages()
		require.Len(t, msgs, 3)
		assert.Equal(t, models.Message{Role: models.RoleUser, Content: "q1"}, msgs[0])
		assert.Equal(t, models.Message{Role: models.RoleAssistant, Content: "a1"}, msgs[1])
		assert.Equal(t, models.Message{Role: models.RoleUser, Content: "q2"}, msgs[2])
	})

	t.Run("Should hand out copies of the transcript", func(t *testing.T) {
		s := New()
		s.AppendMessage(models.RoleUser, "original")
		msgs := s.Messages()
		msgs[0].Content = "mutated"
		assert.Equal(t, "original", s.Messages()[0].Content)
	})
}

func TestIdentity(t *testing.T) {
	t.Run("Should give each session a distinct id", func(t *testing.T) {
		assert.NotEqual(t, New().ID(), New().ID())
	})
}
