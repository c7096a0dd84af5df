package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"document-chat/internal/index"
	"document-chat/internal/models"
)

// ErrNoIndex is returned when the index or chunk sequence is requested
// before any successful ingest has installed one.
var ErrNoIndex = errors.New("session: no index has been built")

// Session holds all mutable state for one interactive session: the
// extracted-text cache, the vector index with its aligned chunk sequence,
// and the chat transcript. Sessions are independent; nothing is shared
// between them. Lifecycle is owned by the hosting layer.
type Session struct {
	id string

	mu     sync.RWMutex
	texts  map[string]string
	idx    *index.Flat
	chunks []string
	msgs   []models.Message
}

// New creates an empty session.
func New() *Session {
	return &Session{
		id:    uuid.NewString(),
		texts: make(map[string]string),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CachedText returns the extracted text cached for filename, if any.
func (s *Session) CachedText(filename string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[filename]
	return text, ok
}

// PutCachedText caches extracted text for filename, overwriting any prior
// entry for the same filename.
func (s *Session) PutCachedText(filename, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[filename] = text
}

// HasIndex reports whether a vector index has been installed.
func (s *Session) HasIndex() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx != nil
}

// Index returns the installed vector index, or ErrNoIndex before the first
// successful ingest.
func (s *Session) Index() (*index.Flat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx == nil {
		return nil, ErrNoIndex
	}
	return s.idx, nil
}

// Chunks returns the chunk sequence aligned with the installed index: the
// chunk at position i is the text the vector at position i was embedded
// from. Returns ErrNoIndex before the first successful ingest.
func (s *Session) Chunks() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx == nil {
		return nil, ErrNoIndex
	}
	return s.chunks, nil
}

// SetIndex installs the vector index and its aligned chunk sequence.
func (s *Session) SetIndex(idx *index.Flat, chunks []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idx = idx
	s.chunks = chunks
}

// AppendMessage appends one entry to the chat transcript. The transcript is
// append-only; entries are never reordered or removed.
func (s *Session) AppendMessage(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, models.Message{Role: role, Content: content})
}

// Messages returns a copy of the chat transcript in append order.
func (s *Session) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}
