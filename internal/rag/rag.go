package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"document-chat/internal/chunker"
	"document-chat/internal/config"
	"document-chat/internal/index"
	"document-chat/internal/models"
	"document-chat/internal/session"
)

// Extractor converts an uploaded document's bytes into plain text.
type Extractor interface {
	Extract(doc models.Document) (string, error)
}

// Embedder maps text to fixed-dimension vectors. langchaingo's
// *embeddings.EmbedderImpl satisfies this.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Orchestrator drives the retrieval pipeline: extraction, chunking,
// embedding and indexing on ingest; retrieval, prompt assembly and
// generation on answer. All session state lives in the *session.Session
// passed into each call.
type Orchestrator struct {
	extractor Extractor
	embedder  Embedder
	generator Generator
	chunkSize int
	topK      int
}

func NewOrchestrator(extractor Extractor, embedder Embedder, generator Generator, cfg config.RAGConfig) *Orchestrator {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultSize
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}
	return &Orchestrator{
		extractor: extractor,
		embedder:  embedder,
		generator: generator,
		chunkSize: chunkSize,
		topK:      topK,
	}
}

// DocumentStatus reports the outcome of processing one document in a batch.
type DocumentStatus struct {
	Filename string
	Cached   bool
	Chunks   int
	Err      error
}

// IngestResult reports per-document outcomes and whether this batch built
// the session's vector index.
type IngestResult struct {
	Documents  []DocumentStatus
	ChunkCount int
	IndexBuilt bool
}

// Ingest processes a batch of uploaded documents. Extraction failures are
// recorded per document and never abort the batch; embedding or index-build
// failures are fatal to the whole call. Text already cached for a filename
// is reused without re-extraction, even if the uploaded bytes differ.
//
// The vector index is built once per session, from the first batch that
// yields chunks. Later batches still have their chunks embedded, but the
// installed index is left untouched.
func (o *Orchestrator) Ingest(ctx context.Context, sess *session.Session, docs []models.Document) (*IngestResult, error) {
	result := &IngestResult{Documents: make([]DocumentStatus, 0, len(docs))}

	var chunks []string
	for _, doc := range docs {
		status := DocumentStatus{Filename: doc.Filename}

		text, cached := sess.CachedText(doc.Filename)
		status.Cached = cached
		if !cached {
			extracted, err := o.extractor.Extract(doc)
			if err != nil {
				log.Error().Err(err).Str("filename", doc.Filename).Msg("Error extracting document")
				status.Err = err
				result.Documents = append(result.Documents, status)
				continue
			}
			text = extracted
			sess.PutCachedText(doc.Filename, text)
			log.Debug().Str("filename", doc.Filename).Int("text_len", len(text)).Msg("Extracted document")
		} else {
			log.Debug().Str("filename", doc.Filename).Msg("Using cached text")
		}

		if text == "" {
			result.Documents = append(result.Documents, status)
			continue
		}

		docChunks := chunker.Split(text, o.chunkSize)
		status.Chunks = len(docChunks)
		chunks = append(chunks, docChunks...)
		result.Documents = append(result.Documents, status)
	}

	result.ChunkCount = len(chunks)
	if len(chunks) == 0 {
		return result, nil
	}

	vectors, err := o.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding chunk batch: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	if sess.HasIndex() {
		log.Warn().Int("chunks", len(chunks)).Msg("Index already built for this session; new chunks are not merged")
		return result, nil
	}

	idx, err := index.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("building vector index: %w", err)
	}
	sess.SetIndex(idx, chunks)
	result.IndexBuilt = true
	log.Info().Int("vectors", idx.Len()).Int("dimension", idx.Dimension()).Msg("Vector index created")

	return result, nil
}

// AnswerResult carries the generated answer and the retrieved context it was
// conditioned on.
type AnswerResult struct {
	Answer  string
	Context string
	Matches []index.Match
}

// Answer handles one question. If no index exists yet the call is a no-op
// and returns a nil result: nothing is appended to the transcript and no
// generation is attempted. Generator failures are recovered by substituting
// a fixed fallback answer so the transcript stays consistent.
func (o *Orchestrator) Answer(ctx context.Context, sess *session.Session, question string) (*AnswerResult, error) {
	idx, err := sess.Index()
	if err != nil {
		if errors.Is(err, session.ErrNoIndex) {
			log.Debug().Msg("Question received before any index was built; ignoring")
			return nil, nil
		}
		return nil, err
	}

	sess.AppendMessage(models.RoleUser, question)

	queryVec, err := o.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	matches, err := idx.Search(queryVec, o.topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	chunks, err := sess.Chunks()
	if err != nil {
		return nil, err
	}
	contextTexts := make([]string, len(matches))
	for i, m := range matches {
		contextTexts[i] = chunks[m.Position]
	}
	contextStr := strings.Join(contextTexts, models.ContextSeparator)

	prompt := fmt.Sprintf(models.AnswerPromptTemplate, contextStr, question)
	answer, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("Error generating answer")
		answer = models.FallbackAnswer
	}

	sess.AppendMessage(models.RoleAssistant, answer)

	return &AnswerResult{Answer: answer, Context: contextStr, Matches: matches}, nil
}
