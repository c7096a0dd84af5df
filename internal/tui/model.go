package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"document-chat/internal/models"
	"document-chat/internal/rag"
	"document-chat/internal/session"
)

// Port is the TUI-facing subset of the orchestrator.
type Port interface {
	Ingest(ctx context.Context, sess *session.Session, docs []models.Document) (*rag.IngestResult, error)
	Answer(ctx context.Context, sess *session.Session, question string) (*rag.AnswerResult, error)
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	orch Port
	sess *session.Session

	input    textinput.Model
	viewport viewport.Model

	initialPaths []string
	status       string
	lastContext  string
	showContext  bool
	busy         bool
	ready        bool
}

type ingestDoneMsg struct {
	result *rag.IngestResult
	err    error
}

type answerDoneMsg struct {
	result *rag.AnswerResult
	err    error
}

// New creates the chat model. Files in paths are ingested on startup.
func New(orch Port, sess *session.Session, paths []string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the documents (:add <file> to upload more)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		orch:         orch,
		sess:         sess,
		input:        ti,
		viewport:     vp,
		initialPaths: paths,
		status:       "Upload documents with :add, or ask away once ingested.",
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.initialPaths) > 0 {
		return tea.Batch(textinput.Blink, m.ingestCmd(m.initialPaths))
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case ingestDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Ingest failed: " + msg.err.Error()
			return m, nil
		}
		m.status = summarizeIngest(msg.result)
		return m, nil

	case answerDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		if msg.result == nil {
			m.status = "No documents indexed yet. Upload with :add first."
			return m, nil
		}
		m.lastContext = msg.result.Context
		m.status = "Answered. Press ctrl+r to inspect the retrieved context."
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+r":
			m.showContext = !m.showContext
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.SetValue("")
			if paths, ok := parseAddCommand(line); ok {
				m.busy = true
				m.status = "Ingesting documents..."
				return m, m.ingestCmd(paths)
			}
			m.busy = true
			m.status = "Thinking..."
			return m, m.answerCmd(line)
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Document Chatbot")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	sections := []string{header, transcript}
	if m.showContext {
		sections = append(sections, contextBoxStyle.Render(m.renderContext()))
	}
	sections = append(sections,
		inputBoxStyle.Render(m.input.View()),
		statusStyle.Render(m.status),
	)
	return strings.Join(sections, "\n")
}

func (m Model) ingestCmd(paths []string) tea.Cmd {
	return func() tea.Msg {
		docs, err := LoadDocuments(paths)
		if err != nil {
			return ingestDoneMsg{err: err}
		}
		result, err := m.orch.Ingest(context.Background(), m.sess, docs)
		return ingestDoneMsg{result: result, err: err}
	}
}

func (m Model) answerCmd(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.orch.Answer(context.Background(), m.sess, question)
		return answerDoneMsg{result: result, err: err}
	}
}

func (m Model) renderTranscript() string {
	msgs := m.sess.Messages()
	if len(msgs) == 0 {
		return "No conversation yet."
	}
	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case models.RoleUser:
			b.WriteString(userStyle.Render("You: "))
		default:
			b.WriteString(assistantStyle.Render("Bot: "))
		}
		b.WriteString(msg.Content)
	}
	return b.String()
}

func (m Model) renderContext() string {
	if m.lastContext == "" {
		return "No context retrieved yet."
	}
	return "Retrieved context:\n\n" + m.lastContext
}

// parseAddCommand recognizes ":add file1 [file2 ...]".
func parseAddCommand(line string) ([]string, bool) {
	if !strings.HasPrefix(line, ":add ") {
		return nil, false
	}
	paths := strings.Fields(strings.TrimPrefix(line, ":add "))
	return paths, len(paths) > 0
}

// LoadDocuments reads the given files into upload documents. Format tags are
// taken from the file extensions; unrecognized extensions are kept and
// reported as unsupported during ingest.
func LoadDocuments(paths []string) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		docs = append(docs, models.Document{
			Filename: p,
			Data:     data,
			Format:   models.FormatFromFilename(p),
		})
	}
	return docs, nil
}

func summarizeIngest(result *rag.IngestResult) string {
	ok := 0
	failed := 0
	for _, st := range result.Documents {
		if st.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	s := fmt.Sprintf("Processed %d document(s), %d chunk(s)", ok, result.ChunkCount)
	if failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	if result.IndexBuilt {
		s += ". Index created, ready for questions."
	}
	return s
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	contextBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Foreground(lipgloss.Color("8"))
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
