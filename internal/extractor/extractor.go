package extractor

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"document-chat/internal/models"
)

// ErrUnsupportedFormat is returned for documents whose declared format is
// not one of pdf/docx/txt.
var ErrUnsupportedFormat = errors.New("extractor: unsupported file format")

// ErrUndecodableText is returned when plain text bytes decode under none of
// the attempted encodings.
var ErrUndecodableText = errors.New("extractor: text decodes under no known encoding")

// FileExtractor converts uploaded document bytes into plain text based on
// the declared format tag.
type FileExtractor struct{}

func New() *FileExtractor { return &FileExtractor{} }

// Extract returns the plain text of doc. Malformed content yields an error
// scoped to this document only.
func (e *FileExtractor) Extract(doc models.Document) (string, error) {
	switch doc.Format {
	case models.FormatPDF:
		return extractPDF(doc.Data)
	case models.FormatDOCX:
		return extractDOCX(doc.Data)
	case models.FormatTXT:
		return extractText(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, doc.Format, doc.Filename)
	}
}

// withTempFile writes data to a scratch file, runs fn on its path, and
// removes the file on every exit path so a failed extraction never leaks a
// temp file into the next document's processing.
func withTempFile(data []byte, pattern string, fn func(path string) (string, error)) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return fn(path)
}

func extractPDF(data []byte) (string, error) {
	return withTempFile(data, "docchat-*.pdf", func(path string) (string, error) {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return "", err
		}

		reader, err := pdf.NewReader(f, stat.Size())
		if err != nil {
			return "", fmt.Errorf("parse pdf: %w", err)
		}

		var text strings.Builder
		numPages := reader.NumPage()
		for i := 1; i <= numPages; i++ {
			page := reader.Page(i)
			if page.V.IsNull() {
				continue
			}
			pageText, err := page.GetPlainText(nil)
			if err != nil {
				return "", fmt.Errorf("read pdf page %d: %w", i, err)
			}
			text.WriteString(pageText)
			text.WriteString("\n")
		}
		return text.String(), nil
	})
}

func extractDOCX(data []byte) (string, error) {
	return withTempFile(data, "docchat-*.docx", func(path string) (string, error) {
		r, err := docx.ReadDocxFile(path)
		if err != nil {
			return "", fmt.Errorf("parse docx: %w", err)
		}
		defer r.Close()

		content := r.Editable().GetContent()
		return extractTextFromXML(content, "<w:t"), nil
	})
}

// extractTextFromXML pulls the character data out of every occurrence of the
// given run tag (e.g. "<w:t" for DOCX runs), joining paragraphs with newlines.
func extractTextFromXML(xmlContent, openTag string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, openTag)
	closeTag := "</" + strings.TrimPrefix(openTag, "<")
	for i, part := range parts {
		if i == 0 {
			continue
		}
		// skip past the remainder of the opening tag (attributes, '>')
		gt := strings.Index(part, ">")
		if gt < 0 {
			continue
		}
		part = part[gt+1:]
		endIdx := strings.Index(part, closeTag)
		if endIdx >= 0 {
			text.WriteString(part[:endIdx])
			text.WriteString("\n")
		}
	}
	return text.String()
}

// textEncodings is the fixed decode order for plain text uploads.
var textEncodings = []encoding.Encoding{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

func extractText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	for _, enc := range textEncodings {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}
	return "", ErrUndecodableText
}
