package models

// Format tags the declared file format of an uploaded document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// FormatFromFilename maps a filename extension to a Format.
// Unrecognized extensions return an empty Format.
func FormatFromFilename(name string) Format {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			switch name[i+1:] {
			case "pdf", "PDF":
				return FormatPDF
			case "docx", "DOCX":
				return FormatDOCX
			case "txt", "TXT":
				return FormatTXT
			}
			return ""
		}
	}
	return ""
}

// Document is one uploaded file. Raw bytes are discarded after extraction;
// only the derived text is retained in the session.
type Document struct {
	Filename string
	Data     []byte
	Format   Format
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the session chat transcript.
type Message struct {
	Role    string
	Content string
}
