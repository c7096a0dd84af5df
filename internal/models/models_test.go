package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromFilename(t *testing.T) {
	t.Run("Should recognize the supported extensions", func(t *testing.T) {
		assert.Equal(t, FormatPDF, FormatFromFilename("report.pdf"))
		assert.Equal(t, FormatDOCX, FormatFromFilename("notes.docx"))
		assert.Equal(t, FormatTXT, FormatFromFilename("readme.txt"))
		assert.Equal(t, FormatPDF, FormatFromFilename("SHOUTY.PDF"))
	})

	t.Run("Should leave unrecognized extensions untagged", func(t *testing.T) {
		assert.Equal(t, Format(""), FormatFromFilename("slides.pptx"))
		assert.Equal(t, Format(""), FormatFromFilename("archive.tar.gz"))
		assert.Equal(t, Format(""), FormatFromFilename("no-extension"))
	})

	t.Run("Should use only the final extension", func(t *testing.T) {
		assert.Equal(t, FormatTXT, FormatFromFilename("backup.pdf.txt"))
	})
}
