package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		ok       bool
	}{
		{"mail.txt", FormatTXT, true},
		{"MAIL.TXT", FormatTXT, true},
		{"report.final.PDF", FormatPDF, true},
		{"notes.docx", 0, false},
		{"archive.pdf.zip", 0, false},
		{"txt", FormatTXT, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, ok := FormatFromFilename(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "txt", FormatTXT.String())
	assert.Equal(t, "pdf", FormatPDF.String())
	assert.Equal(t, "unknown", Format(0).String())
}
