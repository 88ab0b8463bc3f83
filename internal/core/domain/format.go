package domain

import "strings"

// Format is the closed set of document formats the extractor understands.
type Format int

const (
	FormatTXT Format = iota + 1
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatTXT:
		return "txt"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// FormatFromFilename uses the text after the last dot, lower-cased.
func FormatFromFilename(filename string) (Format, bool) {
	ext := Extension(filename)
	switch ext {
	case "txt":
		return FormatTXT, true
	case "pdf":
		return FormatPDF, true
	default:
		return 0, false
	}
}

func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return strings.ToLower(filename)
	}
	return strings.ToLower(filename[idx+1:])
}
