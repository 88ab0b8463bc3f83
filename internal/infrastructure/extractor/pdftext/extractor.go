package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract joins the plain text of every page with newlines, in document order.
// Pages without extractable text contribute an empty line.
func (e *Extractor) Extract(ctx context.Context, raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = unreadable(fmt.Errorf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", unreadable(err)
	}

	total := reader.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		pages = append(pages, pageText(reader, i))
	}

	slog.Debug("pdf_extracted", "pages", total, "bytes", len(raw))
	return strings.Join(pages, "\n"), nil
}

func pageText(reader *pdf.Reader, num int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("pdf_page_unreadable", "page", num, "panic", fmt.Sprint(r))
			text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		slog.Debug("pdf_page_unreadable", "page", num, "error", err)
		return ""
	}
	return content
}

func unreadable(cause error) error {
	return fmt.Errorf("%w: %v", domain.NewExtractionError(domain.MsgUnreadablePDF), cause)
}
