package extractor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
	"github.com/kirillkom/email-analyzer/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/email-analyzer/internal/infrastructure/extractor/plaintext"
)

// FormatExtractor handles a single document format.
type FormatExtractor interface {
	Extract(ctx context.Context, raw []byte) (string, error)
}

// Recorder observes extraction outcomes. A nil Recorder is allowed.
type Recorder interface {
	RecordExtraction(format string, err error)
}

type Dispatcher struct {
	text     FormatExtractor
	pdf      FormatExtractor
	recorder Recorder
}

func NewDispatcher(text, pdf FormatExtractor, recorder Recorder) *Dispatcher {
	return &Dispatcher{text: text, pdf: pdf, recorder: recorder}
}

// NewDefault wires the built-in txt and pdf extractors.
func NewDefault(recorder Recorder) *Dispatcher {
	return NewDispatcher(plaintext.NewExtractor(), pdftext.NewExtractor(), recorder)
}

func (d *Dispatcher) Extract(ctx context.Context, raw []byte, format domain.Format) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case domain.FormatTXT:
		text, err = d.text.Extract(ctx, raw)
	case domain.FormatPDF:
		text, err = d.pdf.Extract(ctx, raw)
	default:
		err = fmt.Errorf("%w: format %d", domain.NewValidationError(domain.MsgUnsupportedFile), int(format))
	}

	if d.recorder != nil {
		d.recorder.RecordExtraction(format.String(), err)
	}
	if err != nil {
		slog.Error("extract_failed", "format", format.String(), "bytes", len(raw), "error", err)
		return "", err
	}
	return text, nil
}
