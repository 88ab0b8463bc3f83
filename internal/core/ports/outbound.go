package ports

import (
	"context"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

// TextExtractor turns raw document bytes of a known format into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, raw []byte, format domain.Format) (string, error)
}

// TextClassifier always produces a result; failures are absorbed internally.
type TextClassifier interface {
	Classify(ctx context.Context, text string) domain.Result
}
