package plaintext

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns raw verbatim when it is valid UTF-8.
func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: invalid utf-8 sequence", domain.NewExtractionError(domain.MsgUnreadableText))
	}
	return string(raw), nil
}
