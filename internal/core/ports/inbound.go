package ports

import (
	"context"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

// EmailAnalyzer is the inbound contract for text/file classification.
type EmailAnalyzer interface {
	Analyze(ctx context.Context, req domain.AnalyzeRequest) (domain.Result, error)
}
