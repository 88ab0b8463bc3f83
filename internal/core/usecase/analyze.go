package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
	"github.com/kirillkom/email-analyzer/internal/core/ports"
)

type AnalyzeUseCase struct {
	extractor  ports.TextExtractor
	classifier ports.TextClassifier
}

func NewAnalyzeUseCase(extractor ports.TextExtractor, classifier ports.TextClassifier) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		extractor:  extractor,
		classifier: classifier,
	}
}

// Analyze validates the request, extracts text from an uploaded file when one
// is present and classifies the result. Input problems come back as
// *domain.UserError; remote classifier failures never surface here.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, req domain.AnalyzeRequest) (domain.Result, error) {
	content, err := uc.resolveContent(ctx, req)
	if err != nil {
		return domain.Result{}, err
	}
	if content == "" {
		return domain.Result{}, domain.NewValidationError(domain.MsgEmptyContent)
	}
	return uc.classifier.Classify(ctx, content), nil
}

func (uc *AnalyzeUseCase) resolveContent(ctx context.Context, req domain.AnalyzeRequest) (string, error) {
	switch {
	case req.File != nil:
		return uc.readFile(ctx, req.File)
	case req.Text != "":
		return strings.TrimSpace(req.Text), nil
	default:
		return "", domain.NewValidationError(domain.MsgNoInput)
	}
}

func (uc *AnalyzeUseCase) readFile(ctx context.Context, file *domain.Upload) (string, error) {
	if file.Content == nil {
		return "", domain.NewValidationError(domain.MsgNoInput)
	}

	raw, err := io.ReadAll(io.LimitReader(file.Content, domain.MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.NewValidationError(domain.MsgUnreadableUpload), err)
	}
	if len(raw) > domain.MaxUploadBytes {
		return "", domain.NewValidationError(domain.MsgFileTooLarge)
	}

	ext := domain.Extension(file.Filename)
	slog.InfoContext(ctx, "upload_received",
		"filename", file.Filename,
		"extension", ext,
		"bytes", len(raw),
		"detected_mime", mimetype.Detect(raw).String(),
	)

	format, ok := domain.FormatFromFilename(file.Filename)
	if !ok {
		return "", domain.NewValidationError(domain.MsgUnsupportedFile)
	}

	text, err := uc.extractor.Extract(ctx, raw, format)
	if err != nil {
		return "", fmt.Errorf("extract %s upload: %w", format, err)
	}
	return text, nil
}
