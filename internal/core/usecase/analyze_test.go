package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

type extractorFake struct {
	text   string
	err    error
	calls  int
	raw    []byte
	format domain.Format
}

func (f *extractorFake) Extract(_ context.Context, raw []byte, format domain.Format) (string, error) {
	f.calls++
	f.raw = raw
	f.format = format
	return f.text, f.err
}

type classifierFake struct {
	calls int
	text  string
}

func (f *classifierFake) Classify(_ context.Context, text string) domain.Result {
	f.calls++
	f.text = text
	return domain.Result{Category: domain.CategoryProductive, SuggestedReply: "ok"}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func upload(name string, content []byte) *domain.Upload {
	return &domain.Upload{Filename: name, Content: bytes.NewReader(content)}
}

func requireUserError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, kind), "unexpected kind: %v", err)
	msg, ok := domain.UserMessage(err)
	require.True(t, ok, "expected user error, got %v", err)
	assert.Equal(t, message, msg)
}

func TestAnalyzeTextIsTrimmedBeforeClassification(t *testing.T) {
	ext := &extractorFake{}
	cls := &classifierFake{}
	uc := NewAnalyzeUseCase(ext, cls)

	got, err := uc.Analyze(context.Background(), domain.AnalyzeRequest{Text: "  Preciso de ajuda \n"})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryProductive, got.Category)
	assert.Equal(t, "Preciso de ajuda", cls.text)
	assert.Zero(t, ext.calls)
}

func TestAnalyzeValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  domain.AnalyzeRequest
		kind error
		msg  string
	}{
		{"no input", domain.AnalyzeRequest{}, domain.ErrInvalidInput, domain.MsgNoInput},
		{"whitespace text", domain.AnalyzeRequest{Text: " \t\n "}, domain.ErrInvalidInput, domain.MsgEmptyContent},
		{"unsupported extension", domain.AnalyzeRequest{File: upload("mail.docx", []byte("x"))}, domain.ErrInvalidInput, domain.MsgUnsupportedFile},
		{"no extension", domain.AnalyzeRequest{File: upload("README", []byte("x"))}, domain.ErrInvalidInput, domain.MsgUnsupportedFile},
		{"file without body", domain.AnalyzeRequest{File: &domain.Upload{Filename: "a.txt"}}, domain.ErrInvalidInput, domain.MsgNoInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &extractorFake{text: "ignored"}
			cls := &classifierFake{}
			_, err := NewAnalyzeUseCase(ext, cls).Analyze(context.Background(), tt.req)

			requireUserError(t, err, tt.kind, tt.msg)
			assert.Zero(t, ext.calls)
			assert.Zero(t, cls.calls)
		})
	}
}

func TestAnalyzeFileSizeBoundary(t *testing.T) {
	ext := &extractorFake{text: "conteúdo"}
	cls := &classifierFake{}
	uc := NewAnalyzeUseCase(ext, cls)

	exact := bytes.Repeat([]byte("a"), domain.MaxUploadBytes)
	_, err := uc.Analyze(context.Background(), domain.AnalyzeRequest{File: upload("big.txt", exact)})
	require.NoError(t, err)
	assert.Len(t, ext.raw, domain.MaxUploadBytes)

	over := bytes.Repeat([]byte("a"), domain.MaxUploadBytes+1)
	_, err = uc.Analyze(context.Background(), domain.AnalyzeRequest{File: upload("big.txt", over)})
	requireUserError(t, err, domain.ErrInvalidInput, domain.MsgFileTooLarge)
	assert.Equal(t, 1, ext.calls)
}

func TestAnalyzeOversizedFileCheckedBeforeExtension(t *testing.T) {
	over := bytes.Repeat([]byte("a"), domain.MaxUploadBytes+1)
	_, err := NewAnalyzeUseCase(&extractorFake{}, &classifierFake{}).
		Analyze(context.Background(), domain.AnalyzeRequest{File: upload("big.docx", over)})

	requireUserError(t, err, domain.ErrInvalidInput, domain.MsgFileTooLarge)
}

func TestAnalyzeFileTakesPrecedenceOverText(t *testing.T) {
	ext := &extractorFake{text: "from file"}
	cls := &classifierFake{}

	_, err := NewAnalyzeUseCase(ext, cls).Analyze(context.Background(), domain.AnalyzeRequest{
		Text: "from text",
		File: upload("Mail.PDF", []byte("%PDF-1.4")),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPDF, ext.format)
	assert.Equal(t, "from file", cls.text)
}

func TestAnalyzePropagatesExtractionError(t *testing.T) {
	ext := &extractorFake{err: domain.NewExtractionError(domain.MsgUnreadablePDF)}
	cls := &classifierFake{}

	_, err := NewAnalyzeUseCase(ext, cls).Analyze(context.Background(), domain.AnalyzeRequest{File: upload("a.pdf", []byte("junk"))})
	requireUserError(t, err, domain.ErrExtraction, domain.MsgUnreadablePDF)
	assert.Zero(t, cls.calls)
}

func TestAnalyzeRejectsEmptyExtractedContent(t *testing.T) {
	ext := &extractorFake{text: ""}
	cls := &classifierFake{}

	_, err := NewAnalyzeUseCase(ext, cls).Analyze(context.Background(), domain.AnalyzeRequest{File: upload("a.txt", nil)})
	requireUserError(t, err, domain.ErrInvalidInput, domain.MsgEmptyContent)
	assert.Zero(t, cls.calls)
}

func TestAnalyzeClassifiesWhitespaceOnlyFile(t *testing.T) {
	for _, text := range []string{"\n\n", "   ", "\n \n"} {
		ext := &extractorFake{text: text}
		cls := &classifierFake{}

		_, err := NewAnalyzeUseCase(ext, cls).Analyze(context.Background(), domain.AnalyzeRequest{File: upload("scan.txt", []byte(text))})
		require.NoError(t, err, "text %q", text)
		assert.Equal(t, 1, cls.calls)
		assert.Equal(t, text, cls.text)
	}
}

func TestAnalyzeExtractedTextIsPassedUnchanged(t *testing.T) {
	ext := &extractorFake{text: "  linha 1\nlinha 2  "}
	cls := &classifierFake{}

	_, err := NewAnalyzeUseCase(ext, cls).Analyze(context.Background(), domain.AnalyzeRequest{File: upload("a.txt", []byte("x"))})
	require.NoError(t, err)
	assert.Equal(t, "  linha 1\nlinha 2  ", cls.text)
	assert.Equal(t, domain.FormatTXT, ext.format)
}

func TestAnalyzeReadFailure(t *testing.T) {
	_, err := NewAnalyzeUseCase(&extractorFake{}, &classifierFake{}).Analyze(context.Background(), domain.AnalyzeRequest{
		File: &domain.Upload{Filename: "a.txt", Content: failingReader{}},
	})
	requireUserError(t, err, domain.ErrInvalidInput, domain.MsgUnreadableUpload)
	assert.True(t, strings.Contains(err.Error(), "connection reset"))
}
