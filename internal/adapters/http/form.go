package httpadapter

import (
	"errors"
	"fmt"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

const (
	multipartMemory = 8 << 20
	// Leaves room for the text field and multipart framing around a maximal upload.
	maxRequestBytes = 2 * domain.MaxUploadBytes
)

// parseAnalyzeForm reads the text and file fields. The returned cleanup must
// always be called.
func parseAnalyzeForm(w http.ResponseWriter, r *http.Request) (domain.AnalyzeRequest, func(), error) {
	cleanup := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	err := r.ParseMultipartForm(multipartMemory)
	switch {
	case err == nil:
	case errors.Is(err, http.ErrNotMultipart):
		if err := r.ParseForm(); err != nil {
			return domain.AnalyzeRequest{}, cleanup, fmt.Errorf("parse form: %w", err)
		}
	default:
		return domain.AnalyzeRequest{}, cleanup, fmt.Errorf("parse multipart form: %w", err)
	}

	req := domain.AnalyzeRequest{Text: r.FormValue("text")}
	if r.MultipartForm == nil {
		return req, cleanup, nil
	}
	form := r.MultipartForm
	cleanup = func() { _ = form.RemoveAll() }

	headers := form.File["file"]
	if len(headers) == 0 {
		return req, cleanup, nil
	}

	var file openapi_types.File
	file.InitFromMultipart(headers[0])
	body, err := file.Reader()
	if err != nil {
		return domain.AnalyzeRequest{}, cleanup, fmt.Errorf("%w: %v", domain.NewValidationError(domain.MsgUnreadableUpload), err)
	}
	cleanup = func() {
		_ = body.Close()
		_ = form.RemoveAll()
	}

	req.File = &domain.Upload{Filename: file.Filename(), Content: body}
	return req, cleanup, nil
}
