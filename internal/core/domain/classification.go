package domain

import "io"

type Category string

const (
	CategoryProductive   Category = "Produtivo"
	CategoryUnproductive Category = "Improdutivo"
)

// MaxUploadBytes is the largest accepted upload, inclusive.
const MaxUploadBytes = 5 * 1024 * 1024

const (
	MsgFileTooLarge     = "file too large, max 5 MB"
	MsgUnsupportedFile  = "only .txt or .pdf files are supported"
	MsgNoInput          = "no text or file was sent"
	MsgEmptyContent     = "submitted content is empty"
	MsgUnreadableText   = "file cannot be read as text"
	MsgUnreadablePDF    = "file cannot be read as PDF"
	MsgUnreadableUpload = "uploaded file could not be read"
)

const (
	defaultReplyProduct = "Obrigado pelo contato. Vamos analisar sua solicitação e retornar em breve."
	defaultReplyIdle    = "Agradecemos sua mensagem! Não é necessária ação adicional."
)

type Result struct {
	Category       Category `json:"category"`
	SuggestedReply string   `json:"suggested_reply"`
}

type Upload struct {
	Filename string
	Content  io.Reader
}

type AnalyzeRequest struct {
	Text string
	File *Upload
}

// CandidateLabels returns the fixed label set in ranking order.
func CandidateLabels() []Category {
	return []Category{CategoryProductive, CategoryUnproductive}
}

func (c Category) Valid() bool {
	return c == CategoryProductive || c == CategoryUnproductive
}
