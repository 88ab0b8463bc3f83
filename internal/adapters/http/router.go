package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/kirillkom/email-analyzer/internal/config"
	"github.com/kirillkom/email-analyzer/internal/core/domain"
	"github.com/kirillkom/email-analyzer/internal/core/ports"
	"github.com/kirillkom/email-analyzer/internal/observability/metrics"
)

const msgInternal = "unable to process the request"

type Options struct {
	Metrics *metrics.HTTPServerMetrics
	OpenAPI *openapi3.T
}

type Router struct {
	cfg      config.Config
	analyzer ports.EmailAnalyzer
	metrics  *metrics.HTTPServerMetrics
	openapi  *openapi3.T
}

func NewRouter(cfg config.Config, analyzer ports.EmailAnalyzer, opts Options) *Router {
	return &Router{
		cfg:      cfg,
		analyzer: analyzer,
		metrics:  opts.Metrics,
		openapi:  opts.OpenAPI,
	}
}

func (rt *Router) Handler() http.Handler {
	analyze := backpressureMiddleware(http.HandlerFunc(rt.analyze), rt.cfg.APIMaxInFlight, rt.cfg.APIBackpressureWait())
	analyze = rateLimitMiddleware(analyze, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)

	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.index)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(rt.cfg.StaticDir))))
	mux.Handle("/analyze", analyze)
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	if rt.openapi != nil {
		mux.HandleFunc("/openapi.json", rt.openAPIDocument)
	}

	var handler http.Handler = corsMiddleware(mux, rt.cfg.CORSAllowedOrigins)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, errorPayload("not found"))
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeJSON(w, http.StatusMethodNotAllowed, errorPayload("method not allowed"))
		return
	}

	page, err := os.ReadFile(filepath.Join(rt.cfg.StaticDir, "index.html"))
	if err != nil {
		slog.ErrorContext(r.Context(), "index_unavailable", "request_id", requestIDFromContext(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorPayload("index page unavailable"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyze always answers 200; business failures are reported in the payload.
func (rt *Router) analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorPayload("method not allowed"))
		return
	}

	req, cleanup, err := parseAnalyzeForm(w, r)
	defer cleanup()
	if err != nil {
		writeJSON(w, http.StatusOK, errorPayload(formErrorMessage(err)))
		return
	}

	result, err := rt.analyzer.Analyze(r.Context(), req)
	if err != nil {
		msg, ok := domain.UserMessage(err)
		if !ok {
			slog.ErrorContext(r.Context(), "analyze_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
			msg = msgInternal
		}
		writeJSON(w, http.StatusOK, errorPayload(msg))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) openAPIDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorPayload("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, rt.openapi)
}

func formErrorMessage(err error) string {
	if msg, ok := domain.UserMessage(err); ok {
		return msg
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return domain.MsgFileTooLarge
	}
	return domain.MsgNoInput
}

func errorPayload(message string) map[string]string {
	return map[string]string{"error": message}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
