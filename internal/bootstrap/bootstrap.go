package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"

	httpadapter "github.com/kirillkom/email-analyzer/internal/adapters/http"
	"github.com/kirillkom/email-analyzer/internal/config"
	"github.com/kirillkom/email-analyzer/internal/core/ports"
	"github.com/kirillkom/email-analyzer/internal/core/usecase"
	"github.com/kirillkom/email-analyzer/internal/infrastructure/classifier/huggingface"
	"github.com/kirillkom/email-analyzer/internal/infrastructure/classifier/keyword"
	"github.com/kirillkom/email-analyzer/internal/infrastructure/extractor"
	"github.com/kirillkom/email-analyzer/internal/infrastructure/resilience"
	"github.com/kirillkom/email-analyzer/internal/observability/metrics"
)

const ServiceName = "email-analyzer"

type App struct {
	Config config.Config

	Metrics   *metrics.HTTPServerMetrics
	OpenAPI   *openapi3.T
	AnalyzeUC ports.EmailAnalyzer
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rules, err := keyword.LoadRules(cfg.ClassifierRulesPath)
	if err != nil {
		return nil, fmt.Errorf("load classifier rules: %w", err)
	}
	fallback, err := keyword.New(rules)
	if err != nil {
		return nil, fmt.Errorf("init fallback classifier: %w", err)
	}

	doc, err := httpadapter.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	httpMetrics := metrics.NewHTTPServerMetrics(ServiceName)

	executor := resilience.NewExecutor(resilience.Config{
		CallTimeout:         cfg.HFTimeout(),
		BreakerEnabled:      cfg.HFBreakerEnabled,
		BreakerMinRequests:  uint32(cfg.HFBreakerMinRequests),
		BreakerFailureRatio: cfg.HFBreakerFailureRatio,
		BreakerOpenTimeout:  cfg.HFBreakerOpenTimeout(),
	})
	classifier := huggingface.New(huggingface.Options{
		Endpoint: cfg.HFModelURL,
		Token:    cfg.HFToken,
		Timeout:  cfg.HFTimeout(),
		Rules:    rules,
		Fallback: fallback,
		Executor: executor,
		Recorder: httpMetrics,
	})
	if !classifier.Enabled() {
		slog.Warn("remote_classifier_disabled", "reason", "HF_TOKEN not set, using keyword fallback only")
	}

	analyzeUC := usecase.NewAnalyzeUseCase(extractor.NewDefault(httpMetrics), classifier)

	return &App{
		Config:    cfg,
		Metrics:   httpMetrics,
		OpenAPI:   doc,
		AnalyzeUC: analyzeUC,
	}, nil
}

func (a *App) Handler() *httpadapter.Router {
	return httpadapter.NewRouter(a.Config, a.AnalyzeUC, httpadapter.Options{
		Metrics: a.Metrics,
		OpenAPI: a.OpenAPI,
	})
}
