package huggingface

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/email-analyzer/internal/core/domain"
	"github.com/kirillkom/email-analyzer/internal/core/ports"
	"github.com/kirillkom/email-analyzer/internal/infrastructure/resilience"
)

const operationZeroShot = "zero_shot_classify"

// Recorder observes classification outcomes. A nil Recorder is allowed.
type Recorder interface {
	RecordClassification(source string, category domain.Category)
	RecordRemoteFailure(reason string)
}

type Options struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
	Rules    domain.Rules
	Fallback ports.TextClassifier
	Executor *resilience.Executor
	Recorder Recorder
}

// Client classifies text with a zero-shot inference endpoint and falls back to
// a local classifier whenever the endpoint is unconfigured or fails.
type Client struct {
	endpoint   string
	token      string
	rules      domain.Rules
	fallback   ports.TextClassifier
	executor   *resilience.Executor
	recorder   Recorder
	httpClient *http.Client
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	executor := opts.Executor
	if executor == nil {
		executor = resilience.NewExecutor(resilience.Config{CallTimeout: timeout, BreakerEnabled: false})
	}
	return &Client{
		endpoint:   strings.TrimSpace(opts.Endpoint),
		token:      strings.TrimSpace(opts.Token),
		rules:      opts.Rules,
		fallback:   opts.Fallback,
		executor:   executor,
		recorder:   opts.Recorder,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []domain.Category `json:"candidate_labels"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// outcome is the result of a single remote attempt.
type outcome struct {
	label string
	err   error
}

func (c *Client) Enabled() bool {
	return c.token != ""
}

func (c *Client) Classify(ctx context.Context, text string) domain.Result {
	if !c.Enabled() {
		return c.useFallback(ctx, text)
	}
	return c.decide(ctx, text, c.attempt(ctx, text))
}

func (c *Client) attempt(ctx context.Context, text string) outcome {
	request := zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels: domain.CandidateLabels(),
		},
	}

	var response zeroShotResponse
	err := c.executor.Execute(ctx, operationZeroShot, func(callCtx context.Context) error {
		return c.postJSON(callCtx, request, &response, operationZeroShot)
	}, recordsFailure)
	if err != nil {
		return outcome{err: domain.WrapError(domain.ErrTemporary, operationZeroShot, err)}
	}
	if len(response.Labels) == 0 {
		return outcome{label: string(domain.CategoryUnproductive)}
	}
	return outcome{label: response.Labels[0]}
}

func (c *Client) decide(ctx context.Context, text string, out outcome) domain.Result {
	if out.err != nil {
		reason := failureReason(out.err)
		slog.Error("remote_classification_failed",
			"operation", operationZeroShot,
			"reason", reason,
			"error", out.err,
		)
		if c.recorder != nil {
			c.recorder.RecordRemoteFailure(reason)
		}
		return c.useFallback(ctx, text)
	}

	result := c.rules.Resolve(out.label)
	c.record("remote", result.Category)
	return result
}

func (c *Client) useFallback(ctx context.Context, text string) domain.Result {
	result := c.fallback.Classify(ctx, text)
	c.record("fallback", result.Category)
	return result
}

func (c *Client) record(source string, category domain.Category) {
	if c.recorder != nil {
		c.recorder.RecordClassification(source, category)
	}
}
