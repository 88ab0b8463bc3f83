package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/email-analyzer/internal/config"
	"github.com/kirillkom/email-analyzer/internal/core/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		APIPort:            "8080",
		LogLevel:           "info",
		StaticDir:          t.TempDir(),
		CORSAllowedOrigins: "*",
		HFModelURL:         config.DefaultHFModelURL,
		HFTimeoutSeconds:   60,
	}
}

func TestNewWiresFallbackOnlyMode(t *testing.T) {
	app, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app.OpenAPI)

	got, err := app.AnalyzeUC.Analyze(context.Background(), domain.AnalyzeRequest{Text: "Solicito atualização"})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryProductive, got.Category)

	res := httptest.NewRecorder()
	app.Handler().Handler().ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, res.Body.String(), `source="fallback"`)
}

func TestNewLoadsRulesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClassifierRulesPath = filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(cfg.ClassifierRulesPath, []byte("keywords: [reembolso]\n"), 0o600))

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)

	got, err := app.AnalyzeUC.Analyze(context.Background(), domain.AnalyzeRequest{Text: "Quero um reembolso"})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryProductive, got.Category)

	got, err = app.AnalyzeUC.Analyze(context.Background(), domain.AnalyzeRequest{Text: "Meu pedido"})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryUnproductive, got.Category)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.HFTimeoutSeconds = 0

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}
