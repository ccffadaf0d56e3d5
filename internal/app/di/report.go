package di

import (
	"context"
	"fmt"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/adapters/gemini"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/adapters/openai"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/config"
	infrahttp "github.com/ouchsaray/ai-stock-trader/internal/platform/http"
)

// NewReportGenerator creates the report generator for the configured LLM provider.
func NewReportGenerator(ctx context.Context, cfg *config.Config) (usecase.ReportGenerator, error) {
	httpClient := infrahttp.NewHTTPClient(cfg.LLM.Timeout)

	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, httpClient), nil
	case config.ProviderGemini:
		return gemini.NewGeminiGenerator(ctx, gemini.Config{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			BaseURL: cfg.LLM.BaseURL,
		}, httpClient)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
