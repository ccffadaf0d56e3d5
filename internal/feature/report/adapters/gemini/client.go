// Package gemini はGoogle Gemini APIを使用したレポート生成クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	providerName     = "gemini"
	statusExhausted  = "RESOURCE_EXHAUSTED"
	codeTooManyCalls = http.StatusTooManyRequests
)

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // 空の場合はSDKのデフォルト
}

// GeminiGenerator はGoogle Gemini APIを使用してレポートを生成します。
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// GeminiGeneratorがReportGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.ReportGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator はAPIキーを使用してGeminiGeneratorの新しいインスタンスを生成します。
func NewGeminiGenerator(ctx context.Context, cfg Config, httpClient *http.Client) (*GeminiGenerator, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate はシステム指示付きでプロンプトを1回送信し、生成されたテキストを返します。
func (g *GeminiGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), config)
	if err != nil {
		return "", classify(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: no content generated: %w", usecase.ErrMalformedResponse)
	}
	return text, nil
}

// classify はSDKのエラーをユースケースのエラーに変換します。
func classify(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok {
		return fmt.Errorf("gemini API request failed: %w", err)
	}
	if apiErr.Code == codeTooManyCalls || apiErr.Status == statusExhausted {
		return fmt.Errorf("gemini: %s: %w", apiErr.Message, usecase.ErrQuotaExceeded)
	}
	return &usecase.ProviderError{
		Provider:   providerName,
		StatusCode: apiErr.Code,
		Code:       apiErr.Status,
		Message:    apiErr.Message,
	}
}

// asAPIError はSDKが値・ポインタのどちらで返しても APIError を取り出します。
func asAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}
