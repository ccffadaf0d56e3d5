// Package openai はOpenAI Chat Completions APIを使用したレポート生成クライアントを提供します。
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
)

const (
	// DefaultBaseURL はOpenAI APIのデフォルトURLです。
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel はデフォルトのモデルです。
	DefaultModel = "gpt-3.5-turbo"
	// DefaultTimeout はレポート生成1回あたりのタイムアウトです。
	DefaultTimeout = 60 * time.Second

	quotaCode    = "insufficient_quota"
	providerName = "openai"
	maxBodyBytes = 4 << 20
)

// Config holds configuration for the OpenAI client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client はChat Completions APIでレポートを生成します。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがReportGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.ReportGenerator = (*Client)(nil)

// NewClient はClientの新しいインスタンスを生成します。空の設定値はデフォルト値になります。
func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg, client: client}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Generate はシステム指示とユーザー入力を1回送信し、応答本文を返します。
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	reqBody, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: encode request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("openai: read body: %w", err)
	}

	var body chatResponse
	decodeErr := json.Unmarshal(raw, &body)

	// エラー本文はステータスコードに関係なく優先する
	if decodeErr == nil && body.Error != nil {
		if body.Error.Code == quotaCode {
			return "", fmt.Errorf("openai: %s: %w", body.Error.Message, usecase.ErrQuotaExceeded)
		}
		return "", &usecase.ProviderError{
			Provider:   providerName,
			StatusCode: res.StatusCode,
			Code:       body.Error.Code,
			Message:    body.Error.Message,
		}
	}
	if res.StatusCode >= 300 {
		return "", &usecase.ProviderError{
			Provider:   providerName,
			StatusCode: res.StatusCode,
			Message:    fmt.Sprintf("openai http %d", res.StatusCode),
		}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("openai: decode response: %v: %w", decodeErr, usecase.ErrMalformedResponse)
	}
	if len(body.Choices) == 0 || body.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices: %w", usecase.ErrMalformedResponse)
	}

	return body.Choices[0].Message.Content, nil
}
