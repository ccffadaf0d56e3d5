// Package handler はreportフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/transport/http/dto"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/session"
)

// ReportUsecase はレポート生成のユースケースインターフェースを定義します。
type ReportUsecase interface {
	CreateReport(ctx context.Context, sessionID string) (*usecase.ReportOutcome, error)
}

// ReportHandler はレポート生成のHTTPリクエストを処理します。
type ReportHandler struct {
	uc ReportUsecase
}

// NewReportHandler はReportHandlerの新しいインスタンスを生成します。
func NewReportHandler(uc ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Create はセッションで選択中のティッカーのレポートを生成します。
//
// エンドポイント: POST /v1/report
//
// レスポンス:
//   - 200: レポート本文とHTML、警告
//   - 400: ティッカー未選択
//   - 422: すべてのティッカーでデータなし
//   - 429: レポート生成APIのクォータ超過
//   - 502: その他の外部APIエラー
func (h *ReportHandler) Create(c *gin.Context) {
	sid := session.ID(c)
	if sid == "" {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "session unavailable"})
		return
	}

	out, err := h.uc.CreateReport(c.Request.Context(), sid)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.Error("レポート生成に失敗", "error", err, "session", sid)
		} else {
			slog.Warn("レポート生成を中止", "error", err, "session", sid)
		}
		c.JSON(status, dto.ErrorResponse{Error: usecase.UserMessage(err)})
		return
	}

	warnings := out.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, dto.ReportResponse{
		Tickers:     out.Report.Tickers,
		Report:      out.Report.Text,
		ReportHTML:  out.Report.HTML,
		Warnings:    warnings,
		GeneratedAt: out.Report.GeneratedAt,
	})
}

// statusFor はエラーをHTTPステータスに対応付けます。
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNoTickers):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrAllTickersInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled):
		// クライアントが切断した場合。nginxの慣例に合わせて499
		return 499
	default:
		return http.StatusBadGateway
	}
}
