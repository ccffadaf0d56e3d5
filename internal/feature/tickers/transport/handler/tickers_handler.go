// Package handler はtickersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/transport/http/dto"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/usecase"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/session"
)

// TickersUsecase はティッカー選択のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TickersUsecase interface {
	AddTickers(ctx context.Context, sessionID, raw string) (*usecase.AddOutcome, error)
	ListTickers(ctx context.Context, sessionID string) (*entity.Session, error)
	ResetTickers(ctx context.Context, sessionID string) error
}

// TickersHandler はティッカー選択のHTTPリクエストを処理します。
type TickersHandler struct {
	uc TickersUsecase
}

// NewTickersHandler はTickersHandlerの新しいインスタンスを生成します。
func NewTickersHandler(uc TickersUsecase) *TickersHandler {
	return &TickersHandler{uc: uc}
}

// List は現在の選択と取得期間を返します。
//
// エンドポイント: GET /v1/tickers
func (h *TickersHandler) List(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	s, err := h.uc.ListTickers(c.Request.Context(), sid)
	if err != nil {
		slog.Error("セッションの取得に失敗", "error", err, "session", sid)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load session"})
		return
	}

	c.JSON(http.StatusOK, dto.SelectionResponse{
		Tickers:   nonNil(s.Selection.Tickers),
		Max:       s.Selection.Max,
		StartDate: s.Range.Start,
		EndDate:   s.Range.End,
	})
}

// Add は自由入力のティッカーを選択に追加します。
//
// エンドポイント: POST /v1/tickers
// Content-Type: application/json
func (h *TickersHandler) Add(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req dto.AddTickersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("ティッカー追加リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Please enter at least one valid ticker symbol."})
		return
	}

	out, err := h.uc.AddTickers(c.Request.Context(), sid, req.Input)
	if err != nil {
		var inErr *usecase.InputError
		switch {
		case errors.As(err, &inErr) && errors.Is(err, usecase.ErrCapacity):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: inErr.Message})
		case errors.As(err, &inErr):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: inErr.Message})
		default:
			slog.Error("ティッカーの追加に失敗", "error", err, "session", sid)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to update tickers"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AddTickersResponse{
		Tickers:      nonNil(out.Tickers),
		Max:          out.Max,
		Added:        nonNil(out.Result.Added),
		Invalid:      nonNil(out.Result.Invalid),
		LimitReached: out.Result.LimitReached,
		Warnings:     nonNil(out.Warnings),
	})
}

// Reset は選択を空にします。
//
// エンドポイント: DELETE /v1/tickers
func (h *TickersHandler) Reset(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.uc.ResetTickers(c.Request.Context(), sid); err != nil {
		slog.Error("ティッカーのリセットに失敗", "error", err, "session", sid)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to reset tickers"})
		return
	}
	c.Status(http.StatusNoContent)
}

// sessionID はミドルウェアが設定したセッションIDを取り出します。
func sessionID(c *gin.Context) (string, bool) {
	sid := session.ID(c)
	if sid == "" {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "session unavailable"})
		return "", false
	}
	return sid, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
