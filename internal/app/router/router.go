// Package router assembles the gin engine.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	reporthandler "github.com/ouchsaray/ai-stock-trader/internal/feature/report/transport/handler"
	tickershandler "github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/transport/handler"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/http/handler"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/session"
)

// NewRouter はルーティングを設定したginエンジンを返します。
// allowedOrigins が空の場合、CORSは設定しません。
func NewRouter(tickers *tickershandler.TickersHandler, report *reporthandler.ReportHandler,
	ready *handler.ReadyHandler, sessionMW gin.HandlerFunc, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	// ブラウザの画面を別オリジンで配信する場合
	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", session.HeaderName},
			ExposeHeaders:    []string{session.HeaderName},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// セッション不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", ready.Ready)

	// セッションが必要なルート
	v1 := r.Group("/v1")
	// → リクエストごとにセッションIDを割り当てる
	v1.Use(sessionMW)
	{
		v1.GET("/tickers", tickers.List)
		v1.POST("/tickers", tickers.Add)
		v1.DELETE("/tickers", tickers.Reset)
		v1.POST("/report", report.Create)
	}

	return r
}
