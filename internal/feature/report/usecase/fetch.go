package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

// 検証失敗の理由
const (
	ReasonNoData   = "No data received"
	ReasonNotFound = "Ticker not found or has no data"
)

// FetchOutcome は全ティッカーの取得結果です。
type FetchOutcome struct {
	Valid   []entity.SeriesResult // 収集順
	Invalid []string              // データが取得できなかったティッカー
	Warning string                // 一部が無効だった場合の通知
}

// ValidateStockData は取得した株価データが利用可能かを判定します。
// 利用できない場合は理由を返します。
func ValidateStockData(s *entity.PriceSeries) (bool, string) {
	if s == nil {
		return false, ReasonNoData
	}
	if s.ResultsCount == 0 || len(s.Results) == 0 {
		return false, ReasonNotFound
	}
	return true, ""
}

// FetchSeries は1つのティッカーの株価データを取得し、検証結果と合わせて返します。
// 取得時のエラーはここで吸収し、無効な結果として扱います。
func (u *ReportUsecase) FetchSeries(ctx context.Context, ticker string, r daterange.DateRange) entity.SeriesResult {
	s, err := u.market.GetAggregates(ctx, ticker, r)
	if err != nil {
		slog.Warn("failed to fetch price series", "ticker", ticker, "error", err)
		return entity.SeriesResult{Ticker: ticker, Reason: err.Error()}
	}
	if ok, reason := ValidateStockData(s); !ok {
		slog.Info("price series rejected", "ticker", ticker, "reason", reason)
		return entity.SeriesResult{Ticker: ticker, Reason: reason}
	}
	return entity.SeriesResult{Ticker: ticker, Series: s}
}

// FetchAll はティッカーを1つずつ順番に取得します。
// すべて無効なら *NotFoundError を返し、一部のみ無効なら警告付きで成功します。
func (u *ReportUsecase) FetchAll(ctx context.Context, tickers []string, r daterange.DateRange) (*FetchOutcome, error) {
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}

	out := &FetchOutcome{Valid: []entity.SeriesResult{}, Invalid: []string{}}
	for _, t := range tickers {
		// リクエストが取り消された場合は残りを無効扱いにせず中断する
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch aborted: %w", err)
		}
		res := u.FetchSeries(ctx, t, r)
		if res.Valid() {
			out.Valid = append(out.Valid, res)
		} else {
			out.Invalid = append(out.Invalid, t)
		}
	}
	// 最後の取得中に取り消された場合も not found ではなく中断として返す
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch aborted: %w", err)
	}

	if len(out.Valid) == 0 {
		return nil, &NotFoundError{Tickers: out.Invalid}
	}
	if len(out.Invalid) > 0 {
		out.Warning = fmt.Sprintf("Note: %q not found. Generating report for valid tickers...", strings.Join(out.Invalid, ", "))
		slog.Warn("invalid tickers skipped", "tickers", out.Invalid)
	}
	return out, nil
}
