// Package usecase はレポート生成のビジネスロジックを提供します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/domain/entity"
	tickers "github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/markup"
	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

// MarketDataRepository は日足の株価データの取得元を抽象化します。
type MarketDataRepository interface {
	// GetAggregates は指定期間の日足データを返します。
	// データが存在しない場合もエラーではなく、件数0のシリーズを返します。
	GetAggregates(ctx context.Context, ticker string, r daterange.DateRange) (*entity.PriceSeries, error)
}

// ReportGenerator はレポート生成モデルの呼び出しを抽象化します。
// 実装はクォータ超過を ErrQuotaExceeded、APIエラーを *ProviderError、
// 本文のない応答を ErrMalformedResponse として返します。
type ReportGenerator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// SessionLoader はセッションの選択状態を読み込みます。
type SessionLoader interface {
	Session(ctx context.Context, id string) (*tickers.Session, error)
}

// ReportOutcome はレポートと利用者向けの警告です。
type ReportOutcome struct {
	Report   *entity.Report
	Warnings []string
}

// ReportUsecase は株価データの取得からレポート生成までを実行します。
type ReportUsecase struct {
	sessions SessionLoader
	market   MarketDataRepository
	gen      ReportGenerator
	now      func() time.Time
}

// NewReportUsecase はReportUsecaseの新しいインスタンスを生成します。
// sessions は CreateReport を使わない場合 nil でも構いません。
func NewReportUsecase(sessions SessionLoader, market MarketDataRepository, gen ReportGenerator) *ReportUsecase {
	return &ReportUsecase{sessions: sessions, market: market, gen: gen, now: time.Now}
}

// GenerateReport は有効な株価データからレポートを1回の呼び出しで生成します。再試行はしません。
func (u *ReportUsecase) GenerateReport(ctx context.Context, valid []entity.SeriesResult) (*entity.Report, error) {
	system, user := BuildReportPrompt(valid)

	text, err := u.gen.Generate(ctx, system, user)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrMalformedResponse
	}

	names := make([]string, 0, len(valid))
	for _, v := range valid {
		names = append(names, v.Ticker)
	}
	return &entity.Report{
		Text:        text,
		HTML:        markup.RenderReport(text),
		Tickers:     names,
		GeneratedAt: u.now().UTC(),
	}, nil
}

// BuildReport は指定ティッカーのデータを取得し、レポートを生成します。
func (u *ReportUsecase) BuildReport(ctx context.Context, tickerList []string, r daterange.DateRange) (*ReportOutcome, error) {
	fetched, err := u.FetchAll(ctx, tickerList, r)
	if err != nil {
		return nil, err
	}

	report, err := u.GenerateReport(ctx, fetched.Valid)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	out := &ReportOutcome{Report: report, Warnings: []string{}}
	if fetched.Warning != "" {
		out.Warnings = append(out.Warnings, fetched.Warning)
	}
	slog.Info("report generated", "tickers", report.Tickers, "skipped", fetched.Invalid, "chars", len(report.Text))
	return out, nil
}

// CreateReport はセッションの選択と取得期間でレポートを生成します。
// 選択はどの段階で失敗しても変更されません。
func (u *ReportUsecase) CreateReport(ctx context.Context, sessionID string) (*ReportOutcome, error) {
	if u.sessions == nil {
		return nil, errors.New("session loader not configured")
	}
	s, err := u.sessions.Session(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s.Selection.Len() == 0 {
		return nil, ErrNoTickers
	}
	return u.BuildReport(ctx, append([]string{}, s.Selection.Tickers...), s.Range)
}
