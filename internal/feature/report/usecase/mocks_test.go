package usecase

import (
	"context"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/domain/entity"
	tickers "github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

// mockMarket はMarketDataRepositoryのモック実装です。
type mockMarket struct {
	GetAggregatesFunc func(ctx context.Context, ticker string, r daterange.DateRange) (*entity.PriceSeries, error)
	Calls             []string
}

func (m *mockMarket) GetAggregates(ctx context.Context, ticker string, r daterange.DateRange) (*entity.PriceSeries, error) {
	m.Calls = append(m.Calls, ticker)
	if m.GetAggregatesFunc != nil {
		return m.GetAggregatesFunc(ctx, ticker, r)
	}
	return nil, nil
}

// mockGenerator はReportGeneratorのモック実装です。
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, system, user string) (string, error)
	Calls        int
	LastSystem   string
	LastUser     string
}

func (m *mockGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	m.Calls++
	m.LastSystem = system
	m.LastUser = user
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, user)
	}
	return "", nil
}

// mockSessions はSessionLoaderのモック実装です。
type mockSessions struct {
	SessionFunc func(ctx context.Context, id string) (*tickers.Session, error)
}

func (m *mockSessions) Session(ctx context.Context, id string) (*tickers.Session, error) {
	if m.SessionFunc != nil {
		return m.SessionFunc(ctx, id)
	}
	return nil, nil
}

// series はテスト用の有効な株価データを生成します。
func series(ticker string) *entity.PriceSeries {
	return &entity.PriceSeries{
		Ticker:       ticker,
		ResultsCount: 1,
		Results:      []entity.Bar{{Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100, Timestamp: 1741305600000}},
		Raw:          []byte(`{"ticker":"` + ticker + `","resultsCount":1}`),
	}
}

// emptySeries は存在しないティッカーに対する応答を模したデータです。
func emptySeries(ticker string) *entity.PriceSeries {
	return &entity.PriceSeries{Ticker: ticker, ResultsCount: 0, Raw: []byte(`{"resultsCount":0}`)}
}
