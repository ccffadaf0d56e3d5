package polygon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/adapters/polygon/dto"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

// maxBodyBytes caps the response size read from the API.
const maxBodyBytes = 4 << 20

// PolygonMarket はPolygon.io外部APIから日足データを取得するMarketDataRepository実装です。
type PolygonMarket struct {
	cfg    Config
	client *http.Client
}

// PolygonMarketがMarketDataRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataRepository = (*PolygonMarket)(nil)

// NewPolygonMarket は指定された設定とHTTPクライアントでPolygonMarketの新しいインスタンスを生成します。
func NewPolygonMarket(cfg Config, client *http.Client) *PolygonMarket {
	return &PolygonMarket{cfg: cfg.withDefaults(), client: client}
}

// GetAggregates は指定期間の日足データを取得します。
// 存在しないティッカーはエラーではなく resultsCount=0 のシリーズとして返ります。
func (p *PolygonMarket) GetAggregates(ctx context.Context, ticker string, r daterange.DateRange) (*entity.PriceSeries, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("adjusted", "true")
	q.Set("sort", "asc")
	q.Set("apiKey", p.cfg.APIKey)

	// URLを生成
	u := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s?%s",
		p.cfg.BaseURL, url.PathEscape(ticker), r.Start, r.End, q.Encode())

	// 1リクエストあたりのタイムアウト
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("polygon: build request: %w", err)
	}

	// リクエストを実行
	res, err := p.client.Do(req)
	if err != nil {
		// url.Error はAPIキーを含むURLを持つため、内側のエラーだけを返す
		var ue *url.Error
		if errors.As(err, &ue) {
			return nil, fmt.Errorf("polygon: request %s: %w", ticker, ue.Err)
		}
		return nil, fmt.Errorf("polygon: request %s: %w", ticker, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("polygon: read body: %w", err)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.AggsResponse
	decodeErr := json.Unmarshal(raw, &body)

	if res.StatusCode >= 400 {
		msg := http.StatusText(res.StatusCode)
		if decodeErr == nil {
			if body.Error != "" {
				msg = body.Error
			} else if body.Message != "" {
				msg = body.Message
			}
		}
		return nil, fmt.Errorf("polygon http %d: %s", res.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("polygon: decode response: %w", decodeErr)
	}
	if body.Status == "ERROR" || body.Status == "NOT_AUTHORIZED" {
		return nil, fmt.Errorf("polygon: %s", firstNonEmpty(body.Error, body.Message, body.Status))
	}

	// 改行や空白を取り除き、プロンプトにそのまま埋め込める形にする
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, fmt.Errorf("polygon: compact response: %w", err)
	}

	bars := make([]entity.Bar, 0, len(body.Results))
	for _, b := range body.Results {
		// ドメインエンティティに変換
		bars = append(bars, entity.Bar{
			Open:         b.Open,
			High:         b.High,
			Low:          b.Low,
			Close:        b.Close,
			Volume:       b.Volume,
			VWAP:         b.VWAP,
			Timestamp:    b.Timestamp,
			Transactions: b.Transactions,
		})
	}

	return &entity.PriceSeries{
		Ticker:       ticker,
		ResultsCount: body.ResultsCount,
		Results:      bars,
		Raw:          compact.Bytes(),
	}, nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
