package usecase

import (
	"strings"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/report/domain/entity"
)

// SystemPrompt はレポート生成モデルへの固定の指示です。
const SystemPrompt = `You are a stock market analyst. Analyze the provided stock data and generate a prediction report for EACH stock separately.

For EACH stock ticker, include:
- Stock name/ticker as a header
- Brief summary of recent price movements
- Key trends identified
- Short-term prediction (next few days)
- Risk assessment

Make sure to provide a separate analysis section for each stock. Keep the response clear and easy to understand for non-experts.`

// UserPromptPrefix は株価データの前に付ける依頼文です。
const UserPromptPrefix = "Analyze the following stock data and provide a separate prediction report for each stock:\n\n"

const blockSeparator = "\n\n---\n\n"

// BuildReportPrompt は有効なティッカーの株価データからプロンプトを組み立てます。
func BuildReportPrompt(valid []entity.SeriesResult) (system, user string) {
	blocks := make([]string, 0, len(valid))
	for _, v := range valid {
		var data string
		if v.Series != nil {
			data = string(v.Series.Raw)
		}
		blocks = append(blocks, "Stock: "+v.Ticker+"\nData: "+data)
	}
	return SystemPrompt, UserPromptPrefix + strings.Join(blocks, blockSeparator)
}
