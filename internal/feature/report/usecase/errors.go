package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTickers はティッカーが1つも選択されていない場合に返されます。
	ErrNoTickers = errors.New("no tickers selected")
	// ErrAllTickersInvalid はすべてのティッカーでデータが取得できなかった場合に返されます。
	ErrAllTickersInvalid = errors.New("all tickers invalid")
	// ErrQuotaExceeded はレポート生成APIの利用上限に達した場合に返されます。
	ErrQuotaExceeded = errors.New("report provider quota exceeded")
	// ErrMalformedResponse はレポート生成APIの応答に本文が含まれない場合に返されます。
	ErrMalformedResponse = errors.New("malformed report response")
)

// NotFoundError はデータを取得できなかったティッカーの一覧を保持します。
// errors.Is(err, ErrAllTickersInvalid) で判定できます。
type NotFoundError struct {
	Tickers []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Ticker(s) not found: %s. Please check the symbol(s) and try again.", strings.Join(e.Tickers, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrAllTickersInvalid }

// ProviderError はレポート生成APIが返したエラーです。Message はAPIの文言そのままです。
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code=%s, status=%d)", e.Provider, e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status=%d)", e.Provider, e.Message, e.StatusCode)
}

// UserMessage は利用者に表示するエラーメッセージを返します。
// 内部の詳細はログにのみ出力し、ここでは返しません。
func UserMessage(err error) string {
	var nf *NotFoundError
	var pe *ProviderError
	switch {
	case errors.As(err, &nf):
		return nf.Error()
	case errors.Is(err, ErrNoTickers):
		return "Add at least one ticker before generating a report."
	case errors.Is(err, ErrQuotaExceeded):
		return "Report provider quota exceeded. Please check your billing settings."
	case errors.As(err, &pe) && pe.Message != "":
		return pe.Message
	case errors.Is(err, ErrMalformedResponse):
		return "The report provider returned an empty response. Please try again."
	default:
		return "Error generating report. Please try again."
	}
}
