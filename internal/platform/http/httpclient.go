// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
)

// secretParams はログに出力しないクエリパラメータです。
var secretParams = []string{"apiKey", "apikey", "api_key", "key"}

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト
//   - MaxIdleConns / IdleConnTimeout: 接続の再利用
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること。
// 各リクエストはAPIキーを伏せた上でDEBUGレベルで記録されます。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: &loggingTransport{next: t}}
}

// loggingTransport は外部APIへのリクエストの所要時間と結果を記録します。
type loggingTransport struct {
	next http.RoundTripper
}

func (l *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := l.next.RoundTrip(req)
	elapsed := time.Since(start)

	target := RedactURL(req.URL)
	if err != nil {
		slog.Debug("outbound request failed", "method", req.Method, "url", target, "elapsed", elapsed, "error", err)
		return nil, err
	}
	slog.Debug("outbound request", "method", req.Method, "url", target, "status", res.StatusCode, "elapsed", elapsed)
	return res, nil
}

// RedactURL はAPIキーなどのクエリパラメータを伏せたURL文字列を返します。
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	cp := *u
	q := cp.Query()
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
		}
	}
	cp.RawQuery = q.Encode()
	return cp.String()
}
