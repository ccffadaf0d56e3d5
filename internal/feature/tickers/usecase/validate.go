// Package usecase は銘柄ティッカーの入力解析・検証と、セッションごとの選択管理を実装します。
package usecase

import (
	"regexp"
	"strings"
	"unicode"
)

// tickerPattern はティッカーとして許可される形式（英字1〜5文字）です。
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// isSeparator はカンマとUnicodeの空白文字（NBSP・全角スペース・BOMを含む）を区切りとして扱います。
func isSeparator(r rune) bool {
	return r == ',' || r == '\uFEFF' || unicode.IsSpace(r)
}

// CanonicalTicker は前後の空白を除去し、大文字に正規化します。
func CanonicalTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidTicker は入力が英字1〜5文字のティッカーであるかを判定します。
// 大文字小文字と前後の空白は無視します。
func IsValidTicker(input string) bool {
	cleaned := CanonicalTicker(input)
	if cleaned == "" {
		return false
	}
	return tickerPattern.MatchString(cleaned)
}

// ParseTickerInput は自由入力をカンマ・空白で分割し、大文字化した候補を順番通りに返します。
// 形式の検証は行いません（IsValidTickerの責務）。
func ParseTickerInput(raw string) []string {
	out := []string{}
	for _, tok := range strings.FieldsFunc(raw, isSeparator) {
		t := CanonicalTicker(tok)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterValidTickers は候補を有効・無効に分けます。
// 有効なものは大文字化し、無効なものは入力のまま返します。
func FilterValidTickers(tickers []string) (valid, invalid []string) {
	valid = []string{}
	invalid = []string{}
	for _, t := range tickers {
		if IsValidTicker(t) {
			valid = append(valid, CanonicalTicker(t))
		} else {
			invalid = append(invalid, t)
		}
	}
	return valid, invalid
}

// RemoveDuplicateTickers は大文字小文字を区別せずに重複を除去します。
// existing に含まれるティッカーも除外されます。
func RemoveDuplicateTickers(tickers []string, existing ...string) []string {
	seen := make(map[string]struct{}, len(tickers)+len(existing))
	for _, e := range existing {
		seen[CanonicalTicker(e)] = struct{}{}
	}
	unique := []string{}
	for _, t := range tickers {
		upper := CanonicalTicker(t)
		if _, ok := seen[upper]; ok {
			continue
		}
		seen[upper] = struct{}{}
		unique = append(unique, upper)
	}
	return unique
}
