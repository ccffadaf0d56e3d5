package cache

import (
	"time"
)

// RefreshHour は日足データが確定したとみなす時刻（ニューヨーク時間）です。
const RefreshHour = 8

// MarketLocation は米国市場のタイムゾーンを返します。
// tzdataが無い環境ではUTCにフォールバックします。
func MarketLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}

// TimeUntilNext は now から次の hour 時（loc基準）までの期間を返します。
// ちょうどその時刻の場合は翌日までの期間を返します。
func TimeUntilNext(loc *time.Location, hour int, now time.Time) time.Duration {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, loc)

	// 今日の指定時刻が既に過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, 0, 0, 0, loc)
	}
	return next.Sub(now)
}

// TimeUntilNextRefresh は次の午前8時（ニューヨーク時間）までの期間を返します。
func TimeUntilNextRefresh(now time.Time) time.Duration {
	return TimeUntilNext(MarketLocation(), RefreshHour, now)
}
