package usecase

import "github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/domain/entity"

// CheckTickerLimit は現在の件数と追加希望件数から、追加可能な件数を算出します。
// AvailableSlots は負の値になり得ますが、CanAdd は0未満になりません。
func CheckTickerLimit(currentCount, requestedCount, max int) entity.LimitCheck {
	available := max - currentCount
	canAdd := min(requestedCount, available)
	if canAdd < 0 {
		canAdd = 0
	}
	return entity.LimitCheck{
		CanAdd:         canAdd,
		Exceeded:       requestedCount > available,
		AvailableSlots: available,
	}
}

// AddCandidates は候補を順番に選択へ追加します。
//
//   - 容量に達した時点で残りの処理を打ち切り、LimitReached を立てる
//   - 形式が不正な候補は Invalid に記録して続行
//   - 既に選択済みの候補は黙ってスキップ
func AddCandidates(sel *entity.Selection, candidates []string) entity.AddResult {
	res := entity.AddResult{Added: []string{}, Invalid: []string{}}
	for _, c := range candidates {
		if sel.IsFull() {
			res.LimitReached = true
			break
		}
		if !IsValidTicker(c) {
			res.Invalid = append(res.Invalid, c)
			continue
		}
		t := CanonicalTicker(c)
		if sel.Contains(t) {
			continue
		}
		sel.Tickers = append(sel.Tickers, t)
		res.Added = append(res.Added, t)
	}
	return res
}
