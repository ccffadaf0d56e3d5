package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/domain/entity"
	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

// SessionRepository はセッション状態の保存先を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SessionRepository interface {
	// Find は指定IDのセッションを返します。存在しない場合は ErrSessionNotFound を返します。
	Find(ctx context.Context, id string) (*entity.Session, error)
	// Save はセッションを保存（上書き）します。
	Save(ctx context.Context, session *entity.Session) error
	// Delete はセッションを削除します。存在しなくてもエラーにはなりません。
	Delete(ctx context.Context, id string) error
}

// Config はティッカー選択のポリシーです。
type Config struct {
	MaxTickers   int              // 選択できる最大件数
	StartDaysAgo int              // 取得期間の開始（N日前）
	EndDaysAgo   int              // 取得期間の終了（N日前）
	Now          func() time.Time // テスト用の時計。nilなら time.Now
}

// AddOutcome はティッカー追加の結果です。
type AddOutcome struct {
	Tickers  []string         // 追加後の選択
	Max      int              // 選択の上限
	Result   entity.AddResult // 候補ごとの処理結果
	Warnings []string         // 利用者に表示する警告
}

// TickersUsecase はセッションごとのティッカー選択を管理します。
type TickersUsecase struct {
	repo SessionRepository
	cfg  Config

	// mu は読み込み・変更・保存をひとまとまりにします。
	mu sync.Mutex
}

// NewTickersUsecase はTickersUsecaseの新しいインスタンスを生成します。
// 不正な設定値はデフォルト値に置き換えます。
func NewTickersUsecase(repo SessionRepository, cfg Config) *TickersUsecase {
	if cfg.MaxTickers <= 0 {
		cfg.MaxTickers = entity.DefaultMaxTickers
	}
	if cfg.EndDaysAgo < 0 || cfg.StartDaysAgo <= cfg.EndDaysAgo {
		cfg.StartDaysAgo = daterange.DefaultStartDaysAgo
		cfg.EndDaysAgo = daterange.DefaultEndDaysAgo
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &TickersUsecase{repo: repo, cfg: cfg}
}

// Session は指定IDのセッションを返します。存在しない場合は新しく作成して保存します。
// 取得期間はセッション作成時に一度だけ計算されます。
func (u *TickersUsecase) Session(ctx context.Context, id string) (*entity.Session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loadOrCreate(ctx, id)
}

func (u *TickersUsecase) loadOrCreate(ctx context.Context, id string) (*entity.Session, error) {
	s, err := u.repo.Find(ctx, id)
	switch {
	case err == nil && !s.Range.IsZero():
		return s, nil
	case err == nil:
		// 取得期間を持たないレコードは壊れているため作り直す
		slog.Warn("session without date range discarded", "session", id)
		if err := u.repo.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("delete session: %w", err)
		}
	case !errors.Is(err, ErrSessionNotFound):
		return nil, fmt.Errorf("load session: %w", err)
	}

	now := u.cfg.Now()
	r, err := daterange.New(now, u.cfg.StartDaysAgo, u.cfg.EndDaysAgo)
	if err != nil {
		return nil, err
	}
	s = entity.NewSession(id, u.cfg.MaxTickers, r, now)
	if err := u.repo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	slog.Debug("session created", "session", id, "start", r.Start, "end", r.End)
	return s, nil
}

// AddTickers は自由入力を解析し、セッションの選択に追加します。
//
// 候補が1つもない場合、選択が既に満杯の場合、すべての候補が不正な場合は
// InputError を返し、選択は変更しません。1件でも追加できた場合は保存し、
// 不正な候補や上限到達は警告として返します。
func (u *TickersUsecase) AddTickers(ctx context.Context, sessionID, raw string) (*AddOutcome, error) {
	candidates := ParseTickerInput(raw)
	if len(candidates) == 0 {
		return nil, &InputError{Err: ErrInvalidInput, Message: "Please enter at least one valid ticker symbol."}
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	s, err := u.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel := &s.Selection

	check := CheckTickerLimit(sel.Len(), len(candidates), sel.Max)
	if check.AvailableSlots <= 0 {
		return nil, &InputError{Err: ErrCapacity, Message: fmt.Sprintf("Maximum %d tickers allowed per request.", sel.Max)}
	}

	res := AddCandidates(sel, candidates)

	if len(res.Invalid) > 0 && len(res.Added) == 0 {
		return nil, &InputError{
			Err:     ErrInvalidInput,
			Message: fmt.Sprintf("Invalid ticker(s): %s. Use 1-5 letters (e.g., TSLA).", strings.Join(res.Invalid, ", ")),
		}
	}

	if len(res.Added) > 0 {
		if err := u.repo.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	out := &AddOutcome{
		Tickers:  append([]string{}, sel.Tickers...),
		Max:      sel.Max,
		Result:   res,
		Warnings: []string{},
	}
	if len(res.Added) > 0 && len(res.Invalid) > 0 {
		out.Warnings = append(out.Warnings, fmt.Sprintf("Skipped invalid ticker(s): %s.", strings.Join(res.Invalid, ", ")))
	}
	if res.LimitReached {
		out.Warnings = append(out.Warnings, fmt.Sprintf("Only %d of %d ticker(s) added. Maximum %d reached.", len(res.Added), len(candidates), sel.Max))
	}
	if len(res.Added) == 0 && len(res.Invalid) == 0 && !res.LimitReached {
		out.Warnings = append(out.Warnings, "No new tickers added; all were already selected.")
	}

	slog.Info("tickers added", "session", sessionID, "added", res.Added, "invalid", res.Invalid, "limit_reached", res.LimitReached)
	return out, nil
}

// ListTickers は現在のセッション状態を返します。
func (u *TickersUsecase) ListTickers(ctx context.Context, sessionID string) (*entity.Session, error) {
	return u.Session(ctx, sessionID)
}

// ResetTickers は選択を空にします。取得期間はセッションが続く限り維持されます。
func (u *TickersUsecase) ResetTickers(ctx context.Context, sessionID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, err := u.repo.Find(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	s.Selection.Clear()
	if err := u.repo.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
