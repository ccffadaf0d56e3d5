// Command report generates a prediction report for the tickers given on the
// command line and prints it to stdout.
//
//	report [-html] TSLA PLTR ASTS
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ouchsaray/ai-stock-trader/internal/app/di"
	reportusecase "github.com/ouchsaray/ai-stock-trader/internal/feature/report/usecase"
	tickersusecase "github.com/ouchsaray/ai-stock-trader/internal/feature/tickers/usecase"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/config"
	"github.com/ouchsaray/ai-stock-trader/internal/platform/logger"
	"github.com/ouchsaray/ai-stock-trader/internal/shared/daterange"
)

func main() {
	asHTML := flag.Bool("html", false, "print the rendered HTML instead of the raw text")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fail("failed to load config", err)
	}
	// 標準出力はレポート用に空けておく
	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: "text"}, os.Stderr)
	if err := cfg.Validate(); err != nil {
		fail("invalid config", err)
	}

	tickers := selectTickers(flag.Args(), cfg.Tickers.Max)
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "usage: report [-html] TICKER [TICKER...]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	r, err := daterange.New(time.Now(), cfg.Dates.StartDaysAgo, cfg.Dates.EndDaysAgo)
	if err != nil {
		fail("invalid date range", err)
	}

	generator, err := di.NewReportGenerator(ctx, cfg)
	if err != nil {
		fail("failed to create report generator", err)
	}
	uc := reportusecase.NewReportUsecase(nil, di.NewMarket(cfg, nil), generator)

	out, err := uc.BuildReport(ctx, tickers, r)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fail("report timed out", err)
		}
		fmt.Fprintln(os.Stderr, reportusecase.UserMessage(err))
		slog.Debug("report failed", "error", err)
		os.Exit(1)
	}

	for _, w := range out.Warnings {
		fmt.Fprintln(os.Stderr, w)
	}
	if *asHTML {
		fmt.Println(out.Report.HTML)
	} else {
		fmt.Println(out.Report.Text)
	}
	slog.Info("report ok", "tickers", out.Report.Tickers, "start", r.Start, "end", r.End)
}

// selectTickers は引数からティッカーを解析し、不正・重複を除いて上限までに絞ります。
// 入力の検証はHTTPと同じ規則で行います。
func selectTickers(args []string, max int) []string {
	valid, invalid := tickersusecase.FilterValidTickers(tickersusecase.ParseTickerInput(strings.Join(args, " ")))
	if len(invalid) > 0 {
		slog.Warn("skipping invalid tickers", "tickers", invalid)
	}
	unique := tickersusecase.RemoveDuplicateTickers(valid)
	check := tickersusecase.CheckTickerLimit(0, len(unique), max)
	if check.Exceeded {
		slog.Warn("ticker limit reached", "max", max, "using", unique[:check.CanAdd])
		unique = unique[:check.CanAdd]
	}
	return unique
}

func fail(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
