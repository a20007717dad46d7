package harvest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nndjoli/eqty/internal/api"
	"github.com/nndjoli/eqty/internal/model"
	"github.com/nndjoli/eqty/internal/session"
)

// discover pages through the screener for every configured region and
// returns the unique tickers in first-seen order, together with the
// identity attributes each one was discovered with.
//
// The reported total can drift between pages while the universe
// changes underneath the paginator. Drift is logged and tolerated; the
// latest observed total wins. A region whose pagination fails is
// logged and skipped so the remaining regions still harvest, except
// for session acquisition failure, which is terminal.
func discover(ctx context.Context, client QuoteAPI, regions []string, pageSize int, logger *slog.Logger) ([]string, map[string]model.TickerInfo, error) {
	var symbols []string
	infos := make(map[string]model.TickerInfo)

	for _, region := range regions {
		if err := discoverRegion(ctx, client, region, pageSize, &symbols, infos, logger); err != nil {
			if errors.Is(err, session.ErrAuthUnavailable) || ctx.Err() != nil {
				return symbols, infos, err
			}
			logger.Error("region discovery failed, skipping",
				"region", region,
				"error", err)
		}
	}

	return symbols, infos, nil
}

func discoverRegion(ctx context.Context, client QuoteAPI, region string, pageSize int, symbols *[]string, infos map[string]model.TickerInfo, logger *slog.Logger) error {
	offset := 0
	seen := 0
	total := 0

	for {
		page, err := client.Screen(ctx, api.ScreenerQuery{
			Region: region,
			Offset: offset,
			Size:   pageSize,
		})
		if err != nil {
			return err
		}

		if total != 0 && page.Total != total {
			logger.Warn("screener total drifted between pages",
				"region", region,
				"previous", total,
				"observed", page.Total)
		}
		total = page.Total

		for _, t := range page.Tickers {
			if _, ok := infos[t.Ticker]; ok {
				continue
			}
			infos[t.Ticker] = t
			*symbols = append(*symbols, t.Ticker)
		}
		seen += len(page.Tickers)

		if len(page.Tickers) == 0 || len(page.Tickers) < pageSize || seen >= total {
			break
		}
		offset += pageSize
	}

	if seen != total {
		logger.Warn("discovery count differs from reported total",
			"region", region,
			"seen", seen,
			"total", total)
	}
	logger.Info("region discovered",
		"region", region,
		"tickers", seen)
	return nil
}
