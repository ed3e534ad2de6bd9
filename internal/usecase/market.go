package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/catalog"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	domrepo "github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/service/cache"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/tabular"
	xhttp "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/http"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/util"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 3650
	defaultMoversCount = 5
	maxMoversCount     = 50
)

// MarketUseCase provides business logic for serving market data. Quote and
// summary reads go through the cache so repeated polls within the TTL see one
// consistent reading.
type MarketUseCase struct {
	source   domrepo.MarketSource
	cache    cache.BytesCache
	metrics  domrepo.Metrics
	cacheTTL time.Duration
}

func NewMarketUseCase(source domrepo.MarketSource, c cache.BytesCache, m domrepo.Metrics, cacheTTL time.Duration) *MarketUseCase {
	return &MarketUseCase{source: source, cache: c, metrics: m, cacheTTL: cacheTTL}
}

func (uc *MarketUseCase) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	key := "quote:" + catalog.Normalize(symbol)
	if uc.cache != nil {
		if b, ok, err := uc.cache.GetBytes(key); err == nil && ok {
			var q models.Quote
			if json.Unmarshal(b, &q) == nil {
				return &q, nil
			}
		}
	}

	start := time.Now()
	q, err := uc.source.Quote(ctx, symbol)
	if err != nil {
		uc.recordError("quote")
		return nil, translateErr(err)
	}
	if uc.metrics != nil {
		uc.metrics.RecordQuote(q.Symbol)
		uc.metrics.RecordLastPrice(q.Symbol, q.Price)
		uc.metrics.RecordLatency("quote", time.Since(start).Seconds())
	}

	if uc.cache != nil {
		if b, err := json.Marshal(q); err == nil {
			_ = uc.cache.SetBytes(key, b, uc.cacheTTL)
		}
	}
	return q, nil
}

// GetWatchlist resolves a comma-separated symbol list. Unknown symbols are
// skipped and reported, never fatal.
func (uc *MarketUseCase) GetWatchlist(ctx context.Context, symbolsCSV string) (*models.WatchlistResult, error) {
	res := &models.WatchlistResult{Quotes: []models.Quote{}, Skipped: []string{}}

	for _, sym := range util.SplitCSV(symbolsCSV) {
		q, err := uc.GetQuote(ctx, sym)
		if err != nil {
			var appErr *xhttp.AppError
			if errors.As(err, &appErr) && appErr.Code == "ERR_NOT_FOUND" {
				res.Skipped = append(res.Skipped, catalog.Normalize(sym))
				continue
			}
			return nil, err
		}
		res.Quotes = append(res.Quotes, *q)
	}
	return res, nil
}

func (uc *MarketUseCase) GetHistorical(ctx context.Context, symbol string, days int) (*models.HistoricalSeries, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}

	start := time.Now()
	s, err := uc.source.Historical(ctx, symbol, days)
	if err != nil {
		uc.recordError("historical")
		return nil, translateErr(err)
	}
	if uc.metrics != nil {
		uc.metrics.RecordLatency("historical", time.Since(start).Seconds())
	}
	return s, nil
}

func (uc *MarketUseCase) GetMovers(ctx context.Context, count int) (*models.RankedMovers, error) {
	if count <= 0 {
		count = defaultMoversCount
	}
	if count > maxMoversCount {
		count = maxMoversCount
	}

	start := time.Now()
	m, err := uc.source.Movers(ctx, count)
	if err != nil {
		uc.recordError("movers")
		return nil, translateErr(err)
	}
	if uc.metrics != nil {
		uc.metrics.RecordLatency("movers", time.Since(start).Seconds())
	}
	return m, nil
}

func (uc *MarketUseCase) GetSummary(ctx context.Context) (*models.MarketSummary, error) {
	const key = "summary"
	if uc.cache != nil {
		if b, ok, err := uc.cache.GetBytes(key); err == nil && ok {
			var s models.MarketSummary
			if json.Unmarshal(b, &s) == nil {
				return &s, nil
			}
		}
	}

	start := time.Now()
	s, err := uc.source.Summary(ctx)
	if err != nil {
		uc.recordError("summary")
		return nil, translateErr(err)
	}
	if uc.metrics != nil {
		uc.metrics.RecordLatency("summary", time.Since(start).Seconds())
	}

	if uc.cache != nil {
		if b, err := json.Marshal(s); err == nil {
			_ = uc.cache.SetBytes(key, b, uc.cacheTTL)
		}
	}
	return s, nil
}

// GetProfiles lists the tradable catalog.
func (uc *MarketUseCase) GetProfiles() []models.SymbolProfile {
	return uc.source.Profiles()
}

func (uc *MarketUseCase) Rollup(ctx context.Context, holdings []models.Holding) (*models.PortfolioRollup, error) {
	start := time.Now()
	r, err := uc.source.PortfolioRollup(ctx, holdings)
	if err != nil {
		uc.recordError("portfolio")
		return nil, translateErr(err)
	}
	if uc.metrics != nil {
		uc.metrics.RecordLatency("portfolio", time.Since(start).Seconds())
	}
	return r, nil
}

// ExportQuotes builds the ordered-field quote sheet for the given symbols,
// or the whole catalog when the list is empty.
func (uc *MarketUseCase) ExportQuotes(ctx context.Context, symbolsCSV string) (*tabular.Sheet, error) {
	symbols := util.SplitCSV(symbolsCSV)
	if len(symbols) == 0 {
		for _, p := range uc.source.Profiles() {
			symbols = append(symbols, p.Symbol)
		}
	}

	quotes := make([]models.Quote, 0, len(symbols))
	for _, sym := range symbols {
		q, err := uc.GetQuote(ctx, sym)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *q)
	}

	sheet := tabular.QuotesSheet(quotes)
	return &sheet, nil
}

func (uc *MarketUseCase) recordError(op string) {
	if uc.metrics != nil {
		uc.metrics.RecordError(op)
	}
}

// translateErr maps domain errors onto client-facing AppErrors. Anything
// unrecognized surfaces as 500.
func translateErr(err error) error {
	var nf *domrepo.NotFoundError
	if errors.As(err, &nf) {
		return xhttp.NotFoundErrorf("symbol %q not found", nf.Symbol).
			WithParam("valid_symbols", nf.Valid).
			WithError(err)
	}
	var ia *domrepo.InvalidArgumentError
	if errors.As(err, &ia) {
		return xhttp.BadRequestError(ia.Error()).WithError(err)
	}
	return xhttp.InternalError("market data unavailable").WithError(err)
}
