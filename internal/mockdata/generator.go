// Package mockdata generates synthetic NSE market data: quotes, historical
// series, mover rankings, index summaries and portfolio valuations. Prices
// follow seeded random walks with internally consistent OHLC ranges, so a
// fixed seed reproduces every output bit for bit.
package mockdata

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/catalog"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	domrepo "github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/util"
)

const (
	Currency = "INR"
	Exchange = "NSE"

	volumeMin = 1_000_000
	volumeMax = 50_000_000
)

// indexProfile parameterizes one benchmark index: fixed base value and the
// stddev of its daily percent change.
type indexProfile struct {
	name  string
	base  float64
	sigma float64
}

// Index order is fixed so draws stay reproducible under a seed.
var indexProfiles = []indexProfile{
	{name: "NIFTY 50", base: 22500, sigma: 1.0},
	{name: "BANK NIFTY", base: 48200, sigma: 1.2},
}

// Generator produces synthetic market data from a fixed symbol catalog.
// All methods serialize access to the RNG, so a shared Generator is safe
// for concurrent use; reproducibility across calls requires the caller to
// keep the call sequence itself deterministic.
type Generator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	profiles []models.SymbolProfile
	byName   map[string]models.SymbolProfile
	now      func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes every draw sequence reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithCatalog replaces the default symbol catalog. The slice order is kept:
// bounded operations scan it front to back.
func WithCatalog(profiles []models.SymbolProfile) Option {
	return func(g *Generator) {
		g.profiles = profiles
		g.byName = make(map[string]models.SymbolProfile, len(profiles))
		for _, p := range profiles {
			g.byName[p.Symbol] = p
		}
	}
}

// New creates a Generator over the standard NSE catalog. Without WithSeed
// the RNG is seeded from the wall clock.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	WithCatalog(catalog.Profiles())(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Symbols returns the bare symbol names in catalog order.
func (g *Generator) Symbols() []string {
	names := make([]string, len(g.profiles))
	for i, p := range g.profiles {
		names[i] = p.Symbol
	}
	return names
}

// Profiles returns a copy of the catalog in order.
func (g *Generator) Profiles() []models.SymbolProfile {
	out := make([]models.SymbolProfile, len(g.profiles))
	copy(out, g.profiles)
	return out
}

func (g *Generator) lookup(symbol string) (models.SymbolProfile, error) {
	p, ok := g.byName[catalog.Normalize(symbol)]
	if !ok {
		return models.SymbolProfile{}, &domrepo.NotFoundError{Symbol: symbol, Valid: g.Symbols()}
	}
	return p, nil
}

// Quote generates a single quote for symbol. The symbol is matched
// case-insensitively with an optional ".NS" suffix. Unknown symbols yield
// a *repository.NotFoundError.
func (g *Generator) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	_ = ctx
	p, err := g.lookup(symbol)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	q := g.quoteLocked(p)
	g.mu.Unlock()
	return q, nil
}

// quoteLocked draws one quote. Draw order is fixed: percent change, volume,
// open jitter, high jitter, low jitter. High and low bracket both open and
// the current price, so the OHLC invariant holds by construction.
func (g *Generator) quoteLocked(p models.SymbolProfile) *models.Quote {
	pct := g.rng.NormFloat64() * (p.Volatility * 100)
	change := p.BasePrice * pct / 100
	price := round2(p.BasePrice + change)

	volume := volumeMin + g.rng.Int63n(volumeMax-volumeMin+1)

	open := round2(p.BasePrice * (1 + g.uniform(-0.01, 0.01)))
	high := round2(math.Max(open, price) * (1 + g.uniform(0, 0.02)))
	low := round2(math.Min(open, price) * (1 - g.uniform(0, 0.02)))

	return &models.Quote{
		Symbol:        p.Symbol + catalog.ExchangeSuffix,
		Name:          p.Symbol,
		Price:         price,
		PreviousClose: p.BasePrice,
		Change:        round2(change),
		ChangePercent: round2(pct),
		Volume:        volume,
		Open:          open,
		High:          high,
		Low:           low,
		Sector:        p.Sector,
		Currency:      Currency,
		Exchange:      Exchange,
		Timestamp:     g.now(),
	}
}

// Historical generates days daily bars, oldest first, ending yesterday
// (the last completed day). The series is one continuous walk: each bar
// opens at the previous close.
func (g *Generator) Historical(ctx context.Context, symbol string, days int) (*models.HistoricalSeries, error) {
	_ = ctx
	if days < 1 {
		return nil, &domrepo.InvalidArgumentError{Param: "days", Value: days, Reason: "must be at least 1"}
	}
	p, err := g.lookup(symbol)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	today := util.DayStart(g.now())
	bars := make([]models.Bar, 0, days)
	price := p.BasePrice
	for i := days; i >= 1; i-- {
		open := price
		pct := g.rng.NormFloat64() * p.Volatility
		close := round2(open * (1 + pct))
		high := round2(math.Max(open, close) * (1 + g.uniform(0, 0.015)))
		low := round2(math.Min(open, close) * (1 - g.uniform(0, 0.015)))
		volume := volumeMin + g.rng.Int63n(volumeMax-volumeMin+1)

		bars = append(bars, models.Bar{
			Date:   today.AddDate(0, 0, -i),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
		price = close
	}

	return &models.HistoricalSeries{
		Symbol: p.Symbol + catalog.ExchangeSuffix,
		Days:   days,
		Bars:   bars,
	}, nil
}

// Movers ranks gainers and losers. Quotes are drawn for the first
// min(2*count, len(catalog)) catalog entries only; rankings are therefore
// biased toward catalog order on small counts, which callers rely on.
// Either list may come back shorter than count.
func (g *Generator) Movers(ctx context.Context, count int) (*models.RankedMovers, error) {
	_ = ctx
	if count < 1 {
		return nil, &domrepo.InvalidArgumentError{Param: "count", Value: count, Reason: "must be at least 1"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n := 2 * count
	if n > len(g.profiles) {
		n = len(g.profiles)
	}
	quotes := make([]models.Quote, 0, n)
	for _, p := range g.profiles[:n] {
		quotes = append(quotes, *g.quoteLocked(p))
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].ChangePercent > quotes[j].ChangePercent
	})

	gainers := make([]models.Quote, 0, count)
	losers := make([]models.Quote, 0, count)
	for _, q := range quotes {
		if q.ChangePercent > 0 && len(gainers) < count {
			gainers = append(gainers, q)
		}
		if q.ChangePercent < 0 {
			losers = append(losers, q)
		}
	}
	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].ChangePercent < losers[j].ChangePercent
	})
	if len(losers) > count {
		losers = losers[:count]
	}

	return &models.RankedMovers{
		Gainers:   gainers,
		Losers:    losers,
		Timestamp: g.now(),
	}, nil
}

// Summary draws one reading per benchmark index. Indices move independently
// of each other and of individual symbols.
func (g *Generator) Summary(ctx context.Context) (*models.MarketSummary, error) {
	_ = ctx

	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now()
	indices := make([]models.IndexQuote, 0, len(indexProfiles))
	for _, ip := range indexProfiles {
		pct := g.rng.NormFloat64() * ip.sigma
		change := ip.base * pct / 100
		indices = append(indices, models.IndexQuote{
			Name:          ip.name,
			Value:         round2(ip.base + change),
			Change:        round2(change),
			ChangePercent: round2(pct),
			Timestamp:     ts,
		})
	}

	return &models.MarketSummary{Indices: indices, Timestamp: ts}, nil
}

// PortfolioRollup values holdings at freshly generated quotes. Unknown
// symbols are skipped, never fatal; an empty input yields a zero-total
// rollup.
func (g *Generator) PortfolioRollup(ctx context.Context, holdings []models.Holding) (*models.PortfolioRollup, error) {
	_ = ctx

	rollup := &models.PortfolioRollup{Positions: make([]models.PortfolioPosition, 0, len(holdings))}
	for _, h := range holdings {
		p, err := g.lookup(h.Symbol)
		if err != nil {
			rollup.Skipped = append(rollup.Skipped, h.Symbol)
			continue
		}

		g.mu.Lock()
		q := g.quoteLocked(p)
		g.mu.Unlock()

		value := round2(q.Price * float64(h.Quantity))
		rollup.Positions = append(rollup.Positions, models.PortfolioPosition{
			Symbol:   q.Symbol,
			Quantity: h.Quantity,
			Price:    q.Price,
			Value:    value,
		})
		rollup.TotalValue = round2(rollup.TotalValue + value)
	}
	return rollup, nil
}

// uniform draws from [min, max). Callers hold g.mu.
func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
