package repository

import (
	"context"
	"time"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
)

// MarketSource produces quote, series and aggregate market data. The
// synthetic generator implements it; a live-data client would too, with the
// same output shapes, so downstream code never branches on data origin.
type MarketSource interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Historical(ctx context.Context, symbol string, days int) (*models.HistoricalSeries, error)
	Movers(ctx context.Context, count int) (*models.RankedMovers, error)
	Summary(ctx context.Context) (*models.MarketSummary, error)
	PortfolioRollup(ctx context.Context, holdings []models.Holding) (*models.PortfolioRollup, error)
	Profiles() []models.SymbolProfile
}

// SnapshotQuery filters recorded index snapshots. Zero times mean
// unbounded; Limit caps the newest-first result.
type SnapshotQuery struct {
	Index string
	From  time.Time
	To    time.Time
	Limit int
}

// SnapshotStore persists periodic index readings.
type SnapshotStore interface {
	Init(ctx context.Context) error // ensure schema
	Save(ctx context.Context, snaps []models.IndexSnapshot) error
	Query(ctx context.Context, q SnapshotQuery) ([]models.IndexSnapshot, error)
	Close() error
}

type Metrics interface {
	RecordQuote(symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
