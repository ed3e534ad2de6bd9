package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	domrepo "github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/mockdata"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/service/cache"
	xhttp "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/http"
)

type countingMetrics struct {
	quotes  int
	errors  int
	latency int
}

func (m *countingMetrics) RecordQuote(string)              { m.quotes++ }
func (m *countingMetrics) RecordError(string)              { m.errors++ }
func (m *countingMetrics) RecordLastPrice(string, float64) {}
func (m *countingMetrics) RecordLatency(string, float64)   { m.latency++ }

type memStore struct {
	snaps   []models.IndexSnapshot
	lastQ   domrepo.SnapshotQuery
	saveErr error
}

func (s *memStore) Init(ctx context.Context) error { return nil }

func (s *memStore) Save(ctx context.Context, snaps []models.IndexSnapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snaps = append(s.snaps, snaps...)
	return nil
}

func (s *memStore) Query(ctx context.Context, q domrepo.SnapshotQuery) ([]models.IndexSnapshot, error) {
	s.lastQ = q
	out := s.snaps
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *memStore) Close() error { return nil }

func newMarketUC(t *testing.T) (*MarketUseCase, *countingMetrics) {
	t.Helper()
	m := &countingMetrics{}
	uc := NewMarketUseCase(mockdata.New(mockdata.WithSeed(42)), cache.NewTTLCache(), m, time.Minute)
	return uc, m
}

func TestGetQuoteServesCachedReading(t *testing.T) {
	uc, m := newMarketUC(t)
	ctx := context.Background()

	first, err := uc.GetQuote(ctx, "TCS")
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	second, err := uc.GetQuote(ctx, "tcs.ns")
	if err != nil {
		t.Fatalf("GetQuote() cached error = %v", err)
	}
	// A fresh draw would differ; matching prices prove the cache served it.
	if first.Price != second.Price || first.Volume != second.Volume || first.Open != second.Open {
		t.Errorf("cached quote differs:\nfirst  %+v\nsecond %+v", first, second)
	}
	if m.quotes != 1 {
		t.Errorf("RecordQuote calls = %d, want 1", m.quotes)
	}
}

func TestGetQuoteUnknownSymbol(t *testing.T) {
	uc, m := newMarketUC(t)

	_, err := uc.GetQuote(context.Background(), "FAKESYM")
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Status != http.StatusNotFound || appErr.Code != "ERR_NOT_FOUND" {
		t.Errorf("AppError = %d %s, want 404 ERR_NOT_FOUND", appErr.Status, appErr.Code)
	}
	if _, ok := appErr.Params["valid_symbols"]; !ok {
		t.Errorf("expected valid_symbols param, got %v", appErr.Params)
	}
	if m.errors != 1 {
		t.Errorf("RecordError calls = %d, want 1", m.errors)
	}
}

func TestGetHistoricalDefaultsDays(t *testing.T) {
	uc, _ := newMarketUC(t)

	s, err := uc.GetHistorical(context.Background(), "INFY", 0)
	if err != nil {
		t.Fatalf("GetHistorical() error = %v", err)
	}
	if s.Days != defaultHistoryDays || len(s.Bars) != defaultHistoryDays {
		t.Errorf("days = %d bars = %d, want %d", s.Days, len(s.Bars), defaultHistoryDays)
	}
}

func TestGetHistoricalCapsDays(t *testing.T) {
	uc, _ := newMarketUC(t)

	s, err := uc.GetHistorical(context.Background(), "INFY", maxHistoryDays+1)
	if err != nil {
		t.Fatalf("GetHistorical() error = %v", err)
	}
	if len(s.Bars) != maxHistoryDays {
		t.Errorf("bars = %d, want cap %d", len(s.Bars), maxHistoryDays)
	}
}

func TestGetMoversDefaultsCount(t *testing.T) {
	uc, _ := newMarketUC(t)

	m, err := uc.GetMovers(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetMovers() error = %v", err)
	}
	if len(m.Gainers) > defaultMoversCount || len(m.Losers) > defaultMoversCount {
		t.Errorf("gainers = %d losers = %d, want at most %d each",
			len(m.Gainers), len(m.Losers), defaultMoversCount)
	}
}

func TestGetWatchlistSkipsUnknown(t *testing.T) {
	uc, _ := newMarketUC(t)

	res, err := uc.GetWatchlist(context.Background(), "RELIANCE, nope ,TCS.NS")
	if err != nil {
		t.Fatalf("GetWatchlist() error = %v", err)
	}
	if len(res.Quotes) != 2 {
		t.Fatalf("quotes = %d, want 2", len(res.Quotes))
	}
	if res.Quotes[0].Symbol != "RELIANCE.NS" || res.Quotes[1].Symbol != "TCS.NS" {
		t.Errorf("quote symbols = %s, %s", res.Quotes[0].Symbol, res.Quotes[1].Symbol)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "NOPE" {
		t.Errorf("skipped = %v, want [NOPE]", res.Skipped)
	}
}

func TestGetSummaryServesCachedReading(t *testing.T) {
	uc, _ := newMarketUC(t)
	ctx := context.Background()

	first, err := uc.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	second, err := uc.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary() cached error = %v", err)
	}
	if len(first.Indices) != len(second.Indices) {
		t.Fatalf("index count differs: %d vs %d", len(first.Indices), len(second.Indices))
	}
	for i := range first.Indices {
		if first.Indices[i].Value != second.Indices[i].Value {
			t.Errorf("index %d value differs: %v vs %v", i, first.Indices[i].Value, second.Indices[i].Value)
		}
	}
}

func TestExportQuotesWholeCatalog(t *testing.T) {
	uc, _ := newMarketUC(t)

	sheet, err := uc.ExportQuotes(context.Background(), "")
	if err != nil {
		t.Fatalf("ExportQuotes() error = %v", err)
	}
	if got := len(sheet.Rows); got != len(uc.GetProfiles()) {
		t.Errorf("rows = %d, want %d", got, len(uc.GetProfiles()))
	}
	if sheet.Header[0] != "symbol" {
		t.Errorf("header[0] = %q, want symbol", sheet.Header[0])
	}
}

func TestExportQuotesExplicitList(t *testing.T) {
	uc, _ := newMarketUC(t)

	sheet, err := uc.ExportQuotes(context.Background(), "WIPRO,HDFCBANK")
	if err != nil {
		t.Fatalf("ExportQuotes() error = %v", err)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(sheet.Rows))
	}
	if sheet.Rows[0][0] != "WIPRO.NS" {
		t.Errorf("row[0] symbol = %q, want WIPRO.NS", sheet.Rows[0][0])
	}
}

func TestSnapshotsCaptureAndHistory(t *testing.T) {
	store := &memStore{}
	uc := NewSnapshotsUseCase(mockdata.New(mockdata.WithSeed(42)), store)
	ctx := context.Background()

	n, err := uc.Capture(ctx)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("captured = %d, want one snapshot per index", n)
	}

	res, err := uc.History(ctx, HistoryParams{})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if res.Count != 2 {
		t.Errorf("count = %d, want 2", res.Count)
	}
	if store.lastQ.Limit != defaultSnapshotLimit {
		t.Errorf("query limit = %d, want default %d", store.lastQ.Limit, defaultSnapshotLimit)
	}
}

func TestSnapshotsHistoryCapsLimit(t *testing.T) {
	store := &memStore{}
	uc := NewSnapshotsUseCase(mockdata.New(mockdata.WithSeed(1)), store)

	if _, err := uc.History(context.Background(), HistoryParams{Limit: maxSnapshotLimit * 3}); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if store.lastQ.Limit != maxSnapshotLimit {
		t.Errorf("query limit = %d, want cap %d", store.lastQ.Limit, maxSnapshotLimit)
	}
}

func TestSnapshotsHistoryRejectsInvertedRange(t *testing.T) {
	uc := NewSnapshotsUseCase(mockdata.New(mockdata.WithSeed(1)), &memStore{})

	now := time.Now()
	_, err := uc.History(context.Background(), HistoryParams{From: now, To: now.Add(-time.Hour)})
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) || appErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 AppError, got %v", err)
	}
}

func TestCaptureSaveFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	uc := NewSnapshotsUseCase(mockdata.New(mockdata.WithSeed(1)), store)

	if _, err := uc.Capture(context.Background()); err == nil {
		t.Fatal("Capture() expected error when save fails")
	}
}
