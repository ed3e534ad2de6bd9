package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "snapshots.db"), log)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndQueryRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)

	err := s.Save(ctx, []models.IndexSnapshot{
		{Index: "NIFTY 50", Value: 22610.25, Change: 110.25, ChangePercent: 0.49, TakenAt: base},
		{Index: "BANK NIFTY", Value: 48020.10, Change: -179.90, ChangePercent: -0.37, TakenAt: base},
		{Index: "NIFTY 50", Value: 22595.00, Change: 95.00, ChangePercent: 0.42, TakenAt: base.Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	all, err := s.Query(ctx, repository.SnapshotQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(all))
	}
	if !all[0].TakenAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("expected newest first, got %v", all[0].TakenAt)
	}
	if all[0].Value != 22595.00 {
		t.Fatalf("unexpected value %v", all[0].Value)
	}
}

func TestQueryByIndex(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	err := s.Save(ctx, []models.IndexSnapshot{
		{Index: "NIFTY 50", Value: 22500, TakenAt: now},
		{Index: "BANK NIFTY", Value: 48200, TakenAt: now},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Query(ctx, repository.SnapshotQuery{Index: "BANK NIFTY"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Index != "BANK NIFTY" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestQueryWindowAndLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	var snaps []models.IndexSnapshot
	for i := 0; i < 5; i++ {
		snaps = append(snaps, models.IndexSnapshot{
			Index:   "NIFTY 50",
			Value:   22500 + float64(i),
			TakenAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	if err := s.Save(ctx, snaps); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Query(ctx, repository.SnapshotQuery{
		From:  base.Add(time.Hour),
		To:    base.Add(3 * time.Hour),
		Limit: 2,
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if !got[0].TakenAt.Equal(base.Add(3 * time.Hour)) {
		t.Fatalf("window upper bound not honored: %v", got[0].TakenAt)
	}
}

func TestSaveNothing(t *testing.T) {
	s := testStore(t)
	if err := s.Save(context.Background(), nil); err != nil {
		t.Fatalf("empty save should be a no-op, got %v", err)
	}
}
