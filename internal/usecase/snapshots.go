package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	domrepo "github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
	xhttp "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/http"
)

const (
	defaultSnapshotLimit = 100
	maxSnapshotLimit     = 1000
)

// SnapshotsUseCase captures periodic index readings and serves their history.
type SnapshotsUseCase struct {
	source domrepo.MarketSource
	store  domrepo.SnapshotStore
}

func NewSnapshotsUseCase(source domrepo.MarketSource, store domrepo.SnapshotStore) *SnapshotsUseCase {
	return &SnapshotsUseCase{source: source, store: store}
}

type HistoryParams struct {
	Index string
	From  time.Time
	To    time.Time
	Limit int
}

type HistoryResult struct {
	Count     int                    `json:"count"`
	Snapshots []models.IndexSnapshot `json:"snapshots"`
}

// History returns recorded snapshots, newest first.
func (uc *SnapshotsUseCase) History(ctx context.Context, p HistoryParams) (*HistoryResult, error) {
	if !p.From.IsZero() && !p.To.IsZero() && p.From.After(p.To) {
		return nil, xhttp.BadRequestError("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = defaultSnapshotLimit
	}
	if p.Limit > maxSnapshotLimit {
		p.Limit = maxSnapshotLimit
	}

	snaps, err := uc.store.Query(ctx, domrepo.SnapshotQuery{
		Index: p.Index,
		From:  p.From,
		To:    p.To,
		Limit: p.Limit,
	})
	if err != nil {
		return nil, xhttp.InternalError("snapshot history unavailable").WithError(err)
	}

	return &HistoryResult{Count: len(snaps), Snapshots: snaps}, nil
}

// Capture reads the current market summary and persists one snapshot per
// index. Returns the number of rows written.
func (uc *SnapshotsUseCase) Capture(ctx context.Context) (int, error) {
	summary, err := uc.source.Summary(ctx)
	if err != nil {
		return 0, fmt.Errorf("summary: %w", err)
	}

	snaps := make([]models.IndexSnapshot, 0, len(summary.Indices))
	for _, idx := range summary.Indices {
		snaps = append(snaps, models.IndexSnapshot{
			Index:         idx.Name,
			Value:         idx.Value,
			Change:        idx.Change,
			ChangePercent: idx.ChangePercent,
			TakenAt:       summary.Timestamp,
		})
	}

	if err := uc.store.Save(ctx, snaps); err != nil {
		return 0, fmt.Errorf("save snapshots: %w", err)
	}
	return len(snaps), nil
}
