package recorder

import (
	"context"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/models"
	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/domain/repository"
)

// NoopStore is used when snapshot recording is disabled. Saves vanish and
// queries come back empty.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Init(_ context.Context) error { return nil }

func (n *NoopStore) Save(_ context.Context, _ []models.IndexSnapshot) error { return nil }

func (n *NoopStore) Query(_ context.Context, _ repository.SnapshotQuery) ([]models.IndexSnapshot, error) {
	return nil, nil
}

func (n *NoopStore) Close() error { return nil }
