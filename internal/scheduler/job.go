package scheduler

import (
	"context"
	"encoding/json"

	"github.com/mandarab76/ATS-NSE-Stock-Suite/internal/usecase"
	xlogger "github.com/mandarab76/ATS-NSE-Stock-Suite/pkg/logger"
)

// KindSnapshotCapture is the queue task kind for a deferred capture.
const KindSnapshotCapture = "snapshot.capture"

// CapturePayload is the (currently empty) capture request body. Kept as a
// struct so future fields stay wire-compatible.
type CapturePayload struct{}

// SnapshotJob performs a queued snapshot capture.
type SnapshotJob struct {
	snaps  *usecase.SnapshotsUseCase
	logger *xlogger.Logger
}

func NewSnapshotJob(snaps *usecase.SnapshotsUseCase, logger *xlogger.Logger) *SnapshotJob {
	return &SnapshotJob{snaps: snaps, logger: logger}
}

func (j *SnapshotJob) Kind() string { return KindSnapshotCapture }

func (j *SnapshotJob) Handle(ctx context.Context, payload json.RawMessage) error {
	var req CapturePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return err
		}
	}

	n, err := j.snaps.Capture(ctx)
	if err != nil {
		return err
	}
	j.logger.Info("queued snapshot capture complete", xlogger.Int("indices", n))
	return nil
}
